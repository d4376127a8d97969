package uploadedpost

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/repositories"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("UploadedPostRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, rec domain.UploadedPost) error {
	query, args, err := repositories.SqBuilder.
		Insert("uploaded_posts").
		Columns("source_key", "record_uri", "created_at").
		Values(rec.SourceKey, rec.RecordURI, time.Now()).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (p *Pgx) Exists(ctx context.Context, sourceKey string) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From("uploaded_posts").
		Where(sq.Eq{"source_key": sourceKey}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	err = p.pg.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *Pgx) GetBySourceKey(ctx context.Context, sourceKey string) (*domain.UploadedPost, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "source_key", "record_uri", "created_at").
		From("uploaded_posts").
		Where(sq.Eq{"source_key": sourceKey}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var rec domain.UploadedPost
	err = p.pg.QueryRow(ctx, query, args...).
		Scan(&rec.ID, &rec.SourceKey, &rec.RecordURI, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete("uploaded_posts").
		Where(sq.Lt{"created_at": cutoffTime}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
