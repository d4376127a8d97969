package blueskyimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/bluesky"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/errors"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type BlueskyImpl struct {
	Config  *config.Config
	Logger  logger.Logger
	http    *http.Client
	limiter *rate.Limiter

	accessJwt string
	did       string
}

func New(opts Opts) *BlueskyImpl {
	// The default of one write every three seconds keeps a full-archive
	// import well under the PDS write quota.
	delay := time.Duration(opts.Config.Bluesky.WriteDelayMs) * time.Millisecond
	return &BlueskyImpl{
		Config:  opts.Config,
		Logger:  opts.Logger.WithComponent("Bluesky"),
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

var _ bluesky.Client = (*BlueskyImpl)(nil)

type xrpcError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doXRPC posts one XRPC procedure call and decodes the response into out.
// contentType "" means a JSON body.
func (b *BlueskyImpl) doXRPC(ctx context.Context, method string, body []byte, contentType string, authorized bool, out any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	url := b.Config.Bluesky.PdsURL + "/xrpc/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	if authorized {
		if b.accessJwt == "" {
			return bluesky.ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+b.accessJwt)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return errors.Wrap(err, method)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response for "+method)
	}

	if resp.StatusCode != http.StatusOK {
		var xe xrpcError
		if json.Unmarshal(data, &xe) == nil && xe.Error != "" {
			return fmt.Errorf("%s: %s: %s (status %d)", method, xe.Error, xe.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "decoding response for "+method)
		}
	}
	return nil
}

// Login opens an app-password session. Simulate mode skips the network
// entirely so a dry run needs no credentials.
func (b *BlueskyImpl) Login(ctx context.Context) error {
	if b.Config.App.Simulate {
		b.Logger.Info("Simulate mode, skipping login")
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"identifier": b.Config.Bluesky.Handle,
		"password":   b.Config.Bluesky.Password,
	})
	if err != nil {
		return err
	}

	var session struct {
		AccessJwt string `json:"accessJwt"`
		Did       string `json:"did"`
		Handle    string `json:"handle"`
	}
	if err := b.doXRPC(ctx, "com.atproto.server.createSession", payload, "", false, &session); err != nil {
		return errors.Wrap(err, "login failed")
	}

	b.accessJwt = session.AccessJwt
	b.did = session.Did
	b.Logger.Info("Logged in", "handle", session.Handle, "did", session.Did)
	return nil
}
