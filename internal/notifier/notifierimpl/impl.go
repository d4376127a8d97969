package notifierimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/notifier"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/formatter"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// TelegramImpl sends progress messages to the configured Telegram user.
type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	Config *config.Config
}

var _ notifier.Client = (*TelegramImpl)(nil)

// Noop is used when no Telegram token is configured.
type Noop struct{}

func (Noop) Notify(string) {}

var _ notifier.Client = Noop{}

func New(opts Opts) (notifier.Client, error) {
	if opts.Config.Telegram.Token == "" {
		opts.Logger.Info("No Telegram token configured, notifications disabled")
		return Noop{}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "Error", err)
		return nil, err
	}

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: opts.Logger.WithComponent("Notifier"),
		Config: opts.Config,
	}, nil
}

func (tg *TelegramImpl) Notify(text string) {
	msg := tgbotapi.NewMessage(tg.Config.Telegram.User, formatter.EscapeMarkdownV2(text))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending notification",
			"userID", tg.Config.Telegram.User,
			"error", err)
		return
	}

	tg.Logger.Debug("Notification sent", "userID", tg.Config.Telegram.User)
}
