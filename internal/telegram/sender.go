package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender delivers reminders to private chats under a global rate limit.
// It satisfies scheduler.Notifier.
type Sender struct {
	bot     BotClient
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewSender creates a Sender allowing perSec messages per second with burst.
func NewSender(bot BotClient, perSec float64, burst int, log *zap.Logger) *Sender {
	if burst < 1 {
		burst = 1
	}
	return &Sender{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
		log:     log,
	}
}

// Send waits for a token, then posts text with the "drank" button attached.
func (s *Sender) Send(ctx context.Context, userID int64, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = drankKeyboard()
	_, err := s.bot.Send(msg)
	return err
}
