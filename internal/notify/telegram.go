// Package notify delivers watch-mode opportunity alerts to chat services.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/best-odds/internal/models"
	"golang.org/x/time/rate"
)

// Min interval between two messages to the same chat; Telegram answers 429
// above roughly 30 messages a minute.
const telegramSendInterval = 2 * time.Second

// ErrNotifierClosed is returned by Notify after Close.
var ErrNotifierClosed = errors.New("notifier closed")

// Notifier delivers an alert for a scan result.
type Notifier interface {
	Notify(ctx context.Context, result *models.ScanResult) error
	Close() error
}

// messageSender is the part of tgbotapi.BotAPI the notifier uses.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends sure bet alerts to one Telegram chat.
type TelegramNotifier struct {
	bot     messageSender
	chatID  int64
	limiter *rate.Limiter
	logger  *logrus.Entry
	closed  chan struct{}
}

// NewTelegramNotifier connects to the bot API with token. The token is
// checked against the API before returning.
func NewTelegramNotifier(token string, chatID int64, logger *logrus.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false
	return newTelegramNotifier(bot, chatID, logger), nil
}

func newTelegramNotifier(bot messageSender, chatID int64, logger *logrus.Logger) *TelegramNotifier {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &TelegramNotifier{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(telegramSendInterval), 1),
		logger:  logger.WithFields(logrus.Fields{"component": "notify", "channel": "telegram"}),
		closed:  make(chan struct{}),
	}
}

// Notify formats result and sends it, waiting for the send interval when
// alerts come in quick succession.
func (n *TelegramNotifier) Notify(ctx context.Context, result *models.ScanResult) error {
	select {
	case <-n.closed:
		return ErrNotifierClosed
	default:
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limiter: %w", err)
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatAlert(result))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	start := time.Now()
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.WithError(err).WithField("match", result.Selection.MatchName).Error("Telegram send failed")
		return fmt.Errorf("telegram send: %w", err)
	}
	n.logger.WithFields(logrus.Fields{
		"match":            result.Selection.MatchName,
		"send_duration_ms": time.Since(start).Milliseconds(),
	}).Info("Telegram alert sent")
	return nil
}

// Close stops further sends.
func (n *TelegramNotifier) Close() error {
	select {
	case <-n.closed:
	default:
		close(n.closed)
	}
	return nil
}

// FormatAlert renders a scan result as a MarkdownV2 message.
func FormatAlert(result *models.ScanResult) string {
	esc := func(s string) string { return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s) }

	var b strings.Builder
	b.WriteString(fmt.Sprintf("*%s*\n", esc(fmt.Sprintf("Sure bet: %.2f%% margin", result.Plan.Margin()*100))))
	b.WriteString(fmt.Sprintf("*%s*\n", esc(result.Selection.MatchName)))
	b.WriteString(esc(fmt.Sprintf("League: %s", result.League)) + "\n\n")

	for _, o := range models.Outcomes {
		line := fmt.Sprintf("%s: %.2f at %s, stake %.2f", o, result.Selection.Odds[o], result.SourceSite(o), result.Plan.Stakes[o])
		b.WriteString(esc(line) + "\n")
	}

	b.WriteString("\n" + esc(fmt.Sprintf("Guaranteed profit: %.2f on %.2f", result.Plan.Profits[models.HomeWin], result.Plan.TotalStake)))
	return b.String()
}
