package service

import (
	"fmt"
	"strings"

	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/Badsnus/cu-clubs-web/pkg/logger/types"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

type notifySender interface {
	ChatByID(id int64) (*tele.Chat, error)
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// NotifyService forwards application logs to a Telegram channel.
type NotifyService struct {
	bot    notifySender
	logger *types.Logger
}

func NewNotifyService(bot notifySender, logger *types.Logger) *NotifyService {
	return &NotifyService{
		bot:    bot,
		logger: logger,
	}
}

// LogHook returns a log hook for the specified channel
//
// Parameters:
//   - channelID is the channel to send the log to
//   - level is the minimum log level to send
func (s *NotifyService) LogHook(channelID int64, level zapcore.Level) (types.LogHook, error) {
	chat, err := s.bot.ChatByID(channelID)
	if err != nil {
		return nil, err
	}
	return func(log types.Log) {
		if log.Level < level || strings.Contains(log.Message, "failed to send log to channel") {
			return
		}
		_, err := s.bot.Send(chat, formatLog(log), tele.ModeHTML)
		if err != nil {
			s.logger.Errorf("failed to send log to channel %d: %v", channelID, err)
		}
	}, nil
}

func formatLog(log types.Log) string {
	return fmt.Sprintf(
		"<b>%s</b> | %s | <code>%s</code>\n<i>%s</i>\n\n%s",
		strings.ToUpper(log.Level.String()),
		log.Timestamp.In(location.Location()).Format("02.01.2006 15:04:05"),
		escapeHTML(log.LoggerName),
		escapeHTML(log.Caller),
		escapeHTML(log.Message),
	)
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
