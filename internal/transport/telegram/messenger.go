package telegram

import (
	"context"
	"fmt"

	"github.com/sandevgo/briefbot/internal/core"
	"github.com/sandevgo/briefbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// Messenger delivers composed messages over the Telegram Bot API.
type Messenger struct {
	bot   *tele.Bot
	pacer core.Pacer
}

func NewMessenger(token string, pacer core.Pacer) (*Messenger, error) {
	b, err := tele.NewBot(tele.Settings{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Messenger{bot: b, pacer: pacer}, nil
}

// SendText chunks text at the message ceiling and sends the chunks in
// order, pacing between them. A failed chunk is recorded in its outcome
// and does not stop the remaining chunks; chunks already sent stay sent.
func (m *Messenger) SendText(ctx context.Context, dest core.Destination, text string) []core.DeliveryOutcome {
	logger := log.FromCtx(ctx)

	chunks := SplitMessage(text, MaxMessageLen)
	outcomes := make([]core.DeliveryOutcome, 0, len(chunks))

	for i, chunk := range chunks {
		opts := &tele.SendOptions{
			ParseMode:             tele.ModeHTML,
			DisableWebPagePreview: true,
			ThreadID:              dest.ThreadID,
		}
		_, err := m.bot.Send(tele.ChatID(dest.ChatID), chunk, opts)
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
		}
		outcomes = append(outcomes, core.DeliveryOutcome{Err: err})

		if i < len(chunks)-1 {
			if werr := m.pacer.Wait(ctx); werr != nil {
				logger.Warn().Err(werr).Msg("pacing interrupted")
			}
		}
	}
	return outcomes
}

// SendCard sends one card message with its copy-text button. The button
// goes through a raw sendMessage call; telebot's typed inline buttons
// predate the Bot API's copy_text field.
func (m *Messenger) SendCard(ctx context.Context, dest core.Destination, msg core.OutboundMessage) core.DeliveryOutcome {
	params := map[string]any{
		"chat_id":                  dest.ChatID,
		"text":                     msg.Text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	if dest.ThreadID != 0 {
		params["message_thread_id"] = dest.ThreadID
	}
	if msg.CopyText != "" {
		params["reply_markup"] = map[string]any{
			"inline_keyboard": [][]map[string]any{{
				{
					"text":      "📋 Copy message",
					"copy_text": map[string]string{"text": msg.CopyText},
				},
			}},
		}
	}

	if _, err := m.bot.Raw("sendMessage", params); err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat", dest.ChatID).Msg("failed to send telegram card")
		return core.DeliveryOutcome{Err: err}
	}
	return core.DeliveryOutcome{}
}
