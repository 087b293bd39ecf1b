package telegram

import (
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the run.SummarySink interface using the
// gopkg.in/telebot.v3 library. It is send-only: no poller is started.
type TelebotAdapter struct {
	bot    *telebot.Bot
	chatID int64
}

func NewTelebotAdapter(token string, chatID int64) (*TelebotAdapter, error) {
	bot, err := telebot.NewBot(telebot.Settings{Token: token})
	if err != nil {
		return nil, err
	}
	return &TelebotAdapter{bot: bot, chatID: chatID}, nil
}

// SendSummary sends the formatted run summary to the configured admin chat.
func (tba *TelebotAdapter) SendSummary(summary string) error {
	recipient := &telebot.User{ID: tba.chatID}
	_, err := tba.bot.Send(recipient, summary)
	return err
}
