package bot

import (
	"fmt"

	"github.com/m3rciful/surveybot/telegram/helpers"
	"github.com/m3rciful/surveybot/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const (
	answerCallbackKey = "answer"
	answersPerRow     = 2
)

const completeText = "✅ Thank you! You have answered all the questions."

// telePresenter renders survey questions into the chat behind a tele.Context.
type telePresenter struct {
	c tele.Context
}

func (p telePresenter) SendQuestion(question, total int, text string, labels []string) error {
	buttons := make([]keyboard.InlineBtn, 0, len(labels))
	for _, label := range labels {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   label,
			Unique: answerCallbackKey,
			Data:   fmt.Sprintf("%d|%s", question, label),
		})
	}
	markup := keyboard.InlineButtonsNPerRow(buttons, answersPerRow)
	return helpers.SendMD(p.c, text, markup)
}

func (p telePresenter) SendComplete() error {
	return helpers.SendText(p.c, completeText)
}
