package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
)

// Sender is the part of *bot.Bot the handlers talk to.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageReplyMarkup(ctx context.Context, params *bot.EditMessageReplyMarkupParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
}

var _ Sender = (*bot.Bot)(nil)

func send(ctx context.Context, s Sender, log zerolog.Logger, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := s.SendMessage(ctx, params); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("error sending message")
	}
}

func answerCallback(ctx context.Context, s Sender, log zerolog.Logger, id string) {
	if _, err := s.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: id}); err != nil {
		log.Error().Err(err).Msg("error answering callback")
	}
}

// callbackChat returns the chat a callback came from. In a private chat
// that is the user id.
func callbackChat(q *models.CallbackQuery) (chatID int64, messageID int) {
	if q.Message.Message != nil {
		return q.Message.Message.Chat.ID, q.Message.Message.ID
	}
	return q.From.ID, 0
}
