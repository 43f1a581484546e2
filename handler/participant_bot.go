package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"TripBot/catalog"
	"TripBot/model"
	"TripBot/service"
)

type ParticipantBotHandler struct {
	svc *service.Service
	log zerolog.Logger
	now func() time.Time

	states *sessions
}

func NewParticipantBotHandler(svc *service.Service, log zerolog.Logger) *ParticipantBotHandler {
	return &ParticipantBotHandler{
		svc:    svc,
		log:    log,
		now:    time.Now,
		states: newSessions(),
	}
}

// Handler is the bot.HandlerFunc of the participant bot.
func (p *ParticipantBotHandler) Handler(ctx context.Context, b *bot.Bot, update *models.Update) {
	p.handle(ctx, b, update)
}

// handle processes one update under the lock of the sender's session.
func (p *ParticipantBotHandler) handle(ctx context.Context, s Sender, update *models.Update) {
	switch {
	case update.CallbackQuery != nil:
		sess := p.states.get(update.CallbackQuery.From.ID)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		p.onCallback(ctx, s, &sess.UserState, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		sess := p.states.get(update.Message.From.ID)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		p.onMessage(ctx, s, &sess.UserState, update.Message)
	}
}

func (p *ParticipantBotHandler) onMessage(ctx context.Context, s Sender, st *model.UserState, msg *models.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	p.log.Debug().Int64("user", msg.From.ID).Str("text", text).Msg("participant message")

	switch text {
	case "/start":
		st.Reset()
		st.State = model.StateSelectingUser
		send(ctx, s, p.log, chatID, p.greeting(), rosterKeyboard(p.svc.Catalog().Names()))
		return
	case "/help":
		send(ctx, s, p.log, chatID, participantHelp, nil)
		return
	case "/cancel":
		st.Reset()
		send(ctx, s, p.log, chatID, "Annulé. Tape /start pour recommencer.", nil)
		return
	}

	if st.State != model.StateAnsweringStep {
		send(ctx, s, p.log, chatID, "Tape /start pour remplir le formulaire.", nil)
		return
	}

	q, ok := st.CurrentStep()
	if !ok || !q.AllowCustom {
		send(ctx, s, p.log, chatID, "Utilise les boutons pour répondre à cette question.", nil)
		return
	}
	opt, err := p.svc.AddCustomOption(ctx, st.UserName, q.StepName, text)
	if err != nil {
		p.log.Error().Err(err).Str("user", st.UserName).Msg("error adding custom option")
		send(ctx, s, p.log, chatID, "Impossible d'ajouter cette option.", nil)
		return
	}
	st.Draft.AddCustomOption(q.StepName, opt)
	st.Draft.Select(q.StepName, opt.ID, q.AllowMultiple)
	p.sendStep(ctx, s, chatID, st)
}

const participantHelp = `Commandes :
/start – choisir ton prénom et remplir le formulaire
/cancel – abandonner le formulaire en cours
Sur une question, tu peux aussi écrire ta propre réponse quand c'est permis.`

func (p *ParticipantBotHandler) greeting() string {
	countdown := catalog.Countdown(p.now(), p.svc.Catalog().TripDate)
	return fmt.Sprintf("Salut ! 🌴 Départ pour la Corse dans %s\n\nQui es-tu ?", countdown)
}

func (p *ParticipantBotHandler) onCallback(ctx context.Context, s Sender, st *model.UserState, q *models.CallbackQuery) {
	answerCallback(ctx, s, p.log, q.ID)

	chatID, messageID := callbackChat(q)
	data := q.Data

	switch {
	case strings.HasPrefix(data, cbUser):
		if err := p.selectUser(ctx, st, strings.TrimPrefix(data, cbUser)); err != nil {
			send(ctx, s, p.log, chatID, "Je ne connais pas ce prénom. Tape /start.", nil)
			return
		}
		send(ctx, s, p.log, chatID, p.welcome(ctx, st.UserName), nil)
		p.sendStep(ctx, s, chatID, st)

	case strings.HasPrefix(data, cbOption):
		i, ok := optionIndex(data)
		step, hasStep := st.CurrentStep()
		if st.State != model.StateAnsweringStep || !ok || !hasStep || i >= len(st.OptionIDs) {
			return
		}
		st.Draft.Toggle(step.StepName, st.OptionIDs[i], step.AllowMultiple)
		p.refreshStep(ctx, s, chatID, messageID, st)

	case data == cbNext:
		if st.State != model.StateAnsweringStep {
			return
		}
		st.StepIndex++
		if st.StepIndex >= len(st.Steps) {
			st.State = model.StateReviewingSummary
			send(ctx, s, p.log, chatID, p.summary(ctx, st), summaryKeyboard())
			return
		}
		p.sendStep(ctx, s, chatID, st)

	case data == cbPrev:
		switch st.State {
		case model.StateReviewingSummary:
			st.State = model.StateAnsweringStep
			st.StepIndex = len(st.Steps) - 1
		case model.StateAnsweringStep:
			if st.StepIndex == 0 {
				return
			}
			st.StepIndex--
		default:
			return
		}
		p.sendStep(ctx, s, chatID, st)

	case data == cbSave:
		if st.State != model.StateReviewingSummary {
			return
		}
		saved := p.svc.SavePreferences(ctx, st.UserName, st.Draft)
		name := st.UserName
		st.Reset()
		send(ctx, s, p.log, chatID, fmt.Sprintf("C'est noté %s ! ✅\n\n%s", name, saved.CustomMessage), nil)
	}
}

// selectUser starts the form for name, from its stored answers when there
// are some.
func (p *ParticipantBotHandler) selectUser(ctx context.Context, st *model.UserState, name string) error {
	if _, ok := p.svc.Catalog().Attendee(name); !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownUser, name)
	}
	draft := model.NewUserPreferences()
	if stored, ok := p.svc.GetPreferences(ctx, name); ok {
		draft = stored.Clone()
	}
	steps := p.svc.Questions(ctx)
	if len(steps) == 0 {
		return errors.New("no questions configured")
	}

	st.Reset()
	st.State = model.StateAnsweringStep
	st.UserName = name
	st.Draft = draft
	st.Steps = steps
	return nil
}

func (p *ParticipantBotHandler) welcome(ctx context.Context, name string) string {
	a, _ := p.svc.Catalog().Attendee(name)
	return fmt.Sprintf("Salut %s !\nDu %s au %s, %s %s\nStatut : %s",
		name, a.StartDate, a.EndDate, a.TransportIcon, a.Transport, p.svc.Status(ctx, name))
}

// stepView lists the options of the current step and remembers their ids
// for the next opt:<n> callback.
func (p *ParticipantBotHandler) stepView(ctx context.Context, st *model.UserState) (string, *models.InlineKeyboardMarkup) {
	q, _ := st.CurrentStep()
	options := p.svc.ListOptions(ctx, q.StepName)
	st.OptionIDs = st.OptionIDs[:0]
	for _, opt := range options {
		st.OptionIDs = append(st.OptionIDs, opt.ID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d %s %s\n", st.StepIndex+1, len(st.Steps), q.Emoji, q.Title)
	if q.AllowMultiple {
		b.WriteString("Plusieurs choix possibles.")
	} else {
		b.WriteString("Un seul choix.")
	}
	if q.AllowCustom {
		b.WriteString("\nTu peux aussi écrire ta propre option.")
	}
	return b.String(), stepKeyboard(options, &st.Draft, q.StepName, st.StepIndex == 0)
}

func (p *ParticipantBotHandler) sendStep(ctx context.Context, s Sender, chatID int64, st *model.UserState) {
	text, markup := p.stepView(ctx, st)
	send(ctx, s, p.log, chatID, text, markup)
}

// refreshStep redraws the buttons in place, falling back to a new message
// when the original one is gone.
func (p *ParticipantBotHandler) refreshStep(ctx context.Context, s Sender, chatID int64, messageID int, st *model.UserState) {
	if messageID == 0 {
		p.sendStep(ctx, s, chatID, st)
		return
	}
	_, markup := p.stepView(ctx, st)
	_, err := s.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: markup,
	})
	if err != nil {
		p.log.Error().Err(err).Int64("chat", chatID).Msg("error editing keyboard")
	}
}

func (p *ParticipantBotHandler) summary(ctx context.Context, st *model.UserState) string {
	sn := p.svc.Snapshot(ctx)
	var b strings.Builder
	fmt.Fprintf(&b, "Récapitulatif pour %s :\n\n", st.UserName)
	for _, q := range st.Steps {
		labels := sn.ResolveLabels(q.StepName, st.Draft.Selected(q.StepName))
		answer := "aucun"
		if len(labels) > 0 {
			answer = strings.Join(labels, ", ")
		}
		fmt.Fprintf(&b, "%s %s : %s\n", q.Emoji, q.Title, answer)
	}
	b.WriteString("\nValide pour recevoir ton message de fin !")
	return b.String()
}
