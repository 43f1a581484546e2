package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"TripBot/export"
	"TripBot/model"
	"TripBot/service"
)

const (
	ExportFilename = "reponses-corse.xlsx"
	RawFilename    = "users.json"
)

type OrganiserBotHandler struct {
	svc *service.Service
	log zerolog.Logger

	states *sessions
}

func NewOrganiserBotHandler(svc *service.Service, log zerolog.Logger) *OrganiserBotHandler {
	return &OrganiserBotHandler{
		svc:    svc,
		log:    log,
		states: newSessions(),
	}
}

func (o *OrganiserBotHandler) Handler(ctx context.Context, b *bot.Bot, update *models.Update) {
	o.handle(ctx, b, update)
}

func (o *OrganiserBotHandler) handle(ctx context.Context, s Sender, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message

	o.log.Info().Str("from", msg.From.Username).Str("text", msg.Text).Msg("organiser message")

	sess := o.states.get(msg.From.ID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	st := &sess.UserState

	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if text == "/cancel" {
		st.Reset()
		send(ctx, s, o.log, chatID, "Annulé.", nil)
		return
	}

	switch st.State {
	case model.StateAddingQuestionTitle:
		st.Reset()
		q, err := o.svc.AddQuestion(ctx, text)
		if err != nil {
			send(ctx, s, o.log, chatID, errorText(err), nil)
			return
		}
		send(ctx, s, o.log, chatID, fmt.Sprintf("Question ajoutée : %s %s (%s)", q.Emoji, q.Title, q.StepName), nil)
		return
	case model.StateAddingOptionLabel:
		step := st.PendingStep
		st.Reset()
		opt, err := o.svc.AddAdminOption(ctx, step, text)
		if err != nil {
			send(ctx, s, o.log, chatID, errorText(err), nil)
			return
		}
		send(ctx, s, o.log, chatID, fmt.Sprintf("Option ajoutée : %s (%s)", opt.Display(), opt.ID), nil)
		return
	}

	o.command(ctx, s, chatID, st, text)
}

func (o *OrganiserBotHandler) command(ctx context.Context, s Sender, chatID int64, st *model.UserState, text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		send(ctx, s, o.log, chatID, "Je n'ai pas compris. Tape /help.", nil)
		return
	}
	cmd, args := fields[0], fields[1:]
	reply := func(format string, a ...any) {
		send(ctx, s, o.log, chatID, fmt.Sprintf(format, a...), nil)
	}
	done := func(err error, okText string) {
		if err != nil {
			reply("%s", errorText(err))
			return
		}
		reply("%s", okText)
	}

	switch cmd {
	case "/start", "/help":
		reply("%s", organiserHelp)

	case "/questions":
		reply("%s", o.questionList(ctx))

	case "/addQuestion":
		st.State = model.StateAddingQuestionTitle
		reply("Quel est le titre de la nouvelle question ?")

	case "/rename":
		if len(args) < 2 {
			reply("Usage : /rename <step> <titre>")
			return
		}
		rest := strings.TrimSpace(strings.TrimPrefix(text, cmd))
		title := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		done(o.svc.RenameQuestion(ctx, model.StepName(args[0]), title), "Question renommée.")

	case "/deleteQuestion":
		if len(args) != 1 {
			reply("Usage : /deleteQuestion <step>")
			return
		}
		done(o.svc.DeleteQuestion(ctx, model.StepName(args[0])), "Question supprimée.")

	case "/up", "/down":
		if len(args) != 1 {
			reply("Usage : %s <step>", cmd)
			return
		}
		delta := -1
		if cmd == "/down" {
			delta = 1
		}
		if err := o.svc.MoveQuestion(ctx, model.StepName(args[0]), delta); err != nil {
			reply("%s", errorText(err))
			return
		}
		reply("%s", o.questionList(ctx))

	case "/flags":
		if len(args) != 3 {
			reply("Usage : /flags <step> <multi:on|off> <custom:on|off>")
			return
		}
		multiple, ok1 := parseSwitch(args[1])
		custom, ok2 := parseSwitch(args[2])
		if !ok1 || !ok2 {
			reply("Les options valent on ou off.")
			return
		}
		done(o.svc.SetQuestionFlags(ctx, model.StepName(args[0]), multiple, custom), "Question mise à jour.")

	case "/options":
		if len(args) != 1 {
			reply("Usage : /options <step>")
			return
		}
		reply("%s", o.optionList(ctx, model.StepName(args[0])))

	case "/addOption":
		if len(args) != 1 {
			reply("Usage : /addOption <step>")
			return
		}
		step := model.StepName(args[0])
		if _, ok := o.svc.Question(ctx, step); !ok {
			reply("%s", errorText(model.ErrStepNotFound))
			return
		}
		st.State = model.StateAddingOptionLabel
		st.PendingStep = step
		reply("Quel est le libellé de la nouvelle option ?")

	case "/removeOption":
		if len(args) != 2 {
			reply("Usage : /removeOption <step> <id>")
			return
		}
		o.svc.RemoveOption(ctx, model.StepName(args[0]), args[1])
		reply("Option %s supprimée.", args[1])

	case "/reset":
		if len(args) == 0 {
			reply("Usage : /reset <prénom>")
			return
		}
		name := strings.Join(args, " ")
		if !o.svc.ResetUser(ctx, name) {
			reply("Aucune réponse enregistrée pour %s.", name)
			return
		}
		reply("Réponses de %s effacées.", name)

	case "/status":
		reply("%s", o.statusReport(ctx))

	case "/export":
		var buf bytes.Buffer
		if err := export.Write(o.svc.Snapshot(ctx), &buf); err != nil {
			o.log.Error().Err(err).Msg("error building export")
			reply("Erreur lors de l'export.")
			return
		}
		o.sendFile(ctx, s, chatID, ExportFilename, &buf)

	case "/raw":
		o.sendFile(ctx, s, chatID, RawFilename, bytes.NewReader(o.svc.ExportRaw(ctx)))

	default:
		reply("Je n'ai pas compris. Tape /help.")
	}
}

const organiserHelp = `Commandes :
/questions – liste des questions
/addQuestion – ajouter une question
/rename <step> <titre> – renommer une question
/deleteQuestion <step> – supprimer une question ajoutée
/up <step>, /down <step> – déplacer une question
/flags <step> <on|off> <on|off> – choix multiple, options libres
/options <step> – options d'une question
/addOption <step> – ajouter une option
/removeOption <step> <id> – supprimer une option partout
/reset <prénom> – effacer les réponses d'un participant
/status – avancement de chacun
/export – tableur des réponses
/raw – données brutes
/cancel – annuler`

func parseSwitch(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	return false, false
}

func errorText(err error) string {
	switch {
	case errors.Is(err, model.ErrStepNotFound):
		return "Question inconnue. Tape /questions pour voir les identifiants."
	case errors.Is(err, model.ErrBuiltinStep):
		return "Les questions d'origine ne peuvent pas être supprimées."
	case errors.Is(err, model.ErrEmptyLabel):
		return "Le texte ne peut pas être vide."
	case errors.Is(err, model.ErrUnknownUser):
		return "Participant inconnu."
	}
	return "Une erreur est survenue."
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (o *OrganiserBotHandler) questionList(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("Questions :\n")
	for _, q := range o.svc.Questions(ctx) {
		fmt.Fprintf(&b, "%d. %s %s [%s] multi:%s custom:%s\n",
			q.Order+1, q.Emoji, q.Title, q.StepName, onOff(q.AllowMultiple), onOff(q.AllowCustom))
	}
	return b.String()
}

func (o *OrganiserBotHandler) optionList(ctx context.Context, step model.StepName) string {
	q, ok := o.svc.Question(ctx, step)
	if !ok {
		return errorText(model.ErrStepNotFound)
	}
	options := o.svc.ListOptions(ctx, step)
	if len(options) == 0 {
		return fmt.Sprintf("Aucune option pour %s.", q.Title)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Options de %s %s :\n", q.Emoji, q.Title)
	for _, opt := range options {
		fmt.Fprintf(&b, "- %s [%s]", opt.Display(), opt.ID)
		if opt.AddedBy != "" {
			fmt.Fprintf(&b, " par %s", opt.AddedBy)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (o *OrganiserBotHandler) statusReport(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("Avancement :\n")
	for _, us := range o.svc.StatusReport(ctx) {
		fmt.Fprintf(&b, "- %s : %s\n", us.Name, us.Status)
	}
	return b.String()
}

func (o *OrganiserBotHandler) sendFile(ctx context.Context, s Sender, chatID int64, name string, data io.Reader) {
	_, err := s.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: name, Data: data},
	})
	if err != nil {
		o.log.Error().Err(err).Str("file", name).Msg("error sending document")
		send(ctx, s, o.log, chatID, "Impossible d'envoyer le fichier.", nil)
	}
}
