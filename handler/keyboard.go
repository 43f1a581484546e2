package handler

import (
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"TripBot/model"
)

// Callback data. Options are addressed by their index on the current step
// so the payload stays under Telegram's 64 bytes.
const (
	cbUser   = "user:"
	cbOption = "opt:"
	cbPrev   = "nav:prev"
	cbNext   = "nav:next"
	cbSave   = "save"

	selectedMark = "✅ "
)

func button(text, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}

// rosterKeyboard lays the names out two per row.
func rosterKeyboard(names []string) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for i := 0; i < len(names); i += 2 {
		row := []models.InlineKeyboardButton{button(names[i], cbUser+names[i])}
		if i+1 < len(names) {
			row = append(row, button(names[i+1], cbUser+names[i+1]))
		}
		rows = append(rows, row)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func stepKeyboard(options []model.FormOption, draft *model.UserPreferences, step model.StepName, first bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for i, opt := range options {
		text := opt.Display()
		if draft.Has(step, opt.ID) {
			text = selectedMark + text
		}
		rows = append(rows, []models.InlineKeyboardButton{button(text, cbOption+strconv.Itoa(i))})
	}
	nav := []models.InlineKeyboardButton{}
	if !first {
		nav = append(nav, button("⬅️", cbPrev))
	}
	nav = append(nav, button("➡️", cbNext))
	rows = append(rows, nav)
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func summaryKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{button("⬅️ Modifier", cbPrev), button("Valider ✓", cbSave)},
	}}
}

// optionIndex parses "opt:<n>".
func optionIndex(data string) (int, bool) {
	raw, ok := strings.CutPrefix(data, cbOption)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
