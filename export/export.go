// Package export builds the organiser's spreadsheet of everyone's answers.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"TripBot/model"
)

const (
	AnswersSheet = "Réponses"
	TotalsSheet  = "Totaux"
)

// Source is a consistent view of questions, answers and option labels.
// service.Snapshot implements it.
type Source interface {
	Questions() []model.QuestionConfig
	UserNames() []string
	User(name string) (model.UserPreferences, bool)
	ListOptions(step model.StepName) []model.FormOption
	ResolveLabel(step model.StepName, id string) string
}

// Workbook lays out one row per participant on AnswersSheet and the number
// of participants picking each option on TotalsSheet.
func Workbook(src Source) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", AnswersSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}
	if err := writeAnswers(f, src); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(TotalsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	if err := writeTotals(f, src); err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write streams the workbook to w.
func Write(src Source, w io.Writer) error {
	f, err := Workbook(src)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("error writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func writeAnswers(f *excelize.File, src Source) error {
	questions := src.Questions()
	header := []any{"Participant"}
	for _, q := range questions {
		header = append(header, q.Title)
	}
	header = append(header, "Message")
	if err := setRow(f, AnswersSheet, 1, header); err != nil {
		return err
	}

	for i, name := range src.UserNames() {
		p, _ := src.User(name)
		row := []any{name}
		for _, q := range questions {
			labels := make([]string, 0, len(p.Selected(q.StepName)))
			for _, id := range p.Selected(q.StepName) {
				labels = append(labels, src.ResolveLabel(q.StepName, id))
			}
			row = append(row, strings.Join(labels, ", "))
		}
		row = append(row, p.CustomMessage)
		if err := setRow(f, AnswersSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTotals(f *excelize.File, src Source) error {
	if err := setRow(f, TotalsSheet, 1, []any{"Question", "Option", "Nombre"}); err != nil {
		return err
	}
	row := 2
	for _, q := range src.Questions() {
		for _, opt := range src.ListOptions(q.StepName) {
			count := 0
			for _, name := range src.UserNames() {
				p, _ := src.User(name)
				if p.Has(q.StepName, opt.ID) {
					count++
				}
			}
			if err := setRow(f, TotalsSheet, row, []any{q.Title, opt.Label, count}); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
