package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"TripBot/model"
	"TripBot/repo"
	"TripBot/service"
)

func TestWrite(t *testing.T) {
	ctx := context.Background()
	svc := service.New(repo.NewStore(repo.NewMemoryBackend()), nil, nil)

	jade := model.NewUserPreferences()
	jade.Select(model.StepMeals, "bbq", true)
	jade.Select(model.StepMeals, "pizza", true)
	jade.Select(model.StepBudget, "tight", false)
	svc.SavePreferences(ctx, "Jade", jade)

	lucas := model.NewUserPreferences()
	lucas.Select(model.StepMeals, "bbq", true)
	svc.SavePreferences(ctx, "Lucas", lucas)

	custom, err := svc.AddCustomOption(ctx, "Lucas", model.StepMeals, "Tajine")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(svc.Snapshot(ctx), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{AnswersSheet, TotalsSheet}, f.GetSheetList())

	rows, err := f.GetRows(AnswersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Participant", rows[0][0])
	assert.Equal(t, "Plats préférés", rows[0][1])
	assert.Equal(t, "Message", rows[0][len(rows[0])-1])
	assert.Equal(t, "Jade", rows[1][0])
	assert.Equal(t, "Barbecue, Pizza", rows[1][1])
	assert.Equal(t, "Serré", rows[1][6])
	assert.Equal(t, "Lucas", rows[2][0])
	assert.Equal(t, "Barbecue, Tajine", rows[2][1])

	totals, err := f.GetRows(TotalsSheet)
	require.NoError(t, err)
	counts := make(map[string]string)
	for _, r := range totals[1:] {
		if r[0] == "Plats préférés" {
			counts[r[1]] = r[2]
		}
	}
	assert.Equal(t, "2", counts["Barbecue"])
	assert.Equal(t, "1", counts["Pizza"])
	assert.Equal(t, "0", counts["Raclette"])
	assert.Equal(t, "1", counts[custom.Label])
}

func TestWorkbookWithoutUsers(t *testing.T) {
	svc := service.New(repo.NewStore(repo.NewMemoryBackend()), nil, nil)

	f, err := Workbook(svc.Snapshot(context.Background()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AnswersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
