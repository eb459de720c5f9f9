package aggregate

import (
	"testing"
	"time"

	"media-report/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	asha  = &model.User{ID: 1, Username: "asha", Team: model.TeamVideoEditor}
	ravi  = &model.User{ID: 2, Username: "ravi", Team: model.TeamGraphicDesigner}
	clock = time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
)

func day(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *model.Date {
	d := day(s)
	return &d
}

type reportOpt func(*model.Report)

func custom(s string) reportOpt            { return func(r *model.Report) { r.CustomDate = dayPtr(s) } }
func shift(s model.Shift) reportOpt        { return func(r *model.Report) { r.Shift = s } }
func notes(s string) reportOpt             { return func(r *model.Report) { r.Notes = s } }
func tasks(t ...model.TaskEntry) reportOpt { return func(r *model.Report) { r.Tasks = t } }

func answer(label, value string) reportOpt {
	return func(r *model.Report) {
		r.Responses = append(r.Responses, model.DynamicFieldResponse{
			ReportID: r.ID,
			Field:    &model.DynamicField{Label: label, FieldType: model.FieldText},
			Value:    value,
		})
	}
}

func num(k string, n int) model.TaskEntry { return model.TaskEntry{Key: k, Value: model.IntValue(n)} }
func text(k, s string) model.TaskEntry    { return model.TaskEntry{Key: k, Value: model.TextValue(s)} }

func report(id int, u *model.User, opts ...reportOpt) model.Report {
	r := model.Report{
		ID:        id,
		UserID:    u.ID,
		User:      u,
		Shift:     model.Shift9To530,
		Date:      day("2024-01-10"),
		CreatedAt: clock.Add(time.Duration(id) * time.Minute),
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func TestMerge_SameKeySumsTasksAndCollectsNotes(t *testing.T) {
	rows := []model.Report{
		report(1, asha, custom("2024-01-10"), tasks(num("reel", 2)), notes("ok")),
		report(2, asha, custom("2024-01-10"), tasks(num("reel", 5), num("post", 1)), notes("late fix")),
	}

	got := Merge(rows, Display)

	require.Len(t, got, 1)
	assert.Equal(t, model.Tasks{num("Reel", 7), num("Post", 1)}, got[0].Tasks)
	assert.Equal(t, []string{"ok", "late fix"}, got[0].Notes)
	assert.Equal(t, "asha", got[0].Username)
	assert.Equal(t, model.TeamVideoEditor, got[0].Team)
	assert.Equal(t, "2024-01-10", got[0].Date.String())
	assert.Equal(t, "9:00 AM – 5:30 PM", got[0].ShiftLabel)
}

func TestMerge_SingleReportTitleCasesKeys(t *testing.T) {
	got := Merge([]model.Report{report(1, asha, tasks(num("a", 3), num("b", 0)))}, Display)

	require.Len(t, got, 1)
	assert.Equal(t, model.Tasks{num("A", 3), num("B", 0)}, got[0].Tasks)
	assert.Equal(t, []string{}, got[0].Notes)
}

func TestMerge_DynamicAnswerOnEitherRow(t *testing.T) {
	for _, onFirst := range []bool{true, false} {
		var first, second []reportOpt
		if onFirst {
			first = append(first, answer("Client Name", "Acme"))
		} else {
			second = append(second, answer("Client Name", "Acme"))
		}
		rows := []model.Report{
			report(1, asha, append(first, tasks(num("reel", 1)))...),
			report(2, asha, append(second, tasks(num("reel", 1)))...),
		}

		got := Merge(rows, Display)

		require.Len(t, got, 1)
		v, ok := got[0].Tasks.Get("Client Name")
		require.True(t, ok)
		assert.Equal(t, "Acme", v.String())
		reel, _ := got[0].Tasks.Get("Reel")
		assert.Equal(t, model.IntValue(2), reel)
	}
}

func TestMerge_DynamicAnswerLatestWins(t *testing.T) {
	rows := []model.Report{
		report(2, asha, answer("Client Name", "Globex")),
		report(1, asha, answer("Client Name", "Acme")),
	}

	got := Merge(rows, Display)

	v, _ := got[0].Tasks.Get("Client Name")
	assert.Equal(t, "Globex", v.String())
}

func permutations(rows []model.Report) [][]model.Report {
	if len(rows) <= 1 {
		return [][]model.Report{append([]model.Report(nil), rows...)}
	}
	var out [][]model.Report
	for i := range rows {
		rest := make([]model.Report, 0, len(rows)-1)
		rest = append(rest, rows[:i]...)
		rest = append(rest, rows[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]model.Report{rows[i]}, p...))
		}
	}
	return out
}

func TestMerge_OrderIndependent(t *testing.T) {
	rows := []model.Report{
		report(1, asha, tasks(num("reel", 2), text("vo_video", "n/a")), notes("first"), answer("Client", "A")),
		report(2, asha, tasks(num("reel", 3), num("vo_video", 4)), notes("second")),
		report(3, ravi, shift(model.ShiftHome), tasks(num("slider", 1))),
		report(4, asha, custom("2024-01-09"), tasks(num("reel", 9)), answer("Client", "B")),
		report(5, asha, tasks(text("reel", " 4 ")), answer("Client", "C")),
	}

	for _, mode := range []Mode{Display, Export} {
		want := Merge(rows, mode)
		for _, p := range permutations(rows) {
			if diff := cmp.Diff(want, Merge(p, mode)); diff != "" {
				t.Fatalf("mode %d: merge depends on input order (-want +got):\n%s", mode, diff)
			}
		}
	}
}

func TestMerge_OrderIndependentWithoutIDs(t *testing.T) {
	// all rows share id 0 and hence the same creation time
	rows := []model.Report{
		report(0, asha, tasks(text("reel", "raw")), notes("first"), answer("Client", "A")),
		report(0, asha, tasks(num("reel", 3)), notes("second"), answer("Client", "B")),
		report(0, asha, tasks(num("slider", 1)), answer("Client", "C")),
		report(0, ravi, notes("other user")),
	}

	for _, mode := range []Mode{Display, Export} {
		want := Merge(rows, mode)
		for _, p := range permutations(rows) {
			if diff := cmp.Diff(want, Merge(p, mode)); diff != "" {
				t.Fatalf("mode %d: merge depends on input order (-want +got):\n%s", mode, diff)
			}
		}
	}
}

func TestMerge_NonNumericStaticValues(t *testing.T) {
	rows := []model.Report{
		report(1, asha, tasks(num("reel", 2), text("vo_video", "two"))),
		report(2, asha, tasks(text("reel", "3"), text("reel_extra", "x"))),
	}

	display := Merge(rows, Display)
	require.Len(t, display, 1)
	assert.Equal(t, model.Tasks{num("Reel", 5)}, display[0].Tasks)

	export := Merge(rows, Export)
	require.Len(t, export, 1)
	assert.Equal(t, model.Tasks{
		num("Reel", 5),
		text("Vo Video", "two"),
		text("Reel Extra", "x"),
	}, export[0].Tasks)
}

func TestMerge_ExportNumberAfterRawValueReplacesIt(t *testing.T) {
	rows := []model.Report{
		report(1, asha, tasks(text("reel", "pending"))),
		report(2, asha, tasks(num("reel", 4))),
	}

	got := Merge(rows, Export)

	assert.Equal(t, model.Tasks{num("Reel", 4)}, got[0].Tasks)
}

func TestMerge_SeparateKeysInFirstEncounterOrder(t *testing.T) {
	rows := []model.Report{
		report(1, ravi, tasks(num("slider", 1))),
		report(2, asha, tasks(num("reel", 1))),
		report(3, asha, shift(model.ShiftHome), tasks(num("reel", 1))),
		report(4, asha, custom("2024-01-08"), tasks(num("reel", 1))),
		report(5, ravi, tasks(num("slider", 2))),
	}

	got := Merge(rows, Display)

	require.Len(t, got, 4)
	assert.Equal(t, "ravi", got[0].Username)
	assert.Equal(t, model.Tasks{num("Slider", 3)}, got[0].Tasks)
	assert.Equal(t, model.Shift9To530, got[1].Shift)
	assert.Equal(t, model.ShiftHome, got[2].Shift)
	assert.Equal(t, "2024-01-08", got[3].Date.String())
	assert.True(t, got[3].Late)
	assert.False(t, got[1].Late)
}

func TestMerge_StaticAndDynamicCollide(t *testing.T) {
	rows := []model.Report{
		report(1, asha, tasks(num("client_name", 1)), answer("Client Name", "Acme")),
	}

	got := Merge(rows, Display)

	assert.Equal(t, model.Tasks{text("Client Name", "Acme")}, got[0].Tasks)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, Display))
}
