package service

import (
	"context"
	"errors"
	"testing"

	"media-report/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFor(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamMarketing)
	f.field(t, model.TeamMarketing, "client_name", "Client Name", model.FieldText, true)
	f.field(t, model.TeamReporter, "beat", "Beat", model.FieldText, false)

	form, err := f.submit.FormFor(context.Background(), u)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-10", form.Today.String())
	assert.Equal(t, model.DefaultShift, form.Shift)
	assert.Len(t, form.Shifts, len(model.Shifts))
	require.Len(t, form.Static, 3)
	assert.Equal(t, "client_visit_details", form.Static[0].Key)
	assert.Equal(t, "client_follow_up_details", form.Static[2].Key)
	require.Len(t, form.Dynamic, 1)
	assert.Equal(t, DynamicInput{
		Name: "client_name", Label: "Client Name", Type: model.FieldText, InputType: "text", Required: true,
	}, form.Dynamic[0])
}

func TestSubmit_StoresOnlyProvidedValues(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamVideoEditor)

	r := f.send(t, u, model.SubmitRequest{
		Shift:  string(model.Shift9To530),
		Notes:  "two reels",
		Fields: map[string]string{"reel_video": " 3 ", "logo_video": "", "vo_video": "0"},
	})

	var stored model.Report
	require.NoError(t, f.db.First(&stored, r.ID).Error)
	assert.Equal(t, model.Tasks{
		{Key: "reel_video", Value: model.IntValue(3)},
		{Key: "vo_video", Value: model.IntValue(0)},
	}, stored.Tasks)
	assert.Equal(t, "2024-05-10", stored.Date.String())
	assert.Nil(t, stored.CustomDate)
	assert.Equal(t, "two reels", stored.Notes)
	assert.False(t, stored.IsLate())
}

func TestSubmit_IgnoresKeysOutsideTheCatalog(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamReporter)

	r := f.send(t, u, model.SubmitRequest{
		Shift:  string(model.ShiftHome),
		Fields: map[string]string{"interview": "1", "reel_video": "9"},
	})
	assert.Equal(t, []string{"interview"}, r.Tasks.Keys())
}

func TestSubmit_CustomDateMakesReportLate(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamReporter)

	r := f.send(t, u, model.SubmitRequest{Shift: string(model.Shift9To530), CustomDate: "2024-05-09"})

	var stored model.Report
	require.NoError(t, f.db.First(&stored, r.ID).Error)
	require.NotNil(t, stored.CustomDate)
	assert.Equal(t, "2024-05-09", stored.EffectiveDate().String())
	assert.True(t, stored.IsLate())
}

func TestSubmit_ValidationWritesNothing(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamMarketing)
	f.field(t, model.TeamMarketing, "client_name", "Client Name", model.FieldText, true)
	f.field(t, model.TeamMarketing, "visits", "Visits", model.FieldNumber, false)

	_, err := f.submit.Submit(context.Background(), u, model.SubmitRequest{
		Shift:      "night",
		CustomDate: "10/05/2024",
		Fields:     map[string]string{"next_day_plan": "soon", "client_visit_details": "-1"},
		Dynamic:    map[string]string{"visits": "many"},
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"shift":                "Select a valid choice. night is not one of the available choices.",
		"custom_date":          "Enter a valid date.",
		"next_day_plan":        "Enter a whole number.",
		"client_visit_details": "Ensure this value is greater than or equal to 0.",
		"client_name":          "This field is required.",
		"visits":               "Enter a number.",
	}, verr.Fields)
	assert.Zero(t, f.count(t, &model.Report{}))
	assert.Zero(t, f.count(t, &model.DynamicFieldResponse{}))
}

func TestSubmit_MissingShift(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamReporter)

	_, err := f.submit.Submit(context.Background(), u, model.SubmitRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required.", verr.Fields["shift"])
}

func TestSubmit_StoresDynamicAnswers(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamMarketing)
	name := f.field(t, model.TeamMarketing, "client_name", "Client Name", model.FieldText, true)
	f.field(t, model.TeamMarketing, "follow_up", "Follow Up", model.FieldDate, false)

	r := f.send(t, u, model.SubmitRequest{
		Shift:   string(model.Shift9To530),
		Dynamic: map[string]string{"client_name": "Acme"},
	})

	require.Len(t, r.Responses, 1)
	var stored []model.DynamicFieldResponse
	require.NoError(t, f.db.Where("report_id = ?", r.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, name.ID, stored[0].FieldID)
	assert.Equal(t, "Acme", stored[0].Value)
}

func TestSubmit_RepeatedSubmissionsAreKept(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "asha", model.TeamVideoEditor)

	req := model.SubmitRequest{Shift: string(model.Shift9To530), Fields: map[string]string{"reel_video": "1"}}
	f.send(t, u, req)
	f.send(t, u, req)

	assert.EqualValues(t, 2, f.count(t, &model.Report{}))
}
