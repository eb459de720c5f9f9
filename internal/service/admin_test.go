package service

import (
	"context"
	"testing"

	"media-report/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.user(t, "asha", model.TeamReporter)
	auth := NewAuthService(f.db)
	ctx := context.Background()

	u, err := auth.Login(ctx, "asha", "secret")
	require.NoError(t, err)
	assert.Equal(t, "asha", u.Username)
	assert.NotEqual(t, "secret", u.Password)

	_, err = auth.Login(ctx, "asha", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "ghost", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "asha", model.TeamReporter)

	_, err := f.users.Create(ctx, model.UserRequest{Username: "asha", Password: "x", Team: model.TeamReporter})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.users.Create(ctx, model.UserRequest{Username: " ", Team: "pilot"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestUserSetTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "asha", model.TeamReporter)

	u, err := f.users.SetTeam(ctx, "asha", model.TeamCameraman)
	require.NoError(t, err)
	assert.Equal(t, model.TeamCameraman, u.Team)

	stored, err := f.users.Get(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, model.TeamCameraman, stored.Team)

	_, err = f.users.SetTeam(ctx, "ghost", model.TeamCameraman)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.users.SetTeam(ctx, "asha", "pilot")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUserDelete_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	asha := f.user(t, "asha", model.TeamMarketing)
	ravi := f.user(t, "ravi", model.TeamMarketing)
	f.field(t, model.TeamMarketing, "client_name", "Client Name", model.FieldText, false)

	req := model.SubmitRequest{Shift: string(model.Shift9To530), Dynamic: map[string]string{"client_name": "Acme"}}
	f.send(t, asha, req)
	f.send(t, ravi, req)
	notice, err := f.notices.Create(ctx, asha, model.NoticeRequest{Title: "Holiday", Content: "Office closed"})
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, "asha"))

	assert.EqualValues(t, 1, f.count(t, &model.User{}))
	assert.EqualValues(t, 1, f.count(t, &model.Report{}))
	assert.EqualValues(t, 1, f.count(t, &model.DynamicFieldResponse{}))

	var kept model.AdminNotice
	require.NoError(t, f.db.First(&kept, notice.ID).Error)
	assert.Nil(t, kept.CreatedByID)

	assert.ErrorIs(t, f.users.Delete(ctx, "asha"), ErrNotFound)
}

func TestFieldCreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.field(t, model.TeamMarketing, "client_name", "Client Name", model.FieldText, true)
	f.field(t, model.TeamReporter, "beat", "Beat", model.FieldTextarea, false)

	_, err := f.fields.Create(ctx, model.FieldRequest{
		Team: model.TeamMarketing, Name: "client_name", Label: "Again", FieldType: model.FieldText,
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.fields.Create(ctx, model.FieldRequest{Team: model.TeamMarketing, Name: "x", Label: "X", FieldType: "color"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "field_type")

	all, err := f.fields.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mkt, err := f.fields.List(ctx, model.TeamMarketing)
	require.NoError(t, err)
	require.Len(t, mkt, 1)
	assert.Equal(t, "client_name", mkt[0].Name)
}

func TestFieldDelete_RemovesAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "asha", model.TeamMarketing)
	fd := f.field(t, model.TeamMarketing, "client_name", "Client Name", model.FieldText, false)
	f.send(t, u, model.SubmitRequest{Shift: string(model.Shift9To530), Dynamic: map[string]string{"client_name": "Acme"}})

	require.NoError(t, f.fields.Delete(ctx, fd.ID))
	assert.Zero(t, f.count(t, &model.DynamicFieldResponse{}))
	assert.EqualValues(t, 1, f.count(t, &model.Report{}))

	assert.ErrorIs(t, f.fields.Delete(ctx, fd.ID), ErrNotFound)
}

func TestNotices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "boss", model.TeamReporter)

	_, err := f.notices.Create(ctx, admin, model.NoticeRequest{Title: "First", Content: "one"})
	require.NoError(t, err)
	_, err = f.notices.Create(ctx, nil, model.NoticeRequest{Title: "Second", Content: "two"})
	require.NoError(t, err)

	list, err := f.notices.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Title)
	assert.Nil(t, list[0].CreatedBy)
	require.NotNil(t, list[1].CreatedBy)
	assert.Equal(t, "boss", list[1].CreatedBy.Username)

	list, err = f.notices.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.notices.Create(ctx, admin, model.NoticeRequest{Title: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}
