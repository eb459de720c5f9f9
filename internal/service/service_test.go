package service

import (
	"context"
	"testing"
	"time"

	"media-report/internal/catalog"
	"media-report/internal/database/dbtest"
	"media-report/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var clock = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	users   *UserService
	fields  *FieldService
	submit  *SubmissionService
	reports *ReportService
	notices *NoticeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	sub := NewSubmissionService(db, catalog.New(catalog.DefaultTable(), db))
	sub.now = func() time.Time { return clock }
	return &fixture{
		db:      db,
		users:   NewUserService(db),
		fields:  NewFieldService(db),
		submit:  sub,
		reports: NewReportService(db),
		notices: NewNoticeService(db),
	}
}

func (f *fixture) user(t *testing.T, name string, team model.Team) *model.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), model.UserRequest{Username: name, Password: "secret", Team: team})
	require.NoError(t, err)
	return u
}

func (f *fixture) field(t *testing.T, team model.Team, name, label string, typ model.FieldType, required bool) *model.DynamicField {
	t.Helper()
	fd, err := f.fields.Create(context.Background(), model.FieldRequest{
		Team: team, Name: name, Label: label, FieldType: typ, Required: required,
	})
	require.NoError(t, err)
	return fd
}

func (f *fixture) send(t *testing.T, u *model.User, req model.SubmitRequest) *model.Report {
	t.Helper()
	r, err := f.submit.Submit(context.Background(), u, req)
	require.NoError(t, err)
	return r
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func mustDate(t *testing.T, s string) *model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return &d
}
