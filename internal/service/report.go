package service

import (
	"context"
	"fmt"

	"media-report/internal/aggregate"
	"media-report/internal/export"
	"media-report/internal/model"

	"gorm.io/gorm"
)

const effectiveDate = "COALESCE(reports.custom_date, reports.date)"

// Filter narrows the reports read for dashboards and exports. Dates apply
// to the effective date of a report; Start and End are inclusive.
type Filter struct {
	Team     model.Team
	Username string
	Date     *model.Date
	Start    *model.Date
	End      *model.Date
}

type ReportService struct{ db *gorm.DB }

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{db: db} }

// Find loads the matching raw rows with their user and dynamic answers,
// oldest first.
func (s *ReportService) Find(ctx context.Context, f Filter) ([]model.Report, error) {
	q := s.db.WithContext(ctx).Model(&model.Report{}).
		Select("reports.*").
		Joins("JOIN users ON users.id = reports.user_id")
	if f.Team != "" {
		q = q.Where("users.team = ?", f.Team)
	}
	if f.Username != "" {
		q = q.Where("users.username = ?", f.Username)
	}
	if f.Date != nil {
		q = q.Where(effectiveDate+" = ?", f.Date.String())
	}
	if f.Start != nil {
		q = q.Where(effectiveDate+" >= ?", f.Start.String())
	}
	if f.End != nil {
		q = q.Where(effectiveDate+" <= ?", f.End.String())
	}

	var reports []model.Report
	err := q.Preload("User").
		Preload("Responses", func(db *gorm.DB) *gorm.DB { return db.Order("dynamic_field_responses.id") }).
		Preload("Responses.Field").
		Order("reports.created_at, reports.id").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return reports, nil
}

type Overview struct {
	Reports []aggregate.Combined `json:"reports"`
	ByTeam  []aggregate.Count    `json:"team_chart"`
	ByUser  []aggregate.Count    `json:"user_chart"`
	Teams   []model.Option       `json:"teams"`
	Users   []string             `json:"users"`
	Shifts  []model.Option       `json:"shifts"`
}

// Overview is the administrator dashboard: merged records plus bar chart
// counts over the raw rows.
func (s *ReportService) Overview(ctx context.Context, f Filter) (*Overview, error) {
	reports, err := s.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	var users []string
	if err := s.db.WithContext(ctx).Model(&model.User{}).Order("username").Pluck("username", &users).Error; err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return &Overview{
		Reports: aggregate.Merge(reports, aggregate.Display),
		ByTeam:  aggregate.CountByTeam(reports),
		ByUser:  aggregate.CountByUser(reports),
		Teams:   model.TeamOptions(),
		Users:   users,
		Shifts:  model.ShiftOptions(),
	}, nil
}

type UserDetail struct {
	User    *model.User          `json:"user"`
	Reports []aggregate.Combined `json:"reports"`
	Detail  aggregate.Detail     `json:"detail"`
}

func (s *ReportService) UserDetail(ctx context.Context, username string, f Filter) (*UserDetail, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&u).Error; err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	f.Username = username
	f.Team = ""
	reports, err := s.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return &UserDetail{
		User:    &u,
		Reports: aggregate.Merge(reports, aggregate.Display),
		Detail:  aggregate.BuildDetail(reports),
	}, nil
}

// Preview returns what the user submitted for one effective date.
func (s *ReportService) Preview(ctx context.Context, user *model.User, date model.Date) ([]aggregate.Combined, error) {
	reports, err := s.Find(ctx, Filter{Username: user.Username, Date: &date})
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("reports of %s on %s: %w", user.Username, date, ErrNotFound)
	}
	return aggregate.Merge(reports, aggregate.Display), nil
}

// Export builds the spreadsheet rows for the filtered reports.
func (s *ReportService) Export(ctx context.Context, f Filter) (export.Sheet, error) {
	reports, err := s.Find(ctx, f)
	if err != nil {
		return export.Sheet{}, err
	}
	return export.Flatten(aggregate.Merge(reports, aggregate.Export)), nil
}
