package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"media-report/internal/catalog"
	"media-report/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionService builds the report form of a user and stores submissions.
type SubmissionService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewSubmissionService(db *gorm.DB, cat *catalog.Catalog) *SubmissionService {
	return &SubmissionService{db: db, catalog: cat, now: time.Now}
}

type DynamicInput struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Type      model.FieldType `json:"type"`
	InputType string          `json:"input_type"`
	Required  bool            `json:"required"`
}

type Form struct {
	Today   model.Date      `json:"today"`
	Shift   model.Shift     `json:"default_shift"`
	Shifts  []model.Option  `json:"shifts"`
	Static  []catalog.Field `json:"static_fields"`
	Dynamic []DynamicInput  `json:"dynamic_fields"`
}

func (s *SubmissionService) FormFor(ctx context.Context, user *model.User) (*Form, error) {
	fields, err := s.catalog.DynamicFields(ctx, user.Team)
	if err != nil {
		return nil, err
	}
	inputs := make([]DynamicInput, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		inputs = append(inputs, DynamicInput{
			Name:      f.Name,
			Label:     f.Label,
			Type:      f.FieldType,
			InputType: f.Kind().InputType(),
			Required:  f.Required,
		})
	}
	return &Form{
		Today:   model.NewDate(s.now()),
		Shift:   model.DefaultShift,
		Shifts:  model.ShiftOptions(),
		Static:  s.catalog.StaticFields(user.Team),
		Dynamic: inputs,
	}, nil
}

// Submit validates the raw form values and stores one new report with its
// dynamic answers in a single transaction. Earlier reports for the same
// day and shift are left alone; they are combined when read.
func (s *SubmissionService) Submit(ctx context.Context, user *model.User, req model.SubmitRequest) (*model.Report, error) {
	fields, err := s.catalog.DynamicFields(ctx, user.Team)
	if err != nil {
		return nil, err
	}
	verr := newValidationError()

	shift := model.Shift(strings.TrimSpace(req.Shift))
	switch {
	case shift == "":
		verr.add("shift", "This field is required.")
	case !shift.Valid():
		verr.add("shift", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", req.Shift))
	}

	var customDate *model.Date
	if raw := strings.TrimSpace(req.CustomDate); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			verr.add("custom_date", "Enter a valid date.")
		} else {
			customDate = &d
		}
	}

	// only provided values are kept; absent fields are not zero-filled
	var tasks model.Tasks
	for _, f := range s.catalog.StaticFields(user.Team) {
		raw := strings.TrimSpace(req.Fields[f.Key])
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.add(f.Key, "Enter a whole number.")
			continue
		}
		if n < 0 {
			verr.add(f.Key, "Ensure this value is greater than or equal to 0.")
			continue
		}
		tasks = append(tasks, model.TaskEntry{Key: f.Key, Value: model.IntValue(n)})
	}

	var answers []model.DynamicFieldResponse
	for i := range fields {
		f := &fields[i]
		value := req.Dynamic[f.Name]
		if strings.TrimSpace(value) == "" {
			if f.Required {
				verr.add(f.Name, "This field is required.")
			}
			continue
		}
		if err := f.Kind().Check(value); err != nil {
			verr.add(f.Name, err.Error())
			continue
		}
		answers = append(answers, model.DynamicFieldResponse{FieldID: f.ID, Field: f, Value: value})
	}

	if !verr.empty() {
		return nil, verr
	}

	report := &model.Report{
		UserID:     user.ID,
		Shift:      shift,
		Date:       model.NewDate(s.now()),
		CustomDate: customDate,
		Notes:      req.Notes,
		Tasks:      tasks,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(report).Error; err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].ReportID = report.ID
		}
		if err := tx.Omit(clause.Associations).Create(&answers).Error; err != nil {
			return fmt.Errorf("insert responses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	report.User = user
	report.Responses = answers
	return report, nil
}
