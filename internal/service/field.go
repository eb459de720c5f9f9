package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"media-report/internal/model"

	"gorm.io/gorm"
)

// FieldService manages the admin-defined dynamic fields.
type FieldService struct{ db *gorm.DB }

func NewFieldService(db *gorm.DB) *FieldService { return &FieldService{db: db} }

func (s *FieldService) Create(ctx context.Context, req model.FieldRequest) (*model.DynamicField, error) {
	verr := newValidationError()
	if !req.Team.Valid() {
		verr.add("team", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", req.Team))
	}
	if !req.FieldType.Valid() {
		verr.add("field_type", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", req.FieldType))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		verr.add("name", "This field is required.")
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		verr.add("label", "This field is required.")
	}
	if !verr.empty() {
		return nil, verr
	}

	var n int64
	err := s.db.WithContext(ctx).Model(&model.DynamicField{}).
		Where("team = ? AND name = ?", req.Team, name).Count(&n).Error
	if err != nil {
		return nil, fmt.Errorf("check field name: %w", err)
	}
	if n > 0 {
		return nil, fmt.Errorf("field %s for %s: %w", name, req.Team, ErrConflict)
	}

	f := &model.DynamicField{
		Team:      req.Team,
		Name:      name,
		Label:     label,
		FieldType: req.FieldType,
		Required:  req.Required,
	}
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, fmt.Errorf("insert field: %w", err)
	}
	return f, nil
}

// List returns fields in creation order, optionally for one team.
func (s *FieldService) List(ctx context.Context, team model.Team) ([]model.DynamicField, error) {
	q := s.db.WithContext(ctx).Order("id")
	if team != "" {
		q = q.Where("team = ?", team)
	}
	var fields []model.DynamicField
	if err := q.Find(&fields).Error; err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fields, nil
}

// Delete removes a field and every answer given to it.
func (s *FieldService) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f model.DynamicField
		if err := tx.First(&f, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("field %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("query field: %w", err)
		}
		if err := tx.Where("field_id = ?", id).Delete(&model.DynamicFieldResponse{}).Error; err != nil {
			return fmt.Errorf("delete responses: %w", err)
		}
		if err := tx.Delete(&f).Error; err != nil {
			return fmt.Errorf("delete field: %w", err)
		}
		return nil
	})
}
