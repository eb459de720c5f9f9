package service

import (
	"context"
	"fmt"
	"strings"

	"media-report/internal/model"

	"gorm.io/gorm"
)

const DefaultNoticeLimit = 20

type NoticeService struct{ db *gorm.DB }

func NewNoticeService(db *gorm.DB) *NoticeService { return &NoticeService{db: db} }

// List returns the newest notices first. A non-positive limit uses the default.
func (s *NoticeService) List(ctx context.Context, limit int) ([]model.AdminNotice, error) {
	if limit <= 0 {
		limit = DefaultNoticeLimit
	}
	var notices []model.AdminNotice
	err := s.db.WithContext(ctx).Preload("CreatedBy").
		Order("created_at DESC, id DESC").Limit(limit).
		Find(&notices).Error
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

func (s *NoticeService) Create(ctx context.Context, author *model.User, req model.NoticeRequest) (*model.AdminNotice, error) {
	verr := newValidationError()
	title := strings.TrimSpace(req.Title)
	if title == "" {
		verr.add("title", "This field is required.")
	}
	if strings.TrimSpace(req.Content) == "" {
		verr.add("content", "This field is required.")
	}
	if !verr.empty() {
		return nil, verr
	}

	n := &model.AdminNotice{Title: title, Content: req.Content}
	if author != nil {
		n.CreatedByID = &author.ID
	}
	if err := s.db.WithContext(ctx).Omit("CreatedBy").Create(n).Error; err != nil {
		return nil, fmt.Errorf("insert notice: %w", err)
	}
	n.CreatedBy = author
	return n, nil
}
