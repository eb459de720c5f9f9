package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"media-report/internal/model"

	"gorm.io/gorm"
)

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func (s *UserService) Create(ctx context.Context, req model.UserRequest) (*model.User, error) {
	verr := newValidationError()
	username := strings.TrimSpace(req.Username)
	if username == "" {
		verr.add("username", "This field is required.")
	}
	if req.Password == "" {
		verr.add("password", "This field is required.")
	}
	if !req.Team.Valid() {
		verr.add("team", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", req.Team))
	}
	if !verr.empty() {
		return nil, verr
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if n > 0 {
		return nil, fmt.Errorf("user %s: %w", username, ErrConflict)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username: username,
		Password: hash,
		Team:     req.Team,
		Contact:  req.Contact,
		IsStaff:  req.IsStaff,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *UserService) ByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetTeam moves a user to another team. Reports keep pointing at the user,
// so dashboards show them under the new team from now on.
func (s *UserService) SetTeam(ctx context.Context, username string, team model.Team) (*model.User, error) {
	if !team.Valid() {
		verr := newValidationError()
		verr.add("team", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", team))
		return nil, verr
	}
	u, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(u).Update("team", team).Error; err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	u.Team = team
	return u, nil
}

// Delete removes the user with every report and answer they submitted.
// Notices they wrote stay, without an author.
func (s *UserService) Delete(ctx context.Context, username string) error {
	u, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reportIDs := tx.Model(&model.Report{}).Select("id").Where("user_id = ?", u.ID)
		if err := tx.Where("report_id IN (?)", reportIDs).Delete(&model.DynamicFieldResponse{}).Error; err != nil {
			return fmt.Errorf("delete responses: %w", err)
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&model.Report{}).Error; err != nil {
			return fmt.Errorf("delete reports: %w", err)
		}
		if err := tx.Model(&model.AdminNotice{}).Where("created_by = ?", u.ID).Update("created_by", nil).Error; err != nil {
			return fmt.Errorf("detach notices: %w", err)
		}
		if err := tx.Delete(&model.User{}, u.ID).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
