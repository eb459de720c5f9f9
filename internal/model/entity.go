package model

import "time"

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	Password  string    `json:"-"`
	Team      Team      `json:"team"`
	Contact   *string   `json:"contact,omitempty"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

type Report struct {
	ID         int                    `gorm:"primaryKey" json:"id"`
	UserID     int                    `json:"user_id"`
	User       *User                  `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Shift      Shift                  `json:"shift"`
	Date       Date                   `json:"date"`
	CustomDate *Date                  `json:"custom_date,omitempty"`
	Notes      string                 `json:"notes"`
	Tasks      Tasks                  `json:"tasks"`
	Responses  []DynamicFieldResponse `gorm:"foreignKey:ReportID" json:"responses,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// EffectiveDate is the day the report covers.
func (r *Report) EffectiveDate() Date {
	if r.CustomDate != nil {
		return *r.CustomDate
	}
	return r.Date
}

// IsLate reports whether the report was filed after the day it covers.
func (r *Report) IsLate() bool {
	return r.CustomDate != nil && r.CustomDate.Before(r.Date)
}

type DynamicField struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Team      Team      `json:"team"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	FieldType FieldType `json:"field_type"`
	Required  bool      `json:"required"`
}

func (f *DynamicField) Kind() FieldKind { return f.FieldType.Kind() }

type DynamicFieldResponse struct {
	ID       int           `gorm:"primaryKey" json:"id"`
	ReportID int           `json:"report_id"`
	FieldID  int           `json:"field_id"`
	Field    *DynamicField `json:"field,omitempty"`
	Value    string        `json:"value"`
}

type AdminNotice struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedByID *int      `gorm:"column:created_by" json:"created_by,omitempty"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"author,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (User) TableName() string                 { return "users" }
func (Report) TableName() string               { return "reports" }
func (DynamicField) TableName() string         { return "dynamic_fields" }
func (DynamicFieldResponse) TableName() string { return "dynamic_field_responses" }
func (AdminNotice) TableName() string          { return "admin_notices" }
