package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

type SessionUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Team     Team   `json:"team"`
	IsStaff  bool   `json:"is_staff"`
}

// SubmitRequest carries raw form values; Fields holds the static task
// inputs by key and Dynamic the extra fields by name.
type SubmitRequest struct {
	CustomDate string            `json:"custom_date"`
	Shift      string            `json:"shift"`
	Notes      string            `json:"notes"`
	Fields     map[string]string `json:"fields"`
	Dynamic    map[string]string `json:"dynamic"`
}

type FieldRequest struct {
	Team      Team      `json:"team" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Label     string    `json:"label" binding:"required"`
	FieldType FieldType `json:"field_type" binding:"required"`
	Required  bool      `json:"required"`
}

type NoticeRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UserRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Team     Team    `json:"team"`
	Contact  *string `json:"contact"`
	IsStaff  bool    `json:"is_staff"`
}

type TeamRequest struct {
	Team Team `json:"team" binding:"required"`
}
