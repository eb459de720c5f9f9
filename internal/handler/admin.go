package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"media-report/internal/export"
	"media-report/internal/logger"
	"media-report/internal/model"
	"media-report/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the staff-only dashboards and administration.
type AdminHandler struct {
	users   *service.UserService
	fields  *service.FieldService
	reports *service.ReportService
	notices *service.NoticeService
}

func NewAdminHandler(users *service.UserService, fields *service.FieldService, reports *service.ReportService,
	notices *service.NoticeService) *AdminHandler {
	return &AdminHandler{users: users, fields: fields, reports: reports, notices: notices}
}

// filter reads team, user, date, start_date and end_date from the query.
func filter(c *gin.Context) (service.Filter, bool) {
	f := service.Filter{Team: model.Team(c.Query("team")), Username: c.Query("user")}
	var ok bool
	if f.Date, ok = queryDate(c, "date"); !ok {
		return f, false
	}
	if f.Start, ok = queryDate(c, "start_date"); !ok {
		return f, false
	}
	if f.End, ok = queryDate(c, "end_date"); !ok {
		return f, false
	}
	return f, true
}

// Overview handles GET /api/admin/reports.
func (h *AdminHandler) Overview(c *gin.Context) {
	f, ok := filter(c)
	if !ok {
		return
	}
	ov, err := h.reports.Overview(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// UserDetail handles GET /api/admin/reports/user/:username.
func (h *AdminHandler) UserDetail(c *gin.Context) {
	f, ok := filter(c)
	if !ok {
		return
	}
	d, err := h.reports.UserDetail(c.Request.Context(), c.Param("username"), f)
	if err != nil {
		if isNotFound(err) {
			notFound(c, err, "/api/admin/reports")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Export handles GET /api/admin/export.
func (h *AdminHandler) Export(c *gin.Context) {
	f, ok := filter(c)
	if !ok {
		return
	}
	sheet, err := h.reports.Export(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName))
	c.Status(http.StatusOK)
	if err := export.WriteXLSX(c.Writer, sheet); err != nil {
		logger.FromContext(c.Request.Context()).Error("export.write", "err", err)
		return
	}
	logger.FromContext(c.Request.Context()).Info("export.ok", "rows", len(sheet.Rows))
}

func (h *AdminHandler) ListFields(c *gin.Context) {
	fields, err := h.fields.List(c.Request.Context(), model.Team(c.Query("team")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

func (h *AdminHandler) CreateField(c *gin.Context) {
	var req model.FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	f, err := h.fields.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *AdminHandler) DeleteField(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid field id")
		return
	}
	if err := h.fields.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) CreateNotice(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req model.NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	n, err := h.notices.Create(c.Request.Context(), u, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req model.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	u, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *AdminHandler) SetTeam(c *gin.Context) {
	var req model.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	u, err := h.users.SetTeam(c.Request.Context(), c.Param("username"), req.Team)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("username")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
