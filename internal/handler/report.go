package handler

import (
	"context"
	"net/http"
	"strconv"

	"media-report/internal/logger"
	"media-report/internal/model"
	"media-report/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the member side: the daily form, submission and
// the preview of one's own reports.
type ReportHandler struct {
	submit  *service.SubmissionService
	reports *service.ReportService
	notices *service.NoticeService
	sync    *service.CatalogSync
}

func NewReportHandler(submit *service.SubmissionService, reports *service.ReportService,
	notices *service.NoticeService, sync *service.CatalogSync) *ReportHandler {
	return &ReportHandler{submit: submit, reports: reports, notices: notices, sync: sync}
}

// Form handles GET /api/report.
func (h *ReportHandler) Form(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	form, err := h.submit.FormFor(c.Request.Context(), u)
	if err != nil {
		fail(c, err)
		return
	}
	notices, err := h.notices.List(c.Request.Context(), service.DefaultNoticeLimit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form, "notices": notices})
}

// Submit handles POST /api/report.
func (h *ReportHandler) Submit(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req model.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	r, err := h.submit.Submit(c.Request.Context(), u, req)
	if err != nil {
		fail(c, err)
		return
	}
	logger.FromContext(c.Request.Context()).Info("report.submit",
		"uid", u.ID, "report", r.ID, "date", r.EffectiveDate().String(), "shift", r.Shift, "late", r.IsLate())

	if h.sync != nil {
		go h.sync.SyncReport(context.WithoutCancel(c.Request.Context()), r)
	}
	c.JSON(http.StatusCreated, gin.H{"id": r.ID, "date": r.EffectiveDate(), "is_late": r.IsLate()})
}

// Preview handles GET /api/my-report/:date.
func (h *ReportHandler) Preview(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	records, err := h.reports.Preview(c.Request.Context(), u, date)
	if err != nil {
		if isNotFound(err) {
			notFound(c, err, "/api/report")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "reports": records})
}

// Notices handles GET /api/notices?limit=.
func (h *ReportHandler) Notices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	notices, err := h.notices.List(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notices)
}
