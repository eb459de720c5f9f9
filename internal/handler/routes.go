package handler

import (
	"github.com/gin-gonic/gin"
)

// Register mounts the API. auth guards everything except login; staff
// guards the admin group.
func Register(r gin.IRouter, auth, staff gin.HandlerFunc, authH *AuthHandler, reportH *ReportHandler, adminH *AdminHandler) {
	r.POST("/api/login", authH.Login)

	api := r.Group("/api", auth)
	api.POST("/logout", authH.Logout)
	api.GET("/report", reportH.Form)
	api.POST("/report", reportH.Submit)
	api.GET("/my-report/:date", reportH.Preview)
	api.GET("/notices", reportH.Notices)

	admin := api.Group("/admin", staff)
	admin.GET("/reports", adminH.Overview)
	admin.GET("/reports/user/:username", adminH.UserDetail)
	admin.GET("/export", adminH.Export)
	admin.GET("/fields", adminH.ListFields)
	admin.POST("/fields", adminH.CreateField)
	admin.DELETE("/fields/:id", adminH.DeleteField)
	admin.POST("/notices", adminH.CreateNotice)
	admin.GET("/users", adminH.ListUsers)
	admin.POST("/users", adminH.CreateUser)
	admin.PUT("/users/:username/team", adminH.SetTeam)
	admin.DELETE("/users/:username", adminH.DeleteUser)
}
