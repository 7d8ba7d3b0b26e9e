package controllers

import (
	"time"

	"luxestay/constants"
	"luxestay/response"
	"luxestay/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	admin *services.AdminService
	users UserController
}

func NewAdminController(admin *services.AdminService, users UserController) AdminController {
	return AdminController{admin: admin, users: users}
}

func (a AdminController) Overview(c *gin.Context) {
	overview, err := a.admin.Overview(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, overview)
}

// GetUsers liệt kê tài khoản không phải admin khi không lọc theo role
func (a AdminController) GetUsers(c *gin.Context) {
	filter := parseUserFilter(c)
	if filter.Role == "" {
		filter.ExcludeRole = constants.RoleAdmin
	}
	a.users.listUsers(c, filter)
}

func Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
