package controllers

import (
	"luxestay/dto"
	"luxestay/middleware"
	"luxestay/repository"
	"luxestay/response"
	"luxestay/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) UserController {
	return UserController{users: users}
}

func parseUserFilter(c *gin.Context) repository.UserFilter {
	filter := repository.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}
	filter.Page, filter.Limit = services.NormalizePaging(queryInt(c, "page", 1), queryInt(c, "limit", 0))
	return filter
}

func (u UserController) listUsers(c *gin.Context, filter repository.UserFilter) {
	users, total, err := u.users.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, users, filter.Page, totalPages(total, filter.Limit), int(total), filter.Limit)
}

func (u UserController) GetUsers(c *gin.Context) {
	u.listUsers(c, parseUserFilter(c))
}

func (u UserController) GetUser(c *gin.Context) {
	user, err := u.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateStatus khóa hoặc mở khóa tài khoản
func (u UserController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := u.users.UpdateStatus(c.Request.Context(), middleware.GetActor(c), c.Param("id"), *req.IsActive)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "User status updated successfully", user)
}

func (u UserController) UpdateRole(c *gin.Context) {
	var req dto.UpdateUserRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := u.users.UpdateRole(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "User role updated successfully", user)
}

func (u UserController) DeleteUser(c *gin.Context) {
	if err := u.users.DeleteUser(c.Request.Context(), middleware.GetActor(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "User deleted successfully", nil)
}
