package controllers

import (
	"luxestay/constants"
	"luxestay/dto"
	"luxestay/middleware"
	"luxestay/response"
	"luxestay/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{auth: auth}
}

func (a AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "User registered successfully", res)
}

func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.auth.Login(c.Request.Context(), req, "")
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Login successful", res)
}

// HotelRegister đăng ký tài khoản cho đối tác khách sạn
func (a AuthController) HotelRegister(c *gin.Context) {
	var req dto.HotelRegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.auth.RegisterHotel(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Hotel account registered successfully", res)
}

// HotelLogin chỉ chấp nhận tài khoản có role hotel
func (a AuthController) HotelLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.auth.Login(c.Request.Context(), req, constants.RoleHotel)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Login successful", res)
}

func (a AuthController) Me(c *gin.Context) {
	user, err := a.auth.Me(c.Request.Context(), middleware.GetActor(c).UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}
