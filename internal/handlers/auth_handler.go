package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"eyecare-service/internal/service"
	"eyecare-service/internal/utils"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	user, err := h.Service.Register(context.Background(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			utils.ErrorResponse(c, 409, "Username already exists", nil)
			return
		}
		utils.InternalErrorResponse(c, "Failed to register user", err)
		return
	}
	utils.CreatedResponse(c, "User registered", gin.H{
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	token, role, err := h.Service.Login(context.Background(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid username or password")
			return
		}
		utils.InternalErrorResponse(c, "Failed to log in", err)
		return
	}
	utils.SuccessResponse(c, "Logged in", gin.H{
		"token":    token,
		"username": req.Username,
		"role":     role,
	})
}
