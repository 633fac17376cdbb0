package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherpress/internal/app"
	"gopherpress/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type SignUpRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=128"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	RepeatPassword string `json:"repeatPassword" binding:"required,min=8,max=128"`
}

type SignInRequest struct {
	Username string `json:"username" binding:"required,min=3,max=128"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.SignUp(app.SignUpInput{
		Username:       req.Username,
		Password:       req.Password,
		RepeatPassword: req.RepeatPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPasswordsDontMatch):
			response.Error(c, http.StatusBadRequest, response.CodePasswordsMismatch, err.Error())
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, response.CodeUsernameExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "sign up failed")
		}
		return
	}

	response.Created(c, gin.H{"token": result.Token})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.SignIn(app.SignInInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredential, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "sign in failed")
		}
		return
	}

	response.OK(c, gin.H{"token": result.Token})
}
