package public

import (
	"time"

	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/service"

	"github.com/gin-gonic/gin"
)

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserAuthResponse 注册/登录返回
type UserAuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req)
	if err != nil {
		handlershared.RespondMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	requestLog(c).Infow("user_registered", "user_id", user.ID)
	response.Success(c, UserAuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		handlershared.RespondMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	response.Success(c, UserAuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetCurrentUser 当前用户资料（含常用地址）
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		handlershared.RespondMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.profile_fetch_failed")
		return
	}
	response.Success(c, user)
}

// UpdateUserProfile 更新资料与常用地址
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(uid, req)
	if err != nil {
		handlershared.RespondMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.profile_update_failed")
		return
	}
	response.Success(c, user)
}
