package admin

import (
	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"

	"github.com/gin-gonic/gin"
)

type createAdminPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// ListAdmins 后台账号列表
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins()
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	response.Success(c, admins)
}

// CreateAdmin 新建后台账号并授予角色
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req createAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AuthService.CreateAdmin(req.Username, req.Password, req.Role)
	if err != nil {
		handlershared.RespondMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.admin_create_failed")
		return
	}
	if err := h.AuthzService.AssignAdminRole(admin.ID, admin.Role); err != nil {
		respondError(c, response.CodeInternal, "error.admin_role_assign_failed", err)
		return
	}

	creatorID, _ := c.Get("admin_id")
	requestLog(c).Infow("admin_created",
		"admin_id", admin.ID,
		"role", admin.Role,
		"created_by", creatorID,
	)
	response.Success(c, admin)
}

// GetCurrentAdmin 当前管理员信息、角色与生效权限
func (h *Handler) GetCurrentAdmin(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	permissions, err := h.AuthzService.AdminPermissions(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.admin_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"admin":       admin,
		"roles":       roles,
		"permissions": permissions,
	})
}
