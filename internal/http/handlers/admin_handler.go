package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswapper-backend/internal/dto"
	"github.com/ignatzorin/skillswapper-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswapper-backend/internal/http/response"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
)

// AdminHandler обслуживает маршруты администратора.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Login обрабатывает POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.admin.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "вход администратора выполнен", tokens)
}

// ListUsers обрабатывает GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	users, total, err := h.admin.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.UserListResponse{
		Users:      users,
		Pagination: dto.Pagination{Total: total, Limit: limit, Offset: offset},
	})
}

// DeleteUser обрабатывает DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "пользователь удалён", nil)
}
