package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswapper-backend/internal/dto"
	"github.com/ignatzorin/skillswapper-backend/internal/http/response"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
)

// SkillHandler обслуживает справочник навыков и навыки текущего пользователя.
type SkillHandler struct {
	skills *service.SkillService
}

func NewSkillHandler(skills *service.SkillService) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// ListSkills обрабатывает GET /api/skills?search=.
func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skills.ListSkills(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, skills)
}

// ListMine обрабатывает GET /api/users/me/skills.
func (h *SkillHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	skills, err := h.skills.ListUserSkills(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, skills)
}

// AddHave обрабатывает POST /api/users/me/skills/have.
func (h *SkillHandler) AddHave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AddSkillsRequest
	if !bindJSON(c, &req) {
		return
	}

	skills, err := h.skills.AddHaveSkills(c.Request.Context(), userID, req.ToModels())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "навыки добавлены", skills)
}

// AddWant обрабатывает POST /api/users/me/skills/want.
func (h *SkillHandler) AddWant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AddSkillsRequest
	if !bindJSON(c, &req) {
		return
	}

	skills, err := h.skills.AddWantSkills(c.Request.Context(), userID, req.ToModels())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "навыки добавлены", skills)
}

// RemoveHave обрабатывает DELETE /api/users/me/skills/have/:skillId.
func (h *SkillHandler) RemoveHave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skillID, ok := uuidParam(c, "skillId")
	if !ok {
		return
	}

	if err := h.skills.RemoveHaveSkill(c.Request.Context(), userID, skillID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "навык удалён", nil)
}

// RemoveWant обрабатывает DELETE /api/users/me/skills/want/:skillId.
func (h *SkillHandler) RemoveWant(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skillID, ok := uuidParam(c, "skillId")
	if !ok {
		return
	}

	if err := h.skills.RemoveWantSkill(c.Request.Context(), userID, skillID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "навык удалён", nil)
}
