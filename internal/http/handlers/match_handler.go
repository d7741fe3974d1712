package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswapper-backend/internal/dto"
	"github.com/ignatzorin/skillswapper-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswapper-backend/internal/http/response"
	"github.com/ignatzorin/skillswapper-backend/internal/matching"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
)

// MatchHandler обслуживает подбор партнёров и запросы на обмен.
type MatchHandler struct {
	matches     *service.MatchService
	connections *service.ConnectionService
}

// NewMatchHandler создаёт хэндлер.
func NewMatchHandler(matches *service.MatchService, connections *service.ConnectionService) *MatchHandler {
	return &MatchHandler{matches: matches, connections: connections}
}

// FindMatches обрабатывает GET /api/matches.
// Параметры: location, skill, minOverlap, limit, offset.
func (h *MatchHandler) FindMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := matching.Filters{
		Location:   c.Query("location"),
		Skill:      c.Query("skill"),
		MinOverlap: common.ParseIntQuery(c, "minOverlap", 1),
		Limit:      common.ParseIntQuery(c, "limit", 20),
		Offset:     common.ParseIntQuery(c, "offset", 0),
	}

	candidates, total, applied, err := h.matches.FindCandidates(c.Request.Context(), userID, filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.MatchListResponse{
		Matches:    candidates,
		Pagination: dto.Pagination{Total: total, Limit: applied.Limit, Offset: applied.Offset},
	})
}

// Detailed обрабатывает GET /api/matches/detailed/:userId.
func (h *MatchHandler) Detailed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	analysis, err := h.matches.AnalyzeMatch(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, analysis)
}

// Save обрабатывает POST /api/matches/save.
func (h *MatchHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SaveMatchRequest
	if !bindJSON(c, &req) {
		return
	}

	match, err := h.connections.Propose(c.Request.Context(), userID, req.ParseTarget())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "запрос на обмен отправлен", dto.NewMatchResponse(match, userID))
}

// Accept обрабатывает POST /api/matches/accept.
func (h *MatchHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.RespondMatchRequest
	if !bindJSON(c, &req) {
		return
	}

	match, err := h.connections.Accept(c.Request.Context(), userID, req.ParseRequester())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "запрос на обмен принят", dto.NewMatchResponse(match, userID))
}

// Decline обрабатывает POST /api/matches/decline.
func (h *MatchHandler) Decline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.RespondMatchRequest
	if !bindJSON(c, &req) {
		return
	}

	match, err := h.connections.Decline(c.Request.Context(), userID, req.ParseRequester())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "запрос на обмен отклонён", dto.NewMatchResponse(match, userID))
}

// Saved обрабатывает GET /api/matches/saved?status=.
func (h *MatchHandler) Saved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.connections.ListSaved(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SavedMatchesResponse{Matches: matches})
}
