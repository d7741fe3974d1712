package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skillswapper-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswapper-backend/internal/http/response"
	"github.com/ignatzorin/skillswapper-backend/internal/validation"
)

// currentUserID извлекает userID из контекста или отвечает 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return uuid.Nil, false
	}
	return userID, true
}

// bindJSON разбирает тело запроса и отвечает 400 с понятным сообщением при ошибке.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ValidationFailed(c, validation.BindingMessage(err))
		return false
	}
	return true
}

// uuidParam читает UUID из пути или отвечает 400.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := common.ParseUUIDParam(c, name)
	if err != nil {
		response.ValidationFailed(c, "параметр "+name+" должен быть валидным UUID")
		return uuid.Nil, false
	}
	return id, true
}
