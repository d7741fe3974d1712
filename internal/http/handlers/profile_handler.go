package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswapper-backend/internal/dto"
	"github.com/ignatzorin/skillswapper-backend/internal/http/response"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
)

// UploadsURLPrefix префикс, под которым раздаются загруженные файлы.
const UploadsURLPrefix = "/uploads/"

// multipartOverhead запас на заголовки multipart сверх размера самого файла.
const multipartOverhead = 1 << 20

// ProfileHandler отвечает за работу с профилем.
type ProfileHandler struct {
	profiles       *service.ProfileService
	maxUploadBytes int64
}

// NewProfileHandler создаёт экземпляр.
func NewProfileHandler(profiles *service.ProfileService, maxUploadBytes int64) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, maxUploadBytes: maxUploadBytes}
}

// GetMe обрабатывает GET /api/users/me.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// UpdateMe обрабатывает PUT /api/users/me.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.profiles.UpdateMe(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:     req.Name,
		Bio:      req.Bio,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "профиль обновлён", user)
}

// GetPublicProfile обрабатывает GET /api/users/:id.
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profiles.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// UploadPicture обрабатывает POST /api/users/me/picture (multipart, поле picture).
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, err := c.FormFile("picture")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ValidationFailed(c, "файл слишком большой")
			return
		}
		response.ValidationFailed(c, "поле picture обязательно")
		return
	}
	if file.Size == 0 {
		response.ValidationFailed(c, "файл не может быть пустым")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.ValidationFailed(c, "не удалось прочитать файл")
		return
	}
	defer src.Close()

	relative, err := h.profiles.UploadPicture(c.Request.Context(), userID, file.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "фото профиля обновлено", dto.ProfilePictureResponse{
		ProfilePicture: relative,
		URL:            UploadsURLPrefix + relative,
	})
}
