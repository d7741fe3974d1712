package response

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswapper-backend/internal/pkg/apperror"
)

// Response единый конверт ответа API.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo описание ошибки. Detail заполняется только в debug режиме.
type ErrorInfo struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

const internalErrorMessage = "внутренняя ошибка сервера"

var debug atomic.Bool

// SetDebug включает вывод исходной ошибки в ответах 500 (вне production).
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OK отвечает 200 с сообщением для пользователя.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error пишет ответ по ошибке сервиса. *AppError отдаётся со своим статусом,
// всё остальное становится 500 с общим сообщением.
func Error(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusAndBody(err))
}

func statusAndBody(err error) (int, Response) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		info := &ErrorInfo{Code: string(appErr.Code)}
		if debug.Load() && appErr.Cause != nil {
			info.Detail = appErr.Cause.Error()
		}
		return appErr.HTTPStatus, Response{Success: false, Message: appErr.Message, Error: info}
	}

	info := &ErrorInfo{Code: string(apperror.ErrCodeInternal)}
	if debug.Load() && err != nil {
		info.Detail = err.Error()
	}
	return http.StatusInternalServerError, Response{Success: false, Message: internalErrorMessage, Error: info}
}

func fail(c *gin.Context, status int, code apperror.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Message: message,
		Error:   &ErrorInfo{Code: string(code)},
	})
}

func ValidationFailed(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, apperror.ErrCodeValidation, message)
}

func Unauthorized(c *gin.Context, message string) {
	fail(c, http.StatusUnauthorized, apperror.ErrCodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	fail(c, http.StatusForbidden, apperror.ErrCodeForbidden, message)
}

// TooManyRequests ответ при превышении лимита запросов.
func TooManyRequests(c *gin.Context, message string) {
	fail(c, http.StatusTooManyRequests, "RATE_LIMITED", message)
}
