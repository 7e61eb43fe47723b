// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// MsgInvalidPeriod текст ответа на неизвестный тариф.
const MsgInvalidPeriod = "Invalid subscription period"

// FromError сопоставляет доменную ошибку с HTTP-статусом и текстом ответа.
// Внутренние подробности ошибки наружу не попадают.
func FromError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, Error(models.ErrUnauthorized.Error())
	case errors.Is(err, models.ErrExpiredToken):
		return http.StatusUnauthorized, Error(models.ErrExpiredToken.Error())
	case errors.Is(err, models.ErrInvalidToken):
		return http.StatusUnauthorized, Error(models.ErrInvalidToken.Error())
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, Error(models.ErrForbidden.Error())
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, Error(models.ErrNotFound.Error())
	case errors.Is(err, models.ErrAlreadyExists):
		return http.StatusConflict, Error(models.ErrAlreadyExists.Error())
	case errors.Is(err, models.ErrRejectedPlan):
		return http.StatusBadRequest, Error(MsgInvalidPeriod)
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest, Error(models.ErrBadRequest.Error())
	case errors.Is(err, models.ErrPaymentProvider):
		return http.StatusBadGateway, Error(models.ErrPaymentProvider.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, Error("service temporarily unavailable")
	default:
		return http.StatusInternalServerError, Error("internal error")
	}
}

// RenderError пишет ответ с ошибкой по правилам FromError и возвращает выбранный статус.
func RenderError(w http.ResponseWriter, r *http.Request, err error) int {
	status, body := FromError(err)
	render.Status(r, status)
	render.JSON(w, r, body)
	return status
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
