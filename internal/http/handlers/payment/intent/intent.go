// Package intent реализует HTTP-обработчик создания платёжного намерения.
package intent

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
)

// Service создаёт платёжное намерение.
type Service interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

// Request тело запроса: цена выбранного пакета в основных единицах валюты.
type Request struct {
	PackagePrice struct {
		Price float64 `json:"price" validate:"gt=0"`
	} `json:"packagePrice"`
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание платёжного намерения
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Цена пакета"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /create-payment-intent [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intent.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	secret, err := h.service.CreateIntent(r.Context(), req.PackagePrice.Price)
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"clientSecret": secret,
	}))
}
