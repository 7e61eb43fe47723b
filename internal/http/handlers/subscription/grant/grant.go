// Package grant реализует HTTP-обработчик выдачи подписки после оплаты.
//
// Тело запроса содержит купленный тариф и цену. Неизвестный тариф отклоняется
// с 400 "Invalid subscription period" до каких-либо изменений.
package grant

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/params"
	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
	"github.com/magabrotheeeer/daily-lens/internal/services/subscription"
)

// Service описывает интерфейс выдачи подписки.
type Service interface {
	Grant(ctx context.Context, email, period string, price float64) (subscription.GrantResult, error)
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
// @Summary Выдача подписки
// @Tags subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Param request body models.DummySubscriptionInfo true "Купленный тариф"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /userSubscriptionInfo/{email} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.grant.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscriptionInfo
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

	email, err := params.Email(r, "email")
	if err != nil {
		log.Error("invalid email in path", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	info := req.SubscriptionInfo
	res, err := h.service.Grant(r.Context(), email, info.Period, info.Price)
	if err != nil {
		log.Error("failed to grant subscription", slog.String("period", info.Period), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	if !res.Updated {
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"modified": 0,
			"message":  "nothing to update",
		}))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"modified":           1,
		"subscriptionExpiry": res.Expiry,
	}))
}
