// Package ispremium сообщает, действует ли у пользователя премиум-подписка.
package ispremium

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/params"
	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

type Service interface {
	Get(ctx context.Context, email string) (*models.Account, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// New создаёт Handler. Если now равен nil, используется time.Now.
func New(log *slog.Logger, service Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{log: log, service: service, now: now}
}

// ServeHTTP godoc
// @Summary Проверка премиум-подписки
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/subscription/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.ispremium.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, err := params.Email(r, "email")
	if err != nil {
		log.Error("invalid email in path", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	account, err := h.service.Get(r.Context(), email)
	if err != nil {
		log.Error("failed to read account", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"isPremium":          account.HasActiveSubscription(h.now()),
		"subscriptionExpiry": account.SubscriptionExpiry,
	}))
}
