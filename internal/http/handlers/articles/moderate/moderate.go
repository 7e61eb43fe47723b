// Package moderate реализует действия администратора над статьёй:
// одобрение, отклонение и перевод в премиальные.
package moderate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/params"
	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
)

// Action действие модерации над статьёй с указанным id.
type Action func(ctx context.Context, id int64) error

type Handler struct {
	log    *slog.Logger
	name   string
	action Action
}

// New создаёт Handler, выполняющий action. name попадает в логи.
func New(log *slog.Logger, name string, action Action) *Handler {
	return &Handler{log: log, name: name, action: action}
}

// ServeHTTP godoc
// @Summary Модерация статьи
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID статьи"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /articles/{id}/approve [patch]
// @Router /articles/{id}/decline [patch]
// @Router /articles/{id}/premium [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.articles.moderate.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("action", h.name),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := params.ID(r, "id")
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	if err := h.action(r.Context(), id); err != nil {
		log.Error("failed to moderate article", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":       id,
		"modified": 1,
	}))
}
