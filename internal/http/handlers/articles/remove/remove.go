// Package remove реализует HTTP-обработчик удаления статьи.
package remove

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

type Service interface {
	Remove(ctx context.Context, id int64) error
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление статьи
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID статьи"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /articles/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.articles.remove.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := params.ID(r, "id")
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		log.Error("failed to remove article", slog.Int64("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": 1,
	}))
}
