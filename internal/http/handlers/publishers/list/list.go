// Package list отдаёт список издателей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

type Service interface {
	Publishers(ctx context.Context) ([]*models.Publisher, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список издателей
// @Tags publishers
// @Produce json
// @Success 200 {object} response.Response
// @Router /publishers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publishers.list.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Publishers(r.Context())
	if err != nil {
		log.Error("failed to list publishers", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	if res == nil {
		res = []*models.Publisher{}
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"publishers": res,
	}))
}
