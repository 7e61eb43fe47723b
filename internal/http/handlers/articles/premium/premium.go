// Package premium отдаёт подписчикам ленту премиальных статей.
package premium

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/params"
	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

type Service interface {
	ListPremium(ctx context.Context, limit, offset int) ([]*models.Article, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Премиальные статьи
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Router /premiumArticles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.articles.premium.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset := params.Pagination(r)
	res, err := h.service.ListPremium(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list premium articles", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"articles":   res,
	}))
}
