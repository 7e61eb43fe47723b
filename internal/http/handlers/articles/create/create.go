// Package create реализует HTTP-обработчик отправки статьи на модерацию.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-lens/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

type Service interface {
	Submit(ctx context.Context, author string, req models.DummyArticle) (int64, error)
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
// @Summary Отправка статьи
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyArticle true "Статья"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /articles [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.articles.create.New"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity not found in context")
		response.RenderError(w, r, models.ErrUnauthorized)
		return
	}

	var req models.DummyArticle
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

	id, err := h.service.Submit(r.Context(), identity.Email, req)
	if err != nil {
		log.Error("failed to submit article", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     id,
		"status": models.ArticlePending,
	}))
}
