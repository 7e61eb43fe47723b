// Package token реализует HTTP-обработчик выпуска сессионного JWT.
//
// Личность пользователя подтверждается внешним провайдером входа, сервис лишь
// выпускает для переданного email токен с ограниченным сроком действия.
package token

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// Issuer выпускает токены.
type Issuer interface {
	GenerateToken(identity models.Identity) (string, error)
}

// Request тело запроса на выпуск токена.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Handler выпускает токен.
type Handler struct {
	log      *slog.Logger
	issuer   Issuer
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, issuer Issuer) *Handler {
	return &Handler{
		log:      log,
		issuer:   issuer,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выпуск JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /jwt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.token.New"

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

	email := models.NormalizeEmail(req.Email)
	token, err := h.issuer.GenerateToken(models.Identity{Email: email})
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("token issued", slog.String("email", email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
	}))
}
