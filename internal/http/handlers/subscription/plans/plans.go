// Package plans отдаёт каталог тарифов премиум-подписки.
package plans

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// PlanView тариф в ответе API.
type PlanView struct {
	Period          string  `json:"period"`
	DurationSeconds int64   `json:"duration_seconds"`
	Price           float64 `json:"price"`
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	all := models.Plans()
	views := make([]PlanView, 0, len(all))
	for _, p := range all {
		views = append(views, PlanView{
			Period:          p.Code,
			DurationSeconds: int64(p.Duration.Seconds()),
			Price:           p.Price,
		})
	}
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": views,
	}))
}
