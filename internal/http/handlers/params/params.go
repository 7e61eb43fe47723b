// Package params разбирает общие параметры запросов: пагинацию, идентификаторы и email из URL.
package params

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination читает limit и offset из строки запроса. Некорректные значения
// заменяются значениями по умолчанию, limit ограничен MaxLimit.
func Pagination(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ID читает числовой идентификатор из параметра маршрута name.
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("params.ID: %q: %w", chi.URLParam(r, name), models.ErrBadRequest)
	}
	return id, nil
}

// Email читает email из параметра маршрута name. chi отдаёт параметр из RawPath
// без декодирования, поэтому значение раскодируется и приводится к нижнему регистру.
func Email(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	email, err := url.PathUnescape(raw)
	if err != nil || email == "" {
		return "", fmt.Errorf("params.Email: %q: %w", raw, models.ErrBadRequest)
	}
	return models.NormalizeEmail(email), nil
}
