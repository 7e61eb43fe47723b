// Package dailylens собирает HTTP-приложение: маршруты, проверки доступа
// и фоновую очистку истёкших подписок.
package dailylens

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	articlecreate "github.com/magabrotheeeer/daily-lens/internal/http/handlers/articles/create"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/articles/moderate"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/articles/premium"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/articles/remove"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/health"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/payment/intent"
	publishercreate "github.com/magabrotheeeer/daily-lens/internal/http/handlers/publishers/create"
	publisherlist "github.com/magabrotheeeer/daily-lens/internal/http/handlers/publishers/list"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/subscription/grant"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/subscription/plans"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/token"
	usercreate "github.com/magabrotheeeer/daily-lens/internal/http/handlers/users/create"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/users/isadmin"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/users/ispremium"
	userlist "github.com/magabrotheeeer/daily-lens/internal/http/handlers/users/list"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/users/profile"
	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/users/promote"
	"github.com/magabrotheeeer/daily-lens/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-lens/internal/lib/jwt"
	"github.com/magabrotheeeer/daily-lens/internal/metrics"
	"github.com/magabrotheeeer/daily-lens/internal/services/access"
	"github.com/magabrotheeeer/daily-lens/internal/services/account"
	"github.com/magabrotheeeer/daily-lens/internal/services/article"
	"github.com/magabrotheeeer/daily-lens/internal/services/payment"
	"github.com/magabrotheeeer/daily-lens/internal/services/subscription"
)

// Deps зависимости обработчиков.
type Deps struct {
	Log           *slog.Logger
	Tokens        jwt.Maker
	Accounts      *account.Service
	Access        *access.Checker
	Subscriptions *subscription.Service
	Payments      *payment.Service
	Articles      *article.Service
	Metrics       *metrics.Metrics
	Limiter       *rate.Limiter
	Now           func() time.Time
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// middleware.URLFormat не подключается: он отрезает ".io" и подобные
// окончания у email в пути.
func RegisterRoutes(r chi.Router, d Deps) {
	log := d.Log

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		d.Metrics.Middleware,
	)

	limit := middlewarectx.RateLimitMiddleware(log, d.Limiter)
	self := middlewarectx.Require(log, d.Metrics, middlewarectx.Self("email"))
	admin := middlewarectx.Require(log, d.Metrics, middlewarectx.Admin(d.Access))
	premiumOnly := middlewarectx.Require(log, d.Metrics, middlewarectx.ActivePremium(d.Access))

	// Открытые конечные точки
	r.Get("/", health.New(log).ServeHTTP)
	r.Get("/health", health.New(log).ServeHTTP)
	r.Get("/plans", plans.New(log).ServeHTTP)
	r.Get("/publishers", publisherlist.New(log, d.Articles).ServeHTTP)
	r.Post("/users", usercreate.New(log, d.Accounts).ServeHTTP)
	r.With(limit).Post("/jwt", token.New(log, d.Tokens).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(d.Tokens, log))

		r.With(self).Get("/users/{email}", profile.New(log, d.Accounts).ServeHTTP)
		r.With(self).Get("/users/admin/{email}", isadmin.New(log, d.Accounts).ServeHTTP)
		r.With(self).Get("/users/subscription/{email}", ispremium.New(log, d.Accounts, d.Now).ServeHTTP)
		r.With(self).Patch("/userSubscriptionInfo/{email}", grant.New(log, d.Subscriptions).ServeHTTP)
		r.With(limit).Post("/create-payment-intent", intent.New(log, d.Payments).ServeHTTP)
		r.Post("/articles", articlecreate.New(log, d.Articles).ServeHTTP)
		r.With(premiumOnly).Get("/premiumArticles", premium.New(log, d.Articles).ServeHTTP)

		// Администрирование
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Get("/users", userlist.New(log, d.Accounts).ServeHTTP)
			r.Patch("/users/admin/{email}", promote.New(log, d.Accounts).ServeHTTP)
			r.Patch("/articles/{id}/approve", moderate.New(log, "approve", d.Articles.Approve).ServeHTTP)
			r.Patch("/articles/{id}/decline", moderate.New(log, "decline", d.Articles.Decline).ServeHTTP)
			r.Patch("/articles/{id}/premium", moderate.New(log, "premium", d.Articles.MakePremium).ServeHTTP)
			r.Delete("/articles/{id}", remove.New(log, d.Articles).ServeHTTP)
			r.Post("/publishers", publishercreate.New(log, d.Articles).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
