// Package paymentprovider клиент платёжного провайдера Stripe для создания PaymentIntent.
package paymentprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// Options параметры подключения к Stripe.
type Options struct {
	// APIURL адрес API. Пустое значение означает боевой адрес Stripe.
	APIURL  string
	Timeout time.Duration
}

// Client обёртка над клиентом stripe-go.
type Client struct {
	api *client.API
}

// NewClient создаёт клиент Stripe с собственным HTTP-клиентом и без повторов запросов.
func NewClient(secretKey string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: opts.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if opts.APIURL != "" {
		cfg.URL = stripe.String(opts.APIURL)
	}

	api := client.New(secretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	})
	return &Client{api: api}
}

// CreatePaymentIntent создаёт PaymentIntent на сумму amount в минимальных единицах валюты
// и возвращает client secret для завершения оплаты на клиенте.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	const op = "paymentprovider.CreatePaymentIntent"

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return "", fmt.Errorf("%s: %s (%s)", op, stripeErr.Msg, stripeErr.Type)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if pi.ClientSecret == "" {
		return "", fmt.Errorf("%s: empty client secret for %s", op, pi.ID)
	}
	return pi.ClientSecret, nil
}
