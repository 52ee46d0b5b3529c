// Package paymentprovider работает с платёжным провайдером Stripe:
// создание платёжных намерений и разбор подписанных webhook-событий.
package paymentprovider

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// Ключи metadata платёжного намерения.
const (
	MetadataUserEmail = "userEmail"
	MetadataPlanID    = "planId"
)

// Client клиент Stripe.
type Client struct {
	sc       *client.API
	currency string
}

// NewClient создаёт клиент Stripe для секретного ключа и валюты платежей.
func NewClient(secretKey, currency string) *Client {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Client{sc: sc, currency: currency}
}

// NewClientWithBackends создаёт клиент с собственными backend. Используется в тестах.
func NewClientWithBackends(secretKey, currency string, backends *stripe.Backends) *Client {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &Client{sc: sc, currency: currency}
}

// CreatePaymentIntent создаёт платёжное намерение на amount минимальных единиц
// и возвращает его client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, email, planID string) (string, error) {
	const op = "paymentprovider.CreatePaymentIntent"

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(c.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataUserEmail, email)
	params.AddMetadata(MetadataPlanID, planID)

	pi, err := c.sc.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return pi.ClientSecret, nil
}
