// Package sheets отправляет записи подписок во внешнюю таблицу (веб-приложение Google Apps Script).
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/magabrotheeeer/elevator/internal/models"
)

// Client HTTP-клиент таблицы.
type Client struct {
	url        string
	httpClient *http.Client
}

// New создаёт клиент для адреса url. Таймаут задаётся контекстом каждого вызова.
func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{url: url, httpClient: httpClient}
}

// Send отправляет подписку POST-запросом с JSON-телом.
func (c *Client) Send(ctx context.Context, sub models.Subscription) error {
	const op = "sheets.Send"

	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}
	return nil
}
