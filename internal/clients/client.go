package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSessionExpired: el backend respondió 401; la sesión completa se invalida
var ErrSessionExpired = errors.New("sesión expirada")

// UpstreamError conserva el mensaje estructurado del backend para mostrarlo
// al usuario tal cual cuando existe.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("el backend respondió %d", e.StatusCode)
}

// Message extrae el mensaje del backend de un error, si lo hay
func Message(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return ""
}

// Client es la base de los wrappers HTTP hacia el backend del marketplace.
// Cada petición lleva el bearer token de la sesión del llamador.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// get hace un GET con un único reintento: es idempotente, un POST no se
// reintenta nunca (para eso viaja X-Idempotency-Key).
func (c *Client) get(ctx context.Context, path, token string, out any) error {
	err := c.do(ctx, http.MethodGet, path, token, nil, out, "")
	var ue *UpstreamError
	if err != nil && !errors.Is(err, ErrSessionExpired) && !errors.As(err, &ue) {
		// Error de red: un solo reintento
		err = c.do(ctx, http.MethodGet, path, token, nil, out, "")
	}
	return err
}

func (c *Client) post(ctx context.Context, path, token string, body, out any, idempotencyKey string) error {
	return c.do(ctx, http.MethodPost, path, token, body, out, idempotencyKey)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any, idempotencyKey string) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// El backend responde {"message": ...} o {"error": ...}
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		return &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
