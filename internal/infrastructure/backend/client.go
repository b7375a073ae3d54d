package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

const maxBodyBytes = 4 << 20

// Mensaje genérico de las operaciones de autenticación y empresa.
const msgServerUnreachable = "Erreur de connexion au serveur"

// CallObserver recibe la duración y el resultado de cada llamada (métricas).
type CallObserver interface {
	ObserveBackendCall(op, outcome string, d time.Duration)
}

// Client cliente HTTP del backend REST. Los recursos (Auth, Sales, ...) comparten este cliente.
// No reintenta: cada llamada es un único intercambio con el timeout configurado.
type Client struct {
	baseURL  string
	http     *http.Client
	log      *logger.Logger
	observer CallObserver
}

// NewClient construye el cliente con la URL base y el timeout de la configuración.
func NewClient(cfg config.BackendConfig, log *logger.Logger, observer CallObserver) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		log:      log.Component("backend"),
		observer: observer,
	}
}

// call describe una llamada al backend.
type call struct {
	op       string // nombre estable para logs y métricas, ej. "sales.list"
	method   string
	path     string
	query    url.Values
	body     any
	out      any
	fallback string // mensaje genérico si el backend no responde
}

// do ejecuta la llamada con el token Bearer del usuario (vacío en login).
func (c *Client) do(ctx context.Context, token string, cl call) error {
	start := time.Now()
	err := c.exchange(ctx, token, cl)

	outcome := "ok"
	switch err.(type) {
	case nil:
	case *APIError:
		outcome = "api_error"
	default:
		outcome = "unavailable"
	}
	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveBackendCall(cl.op, outcome, elapsed)
	}
	ev := c.log.Debug()
	if outcome == "unavailable" {
		ev = c.log.Warn().Err(err)
	}
	ev.Str("op", cl.op).Str("outcome", outcome).Dur("elapsed", elapsed).Msg("llamada al backend")
	return err
}

func (c *Client) exchange(ctx context.Context, token string, cl call) error {
	unavailable := func(err error) error {
		return &UnavailableError{Op: cl.op, Message: cl.fallback, Err: err}
	}

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	var reqBody io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo %s: %w", cl.op, err)
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, u, reqBody)
	if err != nil {
		return fmt.Errorf("crear petición %s: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return unavailable(fmt.Errorf("leer respuesta: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(cl, resp.StatusCode, raw)
	}
	if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, cl.out); err != nil {
		return unavailable(fmt.Errorf("decodificar respuesta: %w", err))
	}
	return nil
}

// decodeAPIError interpreta el cuerpo de error: {error|message, errors[], details[]}.
// Si no es JSON reconocible se usa el mensaje genérico de la operación.
func decodeAPIError(cl call, status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Op: cl.op}
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Errors  []FieldError    `json:"errors"`
		Details []StockShortage `json:"details"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		apiErr.Message = cl.fallback
		return apiErr
	}
	apiErr.Errors = payload.Errors
	apiErr.Details = payload.Details
	var errText string
	if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &errText) == nil && errText != "" {
		apiErr.Message = errText
	} else if payload.Message != "" {
		apiErr.Message = payload.Message
	}
	if apiErr.Message == "" && len(apiErr.Errors) == 0 {
		apiErr.Message = cl.fallback
	}
	return apiErr
}

// pagination traduce page/limit a query (valores <= 0 se omiten).
func pagination(q url.Values, page, limit int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}
