package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/Backoffice-api/internal/application/ports"
)

var _ ports.Authenticator = (*Client)(nil)

// Login autentica contra el backend y devuelve su token opaco.
func (c *Client) Login(ctx context.Context, in ports.Credentials) (*ports.LoginResult, error) {
	var out ports.LoginResult
	err := c.do(ctx, "", call{
		op: "auth.login", method: http.MethodPost, path: "/auth/login",
		body: in, out: &out, fallback: msgServerUnreachable,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify comprueba que el token del backend sigue siendo válido.
func (c *Client) Verify(ctx context.Context, token string) bool {
	err := c.do(ctx, token, call{
		op: "auth.verify", method: http.MethodGet, path: "/auth/verify",
		fallback: msgServerUnreachable,
	})
	return err == nil
}
