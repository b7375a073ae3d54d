package ports

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// Credentials email y contraseña enviados al backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult respuesta del backend al login. User solo viene cuando inicia sesión un
// empleado; el login de empresa devuelve únicamente la empresa.
type LoginResult struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	Company entity.Company `json:"company"`
	User    *entity.User   `json:"user,omitempty"`
}

// Authenticator verifica credenciales contra el backend REST.
type Authenticator interface {
	Login(ctx context.Context, in Credentials) (*LoginResult, error)
	Verify(ctx context.Context, token string) bool
}
