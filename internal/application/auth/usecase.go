package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/ports"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/pkg/jwt"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra el backend y emisión del token de sesión del backoffice.
type AuthUseCase struct {
	backend ports.Authenticator
	jwtCfg  JWTConfig
	log     *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(backend ports.Authenticator, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{backend: backend, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login valida el formulario, autentica en el backend y firma la sesión con el token del backend.
// Sin usuario en la respuesta (login de empresa) la sesión es admin de la empresa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	var v domain.ValidationErrors
	if in.Email == "" {
		v = append(v, "L'email est requis")
	}
	if in.Password == "" {
		v = append(v, "Le mot de passe est requis")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	res, err := uc.backend.Login(ctx, ports.Credentials{Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login: respuesta sin token: %w", domain.ErrUnauthorized)
	}

	user := sessionUser(res, in.Email)
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Session{
		UserID:       user.ID,
		CompanyID:    user.CompanyID,
		Role:         user.Role,
		Name:         user.Name,
		BackendToken: res.Token,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("login: firmar sesión: %w", err)
	}
	uc.log.Info().Str("company_id", user.CompanyID).Str("role", user.Role).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Message:   res.Message,
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      user,
	}, nil
}

// Me devuelve el usuario de la sesión; valida además que el token del backend siga vigente.
func (uc *AuthUseCase) Me(ctx context.Context, s jwt.Session) (*dto.SessionUser, error) {
	if !uc.backend.Verify(ctx, s.BackendToken) {
		return nil, domain.ErrUnauthorized
	}
	return &dto.SessionUser{ID: s.UserID, Name: s.Name, Role: s.Role, CompanyID: s.CompanyID}, nil
}

func sessionUser(res *ports.LoginResult, email string) dto.SessionUser {
	u := dto.SessionUser{
		ID:          res.Company.ID,
		Name:        res.Company.Name,
		Email:       email,
		Role:        entity.RoleAdmin,
		CompanyID:   res.Company.ID,
		CompanyName: res.Company.Name,
	}
	if res.User != nil {
		u.ID = res.User.ID
		if name := res.User.FullName(); name != "" {
			u.Name = name
		}
		if res.User.Email != "" {
			u.Email = res.User.Email
		}
		if entity.ValidRole(res.User.Role) {
			u.Role = res.User.Role
		} else {
			u.Role = entity.RoleCommercial
		}
	}
	return u
}
