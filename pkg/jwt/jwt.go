package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session datos de la sesión del backoffice. BackendToken es el token opaco emitido por el
// backend REST; se reenvía en cada llamada para no guardar estado en el servidor.
type Session struct {
	UserID       string
	CompanyID    string
	Role         string // "admin" | "manager" | "commercial"
	Name         string
	BackendToken string
}

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	CompanyID    string `json:"company_id"`
	Role         string `json:"role"`
	Name         string `json:"name,omitempty"`
	BackendToken string `json:"bt"`
}

// ErrEmptySecret se devuelve cuando no hay secreto configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Generate firma un token HS256 con los datos de la sesión.
func Generate(secret string, s Session, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       s.UserID,
		CompanyID:    s.CompanyID,
		Role:         s.Role,
		Name:         s.Name,
		BackendToken: s.BackendToken,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Session, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Session{
		UserID:       claims.UserID,
		CompanyID:    claims.CompanyID,
		Role:         claims.Role,
		Name:         claims.Name,
		BackendToken: claims.BackendToken,
	}, nil
}
