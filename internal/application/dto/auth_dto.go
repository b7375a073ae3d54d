package dto

// LoginRequest credenciales del formulario de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser datos del usuario de la sesión.
type SessionUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName,omitempty"`
}

// LoginResponse token de sesión del backoffice.
type LoginResponse struct {
	Message   string      `json:"message,omitempty"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"` // segundos
	User      SessionUser `json:"user"`
}
