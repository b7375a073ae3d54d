package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// CompanyProfile perfil completo con usuarios, puntos de venta y productos.
type CompanyProfile struct {
	Message    string                   `json:"message"`
	Company    entity.Company           `json:"company"`
	Statistics entity.CompanyStatistics `json:"statistics"`
}

// UpdateCompanyRequest cuerpo de /auth/updateCompany.
type UpdateCompanyRequest struct {
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	Industry       string `json:"industry"`
}

// UpdateCompanyResponse respuesta de la actualización.
type UpdateCompanyResponse struct {
	Message string         `json:"message"`
	Company entity.Company `json:"company"`
}

// EmployeeFilter filtros de /auth/getAllEmployees. Campos vacíos no se envían.
type EmployeeFilter struct {
	Role          string
	PointOfSaleID string
	IsActive      *bool
	Search        string
	Page          int
	Limit         int
}

func (f EmployeeFilter) query() url.Values {
	q := url.Values{}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.PointOfSaleID != "" {
		q.Set("pointOfSaleId", f.PointOfSaleID)
	}
	if f.IsActive != nil {
		if *f.IsActive {
			q.Set("isActive", "true")
		} else {
			q.Set("isActive", "false")
		}
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return pagination(q, f.Page, f.Limit)
}

// EmployeePage página de empleados.
type EmployeePage struct {
	Message    string        `json:"message"`
	Employees  []entity.User `json:"employees"`
	Pagination struct {
		CurrentPage     int  `json:"currentPage"`
		TotalPages      int  `json:"totalPages"`
		TotalEmployees  int  `json:"totalEmployees"`
		HasNextPage     bool `json:"hasNextPage"`
		HasPreviousPage bool `json:"hasPreviousPage"`
	} `json:"pagination"`
	Filters map[string]any `json:"filters,omitempty"`
}

// AddUserRequest alta de un empleado.
type AddUserRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	PointOfSaleID string `json:"pointOfSaleId,omitempty"`
}

// Validate exige nombre, apellido, email y un rol conocido.
func (r AddUserRequest) Validate() error {
	var v domain.ValidationErrors
	if strings.TrimSpace(r.FirstName) == "" {
		v = append(v, "Le prénom est requis")
	}
	if strings.TrimSpace(r.LastName) == "" {
		v = append(v, "Le nom est requis")
	}
	if !strings.Contains(r.Email, "@") {
		v = append(v, "L'email est invalide")
	}
	if !entity.ValidRole(r.Role) {
		v = append(v, "Le rôle est invalide")
	}
	return v.OrNil()
}

// AddUserResponse respuesta del alta.
type AddUserResponse struct {
	Message string      `json:"message"`
	User    entity.User `json:"user"`
}

// CompanySummary resumen rápido de la empresa.
type CompanySummary struct {
	Name              string `json:"name"`
	TotalUsers        int    `json:"totalUsers"`
	TotalPointOfSales int    `json:"totalPointOfSales"`
	TotalProducts     int    `json:"totalProducts"`
}

// CompanyProfile obtiene el perfil con estadísticas.
func (c *Client) CompanyProfile(ctx context.Context, token string) (*CompanyProfile, error) {
	var out CompanyProfile
	if err := c.do(ctx, token, call{
		op: "company.profile", method: http.MethodGet, path: "/auth/company-profile",
		out: &out, fallback: msgServerUnreachable,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompanyInfo obtiene los datos básicos de la empresa.
func (c *Client) CompanyInfo(ctx context.Context, token string) (*entity.Company, error) {
	var out struct {
		Company entity.Company `json:"company"`
	}
	if err := c.do(ctx, token, call{
		op: "company.info", method: http.MethodGet, path: "/auth/company-info",
		out: &out, fallback: msgServerUnreachable,
	}); err != nil {
		return nil, err
	}
	return &out.Company, nil
}

// UpdateCompany actualiza nombre, dirección y sector.
func (c *Client) UpdateCompany(ctx context.Context, token string, in UpdateCompanyRequest) (*UpdateCompanyResponse, error) {
	var out UpdateCompanyResponse
	if err := c.do(ctx, token, call{
		op: "company.update", method: http.MethodPut, path: "/auth/updateCompany",
		body: in, out: &out, fallback: msgServerUnreachable,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Employees lista empleados con filtros y paginación.
func (c *Client) Employees(ctx context.Context, token string, f EmployeeFilter) (*EmployeePage, error) {
	var out EmployeePage
	if err := c.do(ctx, token, call{
		op: "company.employees", method: http.MethodGet, path: "/auth/getAllEmployees",
		query: f.query(), out: &out, fallback: msgServerUnreachable,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveEmployees empleados con isActive=true.
func (c *Client) ActiveEmployees(ctx context.Context, token string) ([]entity.User, error) {
	active := true
	page, err := c.Employees(ctx, token, EmployeeFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}
	return page.Employees, nil
}

// EmployeesByRole empleados de un rol.
func (c *Client) EmployeesByRole(ctx context.Context, token, role string) ([]entity.User, error) {
	page, err := c.Employees(ctx, token, EmployeeFilter{Role: role})
	if err != nil {
		return nil, err
	}
	return page.Employees, nil
}

// SearchEmployees busca por nombre o email.
func (c *Client) SearchEmployees(ctx context.Context, token, term string) ([]entity.User, error) {
	page, err := c.Employees(ctx, token, EmployeeFilter{Search: term})
	if err != nil {
		return nil, err
	}
	return page.Employees, nil
}

// AddUser crea un empleado en la empresa.
func (c *Client) AddUser(ctx context.Context, token string, in AddUserRequest) (*AddUserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out AddUserResponse
	if err := c.do(ctx, token, call{
		op: "company.add_user", method: http.MethodPost, path: "/auth/addUserToCompany",
		body: in, out: &out, fallback: msgServerUnreachable,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompanyStatistics estadísticas del perfil.
func (c *Client) CompanyStatistics(ctx context.Context, token string) (*entity.CompanyStatistics, error) {
	p, err := c.CompanyProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	return &p.Statistics, nil
}

// CompanySummary nombre y totales de la empresa.
func (c *Client) CompanySummary(ctx context.Context, token string) (*CompanySummary, error) {
	p, err := c.CompanyProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	return &CompanySummary{
		Name:              p.Company.Name,
		TotalUsers:        p.Statistics.TotalUsers,
		TotalPointOfSales: p.Statistics.TotalPointOfSales,
		TotalProducts:     p.Statistics.TotalProducts,
	}, nil
}

// IsProfileComplete nombre, dirección y sector informados.
func IsProfileComplete(c entity.Company) bool {
	return c.Name != "" && c.Address != "" && c.Industry != ""
}

// BuildUpdate arma el cuerpo de actualización a partir de la empresa actual.
func BuildUpdate(c entity.Company) UpdateCompanyRequest {
	return UpdateCompanyRequest{
		CompanyName:    c.Name,
		CompanyAddress: c.Address,
		Industry:       c.Industry,
	}
}
