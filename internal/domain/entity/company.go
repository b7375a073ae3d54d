package entity

import (
	"strings"
	"time"
)

// Company empresa (tenant) propietaria de usuarios, puntos de venta y productos.
type Company struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address,omitempty"`
	Industry     string        `json:"industry,omitempty"`
	CreatedAt    time.Time     `json:"createdAt,omitempty"`
	UpdatedAt    time.Time     `json:"updatedAt,omitempty"`
	Users        []User        `json:"users,omitempty"`
	PointOfSales []PointOfSale `json:"pointOfSales,omitempty"`
	Products     []Product     `json:"products,omitempty"`
}

// CompanyRef referencia mínima a la empresa.
type CompanyRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CompanyStatistics estadísticas calculadas por el backend para el perfil.
type CompanyStatistics struct {
	TotalUsers        int `json:"totalUsers"`
	ActiveUsers       int `json:"activeUsers"`
	TotalPointOfSales int `json:"totalPointOfSales"`
	TotalProducts     int `json:"totalProducts"`
	ActiveProducts    int `json:"activeProducts"`
	UsersByRole       struct {
		Admin      int `json:"admin"`
		Manager    int `json:"manager"`
		Commercial int `json:"commercial"`
	} `json:"usersByRole"`
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
