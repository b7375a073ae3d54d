package inventory

import (
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// DefaultCatalogue catálogo inicial del ledger (equipos físicos y servicios numéricos).
func DefaultCatalogue() []*entity.StockItem {
	physical := func(id, name string, qty, threshold, price int64) *entity.StockItem {
		return &entity.StockItem{
			ID: id, Name: name, Category: entity.CategoryPhysical,
			Price: decimal.NewFromInt(price), Quantity: domaininv.Finite(qty), Threshold: threshold,
		}
	}
	digital := func(id, name string, threshold, price int64) *entity.StockItem {
		return &entity.StockItem{
			ID: id, Name: name, Category: entity.CategoryDigital,
			Price: decimal.NewFromInt(price), Quantity: domaininv.Unlimited(), Threshold: threshold,
		}
	}
	return []*entity.StockItem{
		physical("1", "Pocket WiFi 4G", 50, 10, 89900),
		physical("2", "Kit Fibre Optique", 30, 5, 129900),
		physical("3", "Carte SIM Celtiis", 120, 20, 100),
		physical("4", "Modem 4G LTE", 25, 5, 49900),
		digital("5", "Mobile Money Celtiis", 100, 0),
		digital("6", "Recharge Électronique", 100, 0),
		digital("7", "Abonnement Fibre 100Mbps", 50, 15000),
		digital("8", "Forfait Illimité Appels", 100, 20000),
		physical("9", "Modem ADSL Celtiis", 7, 2, 29900),
	}
}
