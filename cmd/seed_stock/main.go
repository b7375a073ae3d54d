// seed_stock carga el catálogo inicial del ledger en PostgreSQL. Sin -csv usa el catálogo
// por defecto; los artículos que ya existen no se tocan.
//
// Uso: go run ./cmd/seed_stock [-csv catalogue.csv] [-latin1] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/format"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

var (
	csvPath = flag.String("csv", "", "Catálogo CSV (id;nom;categorie;prix;quantite;seuil)")
	latin1  = flag.Bool("latin1", false, "El CSV está codificado en ISO-8859-1")
	dryRun  = flag.Bool("dry-run", false, "Solo mostrar el catálogo, sin escribir")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	items, err := loadCatalogue()
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	if *dryRun {
		for _, it := range items {
			fmt.Printf("%-10s %-32s %-10s %14s %10s seuil=%d\n",
				it.ID, it.Name, it.Category, format.Amount(it.Price), it.Quantity, it.Threshold)
		}
		fmt.Printf("%d artículos (dry-run)\n", len(items))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	uc := inventory.NewLedgerUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewStockItemRepository(pool),
		postgres.NewStockMovementRepository(pool),
		log,
	)
	n, err := uc.Seed(ctx, items)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar catálogo")
	}
	log.Info().Int("inserted", n).Int("total", len(items)).Msg("catálogo sembrado")
}

func loadCatalogue() ([]*entity.StockItem, error) {
	if *csvPath == "" {
		return inventory.DefaultCatalogue(), nil
	}
	f, err := os.Open(*csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCatalogue(f, *latin1)
}
