package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/inventory"
)

// Columnas esperadas (con encabezado): id;nom;categorie;prix;quantite;seuil
var csvHeader = []string{"id", "nom", "categorie", "prix", "quantite", "seuil"}

// parseCatalogue lee el catálogo en CSV separado por ';'. latin1 decodifica la entrada como
// ISO-8859-1 (exportaciones de Excel en francés).
func parseCatalogue(r io.Reader, latin1 bool) ([]*entity.StockItem, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catálogo vacío")
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimPrefix(strings.TrimSpace(h), "\ufeff"), csvHeader[i]) {
			return nil, fmt.Errorf("columna %d: se esperaba %q, llegó %q", i+1, csvHeader[i], h)
		}
	}

	var items []*entity.StockItem
	seen := make(map[string]int)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		item, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if prev, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("línea %d: id %q repetido (línea %d)", line, item.ID, prev)
		}
		seen[item.ID] = line
		items = append(items, item)
	}
	return items, nil
}

func parseRow(rec []string) (*entity.StockItem, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	id, name := rec[0], rec[1]
	if id == "" || name == "" {
		return nil, fmt.Errorf("id y nom son obligatorios")
	}
	cat := entity.Category(strings.ToLower(rec[2]))
	if !cat.Valid() {
		return nil, fmt.Errorf("categoría %q inválida", rec[2])
	}
	// Precios enteros en F CFA; se admite coma decimal.
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.ReplaceAll(rec[3], " ", ""), ",", "."))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("prix %q inválido", rec[3])
	}
	qty, err := inventory.ParseQuantity(rec[4])
	if err != nil {
		return nil, err
	}
	if n, ok := qty.Amount(); ok && n < 0 {
		return nil, fmt.Errorf("quantite %q negativa", rec[4])
	}
	if qty.IsUnlimited() && cat != entity.CategoryDigital {
		return nil, fmt.Errorf("solo los artículos numéricos pueden ser ilimitados")
	}
	threshold, err := strconv.ParseInt(rec[5], 10, 64)
	if err != nil || threshold < 0 {
		return nil, fmt.Errorf("seuil %q inválido", rec[5])
	}
	return &entity.StockItem{
		ID: id, Name: name, Category: cat, Price: price, Quantity: qty, Threshold: threshold,
	}, nil
}
