package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/inventory"
)

func TestParseCatalogue_UTF8(t *testing.T) {
	in := "id;nom;categorie;prix;quantite;seuil\n" +
		"1;Pocket WiFi 4G;physique;89 900;50;10\n" +
		"5;Mobile Money;numérique;0;Disponible;100\n"

	items, err := parseCatalogue(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Pocket WiFi 4G", items[0].Name)
	assert.Equal(t, entity.CategoryPhysical, items[0].Category)
	assert.Equal(t, "89900", items[0].Price.String())
	assert.True(t, items[0].Quantity.Equal(inventory.Finite(50)))
	assert.Equal(t, int64(10), items[0].Threshold)

	assert.Equal(t, entity.CategoryDigital, items[1].Category)
	assert.True(t, items[1].Quantity.IsUnlimited())
}

func TestParseCatalogue_Latin1(t *testing.T) {
	// "Crédit" y "numérique" en ISO-8859-1 (é = 0xE9).
	in := "id;nom;categorie;prix;quantite;seuil\n" +
		"9;Cr\xe9dit Celtiis;num\xe9rique;1000;Disponible;0\n"

	items, err := parseCatalogue(strings.NewReader(in), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Crédit Celtiis", items[0].Name)
	assert.Equal(t, entity.CategoryDigital, items[0].Category)
}

func TestParseCatalogue_Errores(t *testing.T) {
	cases := map[string]string{
		"encabezado":         "id;name;categorie;prix;quantite;seuil\n",
		"categoría":          "id;nom;categorie;prix;quantite;seuil\n1;A;autre;10;1;1\n",
		"cantidad textual":   "id;nom;categorie;prix;quantite;seuil\n1;A;physique;10;beaucoup;1\n",
		"físico ilimitado":   "id;nom;categorie;prix;quantite;seuil\n1;A;physique;10;Disponible;1\n",
		"precio negativo":    "id;nom;categorie;prix;quantite;seuil\n1;A;physique;-10;1;1\n",
		"id repetido":        "id;nom;categorie;prix;quantite;seuil\n1;A;physique;10;1;1\n1;B;physique;10;1;1\n",
		"columnas faltantes": "id;nom;categorie;prix;quantite;seuil\n1;A;physique\n",
		"vacío":              "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalogue(strings.NewReader(in), false)
			assert.Error(t, err)
		})
	}
}
