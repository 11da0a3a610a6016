// seed carga el catálogo inicial desde un archivo JSON.
//
// Uso: go run ./cmd/seed [ruta/products.json]
// Por defecto busca products.json en el directorio actual. Con DOCUMENT_STORE=postgres la carga
// es atómica: entran todos los productos o ninguno.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vgc-store/internal/domain/entity"
	"github.com/jhoicas/vgc-store/internal/domain/repository"
	"github.com/jhoicas/vgc-store/internal/infrastructure/bootstrap"
	"github.com/jhoicas/vgc-store/internal/infrastructure/postgres"
	"github.com/jhoicas/vgc-store/pkg/config"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

type seedProduct struct {
	Name        string              `json:"name"`
	Price       decimal.NullDecimal `json:"price"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	ImageURL    string              `json:"imageUrl"`
}

func main() {
	path := "products.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	products, err := readSeed(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer archivo de productos")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	adapters, err := bootstrap.DocumentStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén documental")
	}
	defer adapters.Close()

	insert := func(repo repository.ProductRepository) error {
		now := time.Now().UTC()
		for i, p := range products {
			// el orden del archivo se conserva como "más reciente primero"
			at := now.Add(-time.Duration(i) * time.Second)
			entityProduct := &entity.Product{
				Name:        p.Name,
				Price:       p.Price.Decimal,
				Description: p.Description,
				Category:    p.Category,
				ImageURL:    p.ImageURL,
				CreatedAt:   at,
				UpdatedAt:   at,
			}
			if err := repo.Create(ctx, entityProduct); err != nil {
				return fmt.Errorf("producto %q: %w", p.Name, err)
			}
		}
		return nil
	}

	if adapters.Pool != nil {
		err = postgres.NewTxRunner(adapters.Pool).Run(ctx, insert)
	} else {
		err = insert(adapters.Products)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("carga del catálogo")
	}
	log.Info().Int("products", len(products)).Str("store", cfg.App.DocumentStore).Msg("catálogo cargado")
}

func readSeed(path string) ([]seedProduct, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []seedProduct
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decodificar JSON: %w", err)
	}
	for i, p := range products {
		price := p.Price.Decimal
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Category) == "" || !p.Price.Valid ||
			price.IsNegative() || !price.Equal(price.Round(2)) {
			return nil, fmt.Errorf("producto #%d inválido: name, category y price son obligatorios; price >= 0 con dos decimales como máximo", i+1)
		}
	}
	return products, nil
}
