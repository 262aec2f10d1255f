package repository

import (
	"context"
	"fmt"
	"strings"

	"guitarcenter/harvester/internal/domain"
	"guitarcenter/harvester/internal/query"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository interface {
	SaveProduct(ctx context.Context, product *domain.Product) error
	SaveBrand(ctx context.Context, brand *domain.Brand) error
	ListBrandRefs(ctx context.Context) ([]domain.BrandRef, error)
	SearchProducts(ctx context.Context, criteria domain.Criteria) ([]domain.ProductView, error)
}

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// SaveProduct appends one product row. Exactly one of brand_id/other_brand
// is populated; the schema leaves both nullable, so the invariant is
// enforced here.
func (r *catalogRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	var brandID any
	var otherBrand any
	if product.BrandID != 0 {
		brandID = product.BrandID
	} else {
		otherBrand = product.OtherBrand
	}

	sql := `
	INSERT INTO products (name, brand_id, other_brand, category, price, styles, description, features, pic_url, url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, sql,
		product.Name,
		brandID,
		otherBrand,
		product.Category,
		product.Price,
		product.StyleDisplay(),
		product.Description,
		product.FeatureDisplay(),
		product.PicURL,
		product.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %q: %w", product.Name, err)
	}

	return nil
}

func (r *catalogRepository) SaveBrand(ctx context.Context, brand *domain.Brand) error {
	var country any
	if brand.Country != "" {
		country = brand.Country
	}

	sql := `
	INSERT INTO brands (name, country, description, website)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO NOTHING`
	_, err := r.db.Exec(ctx, sql, brand.Name, country, brand.Description, brand.Website)
	if err != nil {
		return fmt.Errorf("failed to save brand %q: %w", brand.Name, err)
	}

	return nil
}

// ListBrandRefs returns the known-brand table in id order, which is the
// resolver's scan order.
func (r *catalogRepository) ListBrandRefs(ctx context.Context) ([]domain.BrandRef, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM brands ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var refs []domain.BrandRef
	for rows.Next() {
		var ref domain.BrandRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan brand row: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read brand rows: %w", err)
	}

	return refs, nil
}

func (r *catalogRepository) SearchProducts(ctx context.Context, criteria domain.Criteria) ([]domain.ProductView, error) {
	sql, args := query.Build(criteria)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var results []domain.ProductView
	for rows.Next() {
		var (
			view       domain.ProductView
			brandID    *int64
			otherBrand *string
			price      *float64
			styles     string
			desc       *string
			features   *string
		)
		err := rows.Scan(
			&view.Name,
			&view.Brand,
			&brandID,
			&otherBrand,
			&view.Category,
			&price,
			&styles,
			&desc,
			&features,
			&view.PicURL,
			&view.URL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		if brandID != nil {
			view.BrandID = *brandID
		}
		if otherBrand != nil {
			view.OtherBrand = *otherBrand
		}
		view.Price = price
		if desc != nil {
			view.Description = *desc
		}
		if styles != "" {
			view.Styles = strings.Split(styles, ", ")
		}
		if features != nil && *features != "" {
			view.Features = strings.Split(*features, " \n ")
		}

		results = append(results, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	return results, nil
}
