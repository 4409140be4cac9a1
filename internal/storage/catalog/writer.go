// Package catalog talks to the commerce platform that is the system of
// record for products and prices.
package catalog

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/igordesouzasouza/catalog-ingest/internal/model"
)

var tracer = otel.Tracer("internal/storage/catalog")

type CreateProductParams struct {
	Name        string
	Description string
	// ImageURL is the hosted image, when the submission carried one. The
	// platform receives an image list of zero or one entries.
	ImageURL *string
	Metadata map[string]string
}

type CreatePriceParams struct {
	ProductID  string
	UnitAmount int64
	Currency   string
}

// Writer materializes a product on the platform. The three operations are
// the platform's own sequence: a product exists before its price, and the
// default-price pointer is attached last.
type Writer interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.CatalogProduct, error)
	CreatePrice(ctx context.Context, params CreatePriceParams) (model.CatalogPrice, error)
	SetDefaultPrice(ctx context.Context, productID, priceID string) (model.CatalogProduct, error)
}
