package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/igordesouzasouza/catalog-ingest/internal/apperr"
	"github.com/igordesouzasouza/catalog-ingest/internal/config"
	"github.com/igordesouzasouza/catalog-ingest/internal/model"
	"github.com/igordesouzasouza/catalog-ingest/pkg/ptr"
)

var _ Writer = (*StripeWriter)(nil)

// StripeWriter writes products and prices through the Stripe API.
type StripeWriter struct {
	client *client.API
}

func NewStripeWriter(cfg config.Catalog) (*StripeWriter, error) {
	if cfg.StripeSecretKey == "" {
		return nil, errors.New("stripe secret key is empty")
	}

	sc := &client.API{}
	sc.Init(cfg.StripeSecretKey, nil)

	return &StripeWriter{client: sc}, nil
}

func (w *StripeWriter) CreateProduct(ctx context.Context, params CreateProductParams) (model.CatalogProduct, error) {
	ctx, span := tracer.Start(ctx, "StripeWriter.CreateProduct",
		trace.WithAttributes(attribute.String("product.name", params.Name)),
	)
	defer span.End()

	productParams := &stripe.ProductParams{
		Params: stripe.Params{
			Context:  ctx,
			Metadata: params.Metadata,
		},
		Name:        stripe.String(params.Name),
		Description: stripe.String(params.Description),
		Images:      []*string{},
	}
	if params.ImageURL != nil {
		productParams.Images = []*string{params.ImageURL}
	}

	product, err := w.client.Products.New(productParams)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create product")
		return model.CatalogProduct{}, mapStripeErr(err)
	}

	span.SetAttributes(attribute.String("product.id", product.ID))
	span.SetStatus(codes.Ok, "")
	return toCatalogProduct(product), nil
}

func (w *StripeWriter) CreatePrice(ctx context.Context, params CreatePriceParams) (model.CatalogPrice, error) {
	ctx, span := tracer.Start(ctx, "StripeWriter.CreatePrice",
		trace.WithAttributes(
			attribute.String("product.id", params.ProductID),
			attribute.Int64("price.unit_amount", params.UnitAmount),
			attribute.String("price.currency", params.Currency),
		),
	)
	defer span.End()

	price, err := w.client.Prices.New(&stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(params.ProductID),
		UnitAmount: stripe.Int64(params.UnitAmount),
		Currency:   stripe.String(params.Currency),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create price")
		return model.CatalogPrice{}, mapStripeErr(err)
	}

	span.SetAttributes(attribute.String("price.id", price.ID))
	span.SetStatus(codes.Ok, "")
	return toCatalogPrice(price), nil
}

func (w *StripeWriter) SetDefaultPrice(ctx context.Context, productID, priceID string) (model.CatalogProduct, error) {
	ctx, span := tracer.Start(ctx, "StripeWriter.SetDefaultPrice",
		trace.WithAttributes(
			attribute.String("product.id", productID),
			attribute.String("price.id", priceID),
		),
	)
	defer span.End()

	product, err := w.client.Products.Update(productID, &stripe.ProductParams{
		Params:       stripe.Params{Context: ctx},
		DefaultPrice: stripe.String(priceID),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set default price")
		return model.CatalogProduct{}, mapStripeErr(err)
	}

	span.SetStatus(codes.Ok, "")
	return toCatalogProduct(product), nil
}

// mapStripeErr classifies a Stripe failure: invalid-request errors are the
// caller's fault, everything else is the platform's. The remote message is
// surfaced to the caller either way.
func mapStripeErr(err error) error {
	var sErr *stripe.Error
	if !errors.As(err, &sErr) {
		return apperr.CatalogErr.WrapParent(err)
	}

	msg := sErr.Msg
	if msg == "" {
		msg = fmt.Sprintf("stripe error: %s", sErr.Type)
	}

	switch sErr.Type {
	case stripe.ErrorTypeInvalidRequest, stripe.ErrorTypeCard:
		return apperr.CatalogRejectedErr.WithMsg(msg).WrapParent(err)
	default:
		return apperr.CatalogErr.WithMsg(msg).WrapParent(err)
	}
}

func toCatalogProduct(p *stripe.Product) model.CatalogProduct {
	product := model.CatalogProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
		Metadata:    p.Metadata,
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if p.DefaultPrice != nil {
		product.DefaultPriceID = ptr.New(p.DefaultPrice.ID)
	}
	return product
}

func toCatalogPrice(p *stripe.Price) model.CatalogPrice {
	price := model.CatalogPrice{
		ID:         p.ID,
		UnitAmount: p.UnitAmount,
		Currency:   string(p.Currency),
	}
	if p.Product != nil {
		price.ProductID = p.Product.ID
	}
	return price
}
