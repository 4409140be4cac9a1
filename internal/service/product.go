// Package service runs the ingestion pipeline: validate and normalize the
// draft, upload the image when one was attached, then materialize the product
// on the commerce platform.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/igordesouzasouza/catalog-ingest/internal/apperr"
	"github.com/igordesouzasouza/catalog-ingest/internal/model"
	"github.com/igordesouzasouza/catalog-ingest/internal/storage/catalog"
	"github.com/igordesouzasouza/catalog-ingest/internal/storage/media"
	"github.com/igordesouzasouza/catalog-ingest/pkg/ptr"
	"github.com/igordesouzasouza/catalog-ingest/pkg/validator"
	"github.com/igordesouzasouza/catalog-ingest/pkg/zerror"
)

type CreateProductResult struct {
	Product model.CatalogProduct
	Price   model.CatalogPrice
}

type ProductService interface {
	CreateProduct(ctx context.Context, draft model.DraftProduct) (CreateProductResult, error)
}

type productService struct {
	logger    *slog.Logger
	validator validator.Validator
	uploader  media.Uploader
	catalog   catalog.Writer
	currency  string
}

func NewProductService(
	logger *slog.Logger,
	v validator.Validator,
	uploader media.Uploader,
	catalogWriter catalog.Writer,
	currency string,
) ProductService {
	return &productService{
		logger:    logger.With(slog.String("service", "product")),
		validator: v,
		uploader:  uploader,
		catalog:   catalogWriter,
		currency:  currency,
	}
}

// normalizedDraft is the validated submission, price already converted to
// minor currency units and the size chart serialized into flat metadata.
type normalizedDraft struct {
	Name        string
	Description string
	UnitAmount  int64
	Metadata    map[string]string
}

// CreateProduct runs the pipeline strictly in order: nothing is mutated
// remotely before validation passes, and no catalog call happens if the image
// upload fails. A failure after the product is created leaves an orphan on
// the platform; that is accepted and logged, not compensated.
func (s *productService) CreateProduct(ctx context.Context, draft model.DraftProduct) (CreateProductResult, error) {
	var res CreateProductResult

	norm, err := s.normalize(draft)
	if err != nil {
		return res, fmt.Errorf("normalize draft: %w", err)
	}

	if s.catalog == nil {
		return res, apperr.ConfigErr
	}

	var imageURL *string
	if len(draft.Image) > 0 {
		if s.uploader == nil {
			return res, apperr.ConfigErr
		}

		url, err := s.uploader.Upload(ctx, draft.Image)
		if err != nil {
			return res, fmt.Errorf("upload image: %w", asUploadErr(err))
		}
		imageURL = ptr.New(url)
	}

	product, err := s.catalog.CreateProduct(ctx, catalog.CreateProductParams{
		Name:        norm.Name,
		Description: norm.Description,
		ImageURL:    imageURL,
		Metadata:    norm.Metadata,
	})
	if err != nil {
		return res, fmt.Errorf("catalog create product: %w", asCatalogErr(err))
	}

	price, err := s.catalog.CreatePrice(ctx, catalog.CreatePriceParams{
		ProductID:  product.ID,
		UnitAmount: norm.UnitAmount,
		Currency:   s.currency,
	})
	if err != nil {
		s.logOrphan(ctx, product.ID, err)
		return res, fmt.Errorf("catalog create price: %w", asCatalogErr(err))
	}

	updated, err := s.catalog.SetDefaultPrice(ctx, product.ID, price.ID)
	if err != nil {
		s.logOrphan(ctx, product.ID, err)
		return res, fmt.Errorf("catalog set default price: %w", asCatalogErr(err))
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", updated.ID),
		slog.String("price_id", price.ID),
		slog.Int64("unit_amount", price.UnitAmount))

	return CreateProductResult{Product: updated, Price: price}, nil
}

// normalize validates the draft and converts it into platform-ready values.
// Policy: stock and category are optional and default to "0" and "";
// name, description and price are required.
func (s *productService) normalize(draft model.DraftProduct) (normalizedDraft, error) {
	var norm normalizedDraft

	if err := s.validator.Validate(draft); err != nil {
		if validator.IsValidationError(err) {
			return norm, err
		}
		return norm, apperr.ValidationErr.WrapParent(err)
	}

	priceValue, err := strconv.ParseFloat(strings.TrimSpace(draft.Price), 64)
	if err != nil || math.IsNaN(priceValue) || math.IsInf(priceValue, 0) {
		return norm, apperr.ValidationErr.WithMsg("price must be a number")
	}
	if priceValue <= 0 {
		return norm, apperr.ValidationErr.WithMsg("price must be greater than zero")
	}

	unitAmount := int64(math.Round(priceValue * 100))
	if unitAmount <= 0 {
		// e.g. "0.001" parses fine but rounds to zero centavos
		return norm, apperr.ValidationErr.WithMsg("price must be at least one cent")
	}

	stock := strings.TrimSpace(draft.Stock)
	if stock == "" {
		stock = "0"
	}

	metadata := map[string]string{
		"stock":    stock,
		"category": draft.Category,
	}
	for size, measures := range draft.Sizes {
		serialized, err := json.Marshal(measures)
		if err != nil {
			return norm, fmt.Errorf("serialize measures for size %s: %w", size, err)
		}
		metadata["size_"+size] = string(serialized)
	}

	return normalizedDraft{
		Name:        draft.Name,
		Description: draft.Description,
		UnitAmount:  unitAmount,
		Metadata:    metadata,
	}, nil
}

func (s *productService) logOrphan(ctx context.Context, productID string, err error) {
	s.logger.WarnContext(ctx, "product left on platform without a default price",
		slog.String("product_id", productID),
		slog.Any("error", err))
}

// asUploadErr and asCatalogErr keep the error taxonomy intact when a
// collaborator returns a bare error instead of a classified one.
func asUploadErr(err error) error {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return err
	}
	return apperr.UploadErr.WrapParent(err)
}

func asCatalogErr(err error) error {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		return err
	}
	return apperr.CatalogErr.WrapParent(err)
}
