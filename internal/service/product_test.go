package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igordesouzasouza/catalog-ingest/internal/apperr"
	"github.com/igordesouzasouza/catalog-ingest/internal/model"
	"github.com/igordesouzasouza/catalog-ingest/internal/service"
	"github.com/igordesouzasouza/catalog-ingest/internal/storage/catalog"
	"github.com/igordesouzasouza/catalog-ingest/pkg/ptr"
	"github.com/igordesouzasouza/catalog-ingest/pkg/validator"
	"github.com/igordesouzasouza/catalog-ingest/pkg/zerror"
)

type fakeUploader struct {
	url       string
	err       error
	calls     int
	lastImage []byte
}

func (f *fakeUploader) Upload(_ context.Context, image []byte) (string, error) {
	f.calls++
	f.lastImage = image
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeWriter struct {
	createProductCalls int
	createPriceCalls   int
	setDefaultCalls    int

	productParams catalog.CreateProductParams
	priceParams   catalog.CreatePriceParams

	createProductErr error
	createPriceErr   error
	setDefaultErr    error
}

func (f *fakeWriter) CreateProduct(_ context.Context, params catalog.CreateProductParams) (model.CatalogProduct, error) {
	f.createProductCalls++
	f.productParams = params
	if f.createProductErr != nil {
		return model.CatalogProduct{}, f.createProductErr
	}

	images := []string{}
	if params.ImageURL != nil {
		images = []string{*params.ImageURL}
	}
	return model.CatalogProduct{
		ID:          "prod_123",
		Name:        params.Name,
		Description: params.Description,
		Images:      images,
		Metadata:    params.Metadata,
	}, nil
}

func (f *fakeWriter) CreatePrice(_ context.Context, params catalog.CreatePriceParams) (model.CatalogPrice, error) {
	f.createPriceCalls++
	f.priceParams = params
	if f.createPriceErr != nil {
		return model.CatalogPrice{}, f.createPriceErr
	}
	return model.CatalogPrice{
		ID:         "price_123",
		ProductID:  params.ProductID,
		UnitAmount: params.UnitAmount,
		Currency:   params.Currency,
	}, nil
}

func (f *fakeWriter) SetDefaultPrice(_ context.Context, productID, priceID string) (model.CatalogProduct, error) {
	f.setDefaultCalls++
	if f.setDefaultErr != nil {
		return model.CatalogProduct{}, f.setDefaultErr
	}
	return model.CatalogProduct{
		ID:             productID,
		Metadata:       f.productParams.Metadata,
		Images:         []string{},
		DefaultPriceID: ptr.New(priceID),
	}, nil
}

func newService(uploader *fakeUploader, writer *fakeWriter) service.ProductService {
	return service.NewProductService(
		slog.Default(),
		validator.NewDefaultValidator(),
		uploader,
		writer,
		"brl",
	)
}

func validDraft() model.DraftProduct {
	return model.DraftProduct{
		Name:        "Dress A",
		Description: "desc",
		Price:       "49.90",
		Stock:       "3",
		Category:    "Vestidos",
		Sizes:       model.SizeChart{"PP": {"busto": "80"}},
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("Should create product, price and default price pointer", func(t *testing.T) {
		uploader := &fakeUploader{url: "https://img.example/produtos/a.jpg"}
		writer := &fakeWriter{}
		svc := newService(uploader, writer)

		result, err := svc.CreateProduct(context.Background(), validDraft())
		require.NoError(t, err)

		assert.Equal(t, 1, writer.createProductCalls)
		assert.Equal(t, 1, writer.createPriceCalls)
		assert.Equal(t, 1, writer.setDefaultCalls)
		assert.Equal(t, 0, uploader.calls)

		assert.Equal(t, int64(4990), writer.priceParams.UnitAmount)
		assert.Equal(t, "brl", writer.priceParams.Currency)
		assert.Equal(t, "prod_123", writer.priceParams.ProductID)

		assert.Equal(t, map[string]string{
			"stock":    "3",
			"category": "Vestidos",
			"size_PP":  `{"busto":"80"}`,
		}, writer.productParams.Metadata)

		require.NotNil(t, result.Product.DefaultPriceID)
		assert.Equal(t, "price_123", *result.Product.DefaultPriceID)
		assert.Equal(t, int64(4990), result.Price.UnitAmount)
	})

	t.Run("Should default stock and category when absent", func(t *testing.T) {
		writer := &fakeWriter{}
		svc := newService(&fakeUploader{}, writer)

		draft := validDraft()
		draft.Stock = ""
		draft.Category = ""
		draft.Sizes = nil

		_, err := svc.CreateProduct(context.Background(), draft)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"stock":    "0",
			"category": "",
		}, writer.productParams.Metadata)
	})

	t.Run("Should round the price to the nearest centavo", func(t *testing.T) {
		writer := &fakeWriter{}
		svc := newService(&fakeUploader{}, writer)

		draft := validDraft()
		draft.Price = "10.555"

		_, err := svc.CreateProduct(context.Background(), draft)
		require.NoError(t, err)

		assert.Equal(t, int64(1056), writer.priceParams.UnitAmount)
	})

	t.Run("Should upload the image before any catalog call", func(t *testing.T) {
		uploader := &fakeUploader{url: "https://img.example/produtos/a.jpg"}
		writer := &fakeWriter{}
		svc := newService(uploader, writer)

		draft := validDraft()
		draft.Image = []byte{0x01, 0x02}

		_, err := svc.CreateProduct(context.Background(), draft)
		require.NoError(t, err)

		assert.Equal(t, 1, uploader.calls)
		assert.Equal(t, []byte{0x01, 0x02}, uploader.lastImage)
		require.NotNil(t, writer.productParams.ImageURL)
		assert.Equal(t, uploader.url, *writer.productParams.ImageURL)
	})

	t.Run("Should reject a draft missing name without remote calls", func(t *testing.T) {
		uploader := &fakeUploader{}
		writer := &fakeWriter{}
		svc := newService(uploader, writer)

		draft := validDraft()
		draft.Name = ""
		draft.Image = []byte{0x01}

		_, err := svc.CreateProduct(context.Background(), draft)
		require.Error(t, err)

		var vErrs govalidator.ValidationErrors
		assert.ErrorAs(t, err, &vErrs)
		assert.Equal(t, 0, uploader.calls)
		assert.Equal(t, 0, writer.createProductCalls)
	})

	t.Run("Should reject non-positive and non-numeric prices", func(t *testing.T) {
		for _, price := range []string{"0", "-5", "abc", "0.001", "NaN", "+Inf"} {
			writer := &fakeWriter{}
			svc := newService(&fakeUploader{}, writer)

			draft := validDraft()
			draft.Price = price

			_, err := svc.CreateProduct(context.Background(), draft)
			require.Error(t, err, "price %q", price)

			var zErr zerror.ZError
			require.ErrorAs(t, err, &zErr, "price %q", price)
			assert.Equal(t, zerror.StatusValidationFailed, zErr.Status(), "price %q", price)
			assert.Equal(t, 0, writer.createProductCalls, "price %q", price)
		}
	})

	t.Run("Should stop before catalog calls when the upload fails", func(t *testing.T) {
		uploader := &fakeUploader{err: errors.New("network down")}
		writer := &fakeWriter{}
		svc := newService(uploader, writer)

		draft := validDraft()
		draft.Image = []byte{0x01}

		_, err := svc.CreateProduct(context.Background(), draft)
		require.Error(t, err)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.UploadErrorCode, zErr.Code())
		assert.Equal(t, zerror.StatusInternalServerError, zErr.Status())
		assert.Equal(t, 0, writer.createProductCalls)
	})

	t.Run("Should keep a classified upload error intact", func(t *testing.T) {
		uploader := &fakeUploader{err: apperr.UploadTimeoutErr}
		svc := newService(uploader, &fakeWriter{})

		draft := validDraft()
		draft.Image = []byte{0x01}

		_, err := svc.CreateProduct(context.Background(), draft)
		require.Error(t, err)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.UploadTimeoutErrorCode, zErr.Code())
	})

	t.Run("Should abort after product creation when the price call fails", func(t *testing.T) {
		writer := &fakeWriter{createPriceErr: errors.New("boom")}
		svc := newService(&fakeUploader{}, writer)

		_, err := svc.CreateProduct(context.Background(), validDraft())
		require.Error(t, err)

		// the orphan product stays on the platform; no compensation
		assert.Equal(t, 1, writer.createProductCalls)
		assert.Equal(t, 1, writer.createPriceCalls)
		assert.Equal(t, 0, writer.setDefaultCalls)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.CatalogErrorCode, zErr.Code())
	})

	t.Run("Should surface a default price attachment failure", func(t *testing.T) {
		writer := &fakeWriter{setDefaultErr: apperr.CatalogRejectedErr.WithMsg("no such price")}
		svc := newService(&fakeUploader{}, writer)

		_, err := svc.CreateProduct(context.Background(), validDraft())
		require.Error(t, err)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusBadRequest, zErr.Status())
		assert.Equal(t, "no such price", zErr.Msg())
	})
}
