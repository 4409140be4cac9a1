package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/igordesouzasouza/catalog-ingest/internal/apperr"
	"github.com/igordesouzasouza/catalog-ingest/internal/form"
	"github.com/igordesouzasouza/catalog-ingest/internal/http/apierr"
	"github.com/igordesouzasouza/catalog-ingest/internal/model"
	"github.com/igordesouzasouza/catalog-ingest/internal/service"
)

type productHandler struct {
	logger     *slog.Logger
	productSvc service.ProductService
}

func newProductHandler(logger *slog.Logger, productSvc service.ProductService) *productHandler {
	return &productHandler{
		logger:     logger,
		productSvc: productSvc,
	}
}

type createProductResponse struct {
	Success bool                 `json:"success"`
	Product model.CatalogProduct `json:"product"`
	Price   model.CatalogPrice   `json:"price"`
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	draft, err := form.Decode(r)
	if err != nil {
		h.writeError(w, r, apperr.ValidationErr.WithMsg("malformed multipart form").WrapParent(err))
		return
	}

	result, err := h.productSvc.CreateProduct(r.Context(), draft)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, createProductResponse{
		Success: true,
		Product: result.Product,
		Price:   result.Price,
	})
}

func (h *productHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WarnContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (h *productHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelWarn
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	}
	h.logger.Log(r.Context(), logLevel, "create product failed", slog.Any("error", err))

	h.writeJSON(w, r, res.StatusCode, res)
}
