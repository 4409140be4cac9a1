package apperr

import "github.com/igordesouzasouza/catalog-ingest/pkg/zerror"

const (
	ValidationErrorCode    = "VALIDATION_FAILED"
	ConfigErrorCode        = "CONFIG_MISSING"
	UploadErrorCode        = "UPLOAD_FAILED"
	CatalogErrorCode       = "CATALOG_FAILED"
	CatalogRejectedCode    = "CATALOG_REJECTED"
	UploadTimeoutErrorCode = "UPLOAD_TIMEOUT"
)

var (
	// ValidationErr covers bad or missing submission input.
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// ConfigErr covers missing runtime collaborators (commerce or hosting
	// credentials). Nothing has been parsed or mutated when it fires.
	ConfigErr = zerror.NewInternalServerError(ConfigErrorCode, "service is not configured")

	// UploadErr covers image hosting failures. The pipeline stops before any
	// catalog mutation when it fires.
	UploadErr = zerror.NewInternalServerError(UploadErrorCode, "image upload failed")

	// UploadTimeoutErr is UploadErr's deadline flavor.
	UploadTimeoutErr = zerror.NewInternalServerError(UploadTimeoutErrorCode, "image upload timed out")

	// CatalogErr covers commerce platform faults (their side).
	CatalogErr = zerror.NewInternalServerError(CatalogErrorCode, "catalog write failed")

	// CatalogRejectedErr covers catalog writes the platform refused because of
	// the caller's input.
	CatalogRejectedErr = zerror.NewBadRequest(CatalogRejectedCode, "catalog rejected the product")
)
