package model

// SizeChart maps a size label (PP, M, GG, ...) to that size's measurement
// name/value pairs, e.g. {"PP": {"busto": "80"}}.
type SizeChart map[string]map[string]string

// DraftProduct is the decoded, pre-validation form of a submission.
// Values are kept as the raw strings the form sent; normalization happens
// after validation.
type DraftProduct struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Price       string `validate:"required"`
	Stock       string
	Category    string
	Sizes       SizeChart
	Image       []byte
}

// CatalogProduct is the product record as the commerce platform returns it.
type CatalogProduct struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Images         []string          `json:"images"`
	Metadata       map[string]string `json:"metadata"`
	DefaultPriceID *string           `json:"default_price,omitempty"`
}

// CatalogPrice is the price record owned by a catalog product. UnitAmount is
// in minor currency units (centavos).
type CatalogPrice struct {
	ID         string `json:"id"`
	ProductID  string `json:"product"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
}
