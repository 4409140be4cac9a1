package config

// Catalog holds the commerce platform (Stripe) settings. The secret key is
// required: the process refuses to start without it instead of failing on the
// first submission.
type Catalog struct {
	StripeSecretKey string `env:"STRIPE_SECRET_KEY,required"`
	Currency        string `env:"CATALOG_CURRENCY" envDefault:"brl"`
}
