package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/convenience-store/internal/domain/receipt"
)

// Config holds the complete application configuration, loadable from
// environment variables (STORE_ prefix), flags, or a YAML config file.
type Config struct {
	ProductsFile   string `default:"" usage:"path to the product table (empty: embedded default)" flag:"products-file"`
	PromotionsFile string `default:"" usage:"path to the promotion table (empty: embedded default)" flag:"promotions-file"`
	Today          string `default:"" usage:"fixed business date as YYYY-MM-DD (empty: system clock)"`
	Membership     MembershipConfig
}

// MembershipConfig controls the capped percentage membership discount.
type MembershipConfig struct {
	Rate string `default:"0.3"  usage:"membership discount rate"`
	Cap  int64  `default:"8000" usage:"membership discount cap"`
}

// LoadConfig loads configuration from environment variables, flags, and an
// optional YAML config file.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STORE",
		Files:     []string{"config.yaml", "/etc/store/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if (cfg.ProductsFile == "") != (cfg.PromotionsFile == "") {
		return nil, errors.New("products-file and promotions-file must be set together")
	}

	return &cfg, nil
}

// clock returns the business clock: the system clock, or a fixed date when
// Today is set.
func (c *Config) clock() (func() time.Time, error) {
	if c.Today == "" {
		return time.Now, nil
	}
	day, err := time.Parse("2006-01-02", c.Today)
	if err != nil {
		return nil, errors.Wrapf(err, "parse today %q", c.Today)
	}
	return func() time.Time { return day }, nil
}

// membershipPolicy builds the receipt policy from the configured rate and cap.
func (c *Config) membershipPolicy() (receipt.MembershipPolicy, error) {
	rate, err := decimal.NewFromString(c.Membership.Rate)
	if err != nil {
		return receipt.MembershipPolicy{}, errors.Wrapf(err, "parse membership rate %q", c.Membership.Rate)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return receipt.MembershipPolicy{}, errors.Errorf("membership rate %s out of [0, 1]", rate)
	}
	if c.Membership.Cap < 0 {
		return receipt.MembershipPolicy{}, errors.Errorf("membership cap %d must not be negative", c.Membership.Cap)
	}

	return receipt.MembershipPolicy{
		Rate: rate,
		Cap:  decimal.NewFromInt(c.Membership.Cap),
	}, nil
}
