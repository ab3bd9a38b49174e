package config

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

const (
	SandboxURL    = "https://sandbox.api.iberbanco.finance/api/v2"
	ProductionURL = "https://production.api.iberbancoltd.com/api/v2"

	DefaultTimeout = 30 * time.Second
	MaxTimeout     = 300 * time.Second
	MaxRetries     = 10

	Version = "1.0.0"
)

var validate = validator.New()

// Config is the resolved client configuration. Use New or LoadConfig; the
// zero value has no endpoint.
type Config struct {
	BaseURL    string `validate:"required,url"`
	Sandbox    bool
	Username   string
	Timeout    time.Duration `validate:"gt=0,lte=300s"`
	VerifySSL  bool
	Debug      bool
	Retries    int `validate:"gte=0,lte=10"`
	HistoryDSN string
	Headers    map[string]string

	// explicitURL keeps BaseURL when the sandbox flag changes.
	explicitURL bool
}

// options mirrors the keys accepted by New. Pointers tell "unset" from zero.
type options struct {
	Sandbox    *bool             `mapstructure:"sandbox"`
	BaseURL    *string           `mapstructure:"base_url"`
	Username   *string           `mapstructure:"username"`
	Timeout    *int              `mapstructure:"timeout"`
	VerifySSL  *bool             `mapstructure:"verify_ssl"`
	Debug      *bool             `mapstructure:"debug"`
	Headers    map[string]string `mapstructure:"headers"`
	Retries    *int              `mapstructure:"retries"`
	HistoryDSN *string           `mapstructure:"history_dsn"`
}

func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "iberbanco-go/" + Version,
	}
}

// Default is a sandbox configuration with no username.
func Default() *Config {
	return &Config{
		BaseURL:   SandboxURL,
		Sandbox:   true,
		Timeout:   DefaultTimeout,
		VerifySSL: true,
		Headers:   DefaultHeaders(),
	}
}

// New builds a configuration from a keyed map. Recognized keys are sandbox,
// base_url, username, timeout (seconds), verify_ssl, debug, headers, retries
// and history_dsn; others are ignored. The result is validated.
func New(opts map[string]any) (*Config, error) {
	cfg := Default()
	if err := cfg.Apply(opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply merges opts over the current values and revalidates. On error the
// configuration is left unchanged.
func (c *Config) Apply(opts map[string]any) error {
	var o options
	if err := mapstructure.WeakDecode(opts, &o); err != nil {
		return sdkerr.Configuration("options", err.Error())
	}

	next := c.Clone()
	if o.Sandbox != nil {
		next.SetSandbox(*o.Sandbox)
	}
	if o.BaseURL != nil && *o.BaseURL != "" {
		next.SetBaseURL(*o.BaseURL)
	}
	if o.Username != nil {
		next.Username = *o.Username
	}
	if o.Timeout != nil {
		next.Timeout = time.Duration(*o.Timeout) * time.Second
	}
	if o.VerifySSL != nil {
		next.VerifySSL = *o.VerifySSL
	}
	if o.Debug != nil {
		next.Debug = *o.Debug
	}
	if o.Retries != nil {
		next.Retries = *o.Retries
	}
	if o.HistoryDSN != nil {
		next.HistoryDSN = *o.HistoryDSN
	}
	maps.Copy(next.Headers, o.Headers)

	if err := next.Validate(); err != nil {
		return err
	}
	*c = *next
	return nil
}

// Validate reports the first invalid setting as a *sdkerr.ConfigurationError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return sdkerr.Configuration("", err.Error())
	}
	return configError(verrs[0])
}

func configError(e validator.FieldError) error {
	switch e.Field() + "." + e.Tag() {
	case "BaseURL.required":
		return sdkerr.Configuration("base_url", "Base URL is required")
	case "BaseURL.url":
		return sdkerr.Configuration("base_url", "Invalid base URL format")
	case "Timeout.gt":
		return sdkerr.Configuration("timeout", "Timeout must be greater than 0")
	case "Timeout.lte":
		return sdkerr.Configuration("timeout", fmt.Sprintf("Timeout must not exceed %d seconds", int(MaxTimeout/time.Second)))
	case "Retries.gte", "Retries.lte":
		return sdkerr.Configuration("retries", fmt.Sprintf("Retries must be between 0 and %d", MaxRetries))
	}
	return sdkerr.Configuration(e.Field(), fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
}

// Endpoint is BaseURL without a trailing slash.
func (c *Config) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// SetSandbox switches environment. An explicit base URL is kept until
// ClearBaseURL is called.
func (c *Config) SetSandbox(sandbox bool) {
	c.Sandbox = sandbox
	if !c.explicitURL {
		c.BaseURL = environmentURL(sandbox)
	}
}

func (c *Config) SetBaseURL(url string) {
	c.BaseURL = url
	c.explicitURL = true
}

// ClearBaseURL drops an explicit base URL and returns to the environment
// endpoint.
func (c *Config) ClearBaseURL() {
	c.explicitURL = false
	c.BaseURL = environmentURL(c.Sandbox)
}

func (c *Config) HasExplicitBaseURL() bool { return c.explicitURL }

func (c *Config) AddHeader(key, value string) {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[key] = value
}

func (c *Config) Clone() *Config {
	out := *c
	out.Headers = maps.Clone(c.Headers)
	if out.Headers == nil {
		out.Headers = make(map[string]string)
	}
	return &out
}

// ToMap is the keyed form accepted by New.
func (c *Config) ToMap() map[string]any {
	return map[string]any{
		"base_url":    c.Endpoint(),
		"sandbox":     c.Sandbox,
		"username":    c.Username,
		"timeout":     int(c.Timeout / time.Second),
		"verify_ssl":  c.VerifySSL,
		"debug":       c.Debug,
		"headers":     maps.Clone(c.Headers),
		"retries":     c.Retries,
		"history_dsn": c.HistoryDSN,
	}
}

func environmentURL(sandbox bool) string {
	if sandbox {
		return SandboxURL
	}
	return ProductionURL
}

// LoadConfig reads IBERBANCO_* variables from the environment. Callers that
// use a .env file load it first.
func LoadConfig() (*Config, error) {
	opts := map[string]any{
		"sandbox":    envBool("IBERBANCO_SANDBOX", true),
		"username":   os.Getenv("IBERBANCO_USERNAME"),
		"verify_ssl": envBool("IBERBANCO_VERIFY_SSL", true),
		"debug":      envBool("IBERBANCO_DEBUG", false),
	}
	if v := os.Getenv("IBERBANCO_BASE_URL"); v != "" {
		opts["base_url"] = v
	}
	if v := os.Getenv("IBERBANCO_TIMEOUT"); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil {
			return nil, sdkerr.Configuration("timeout", fmt.Sprintf("invalid IBERBANCO_TIMEOUT: %v", err))
		}
		opts["timeout"] = timeout
	}
	if v := os.Getenv("IBERBANCO_RETRIES"); v != "" {
		retries, err := strconv.Atoi(v)
		if err != nil {
			return nil, sdkerr.Configuration("retries", fmt.Sprintf("invalid IBERBANCO_RETRIES: %v", err))
		}
		opts["retries"] = retries
	}
	if v := os.Getenv("IBERBANCO_HISTORY_DSN"); v != "" {
		opts["history_dsn"] = v
	}
	return New(opts)
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
