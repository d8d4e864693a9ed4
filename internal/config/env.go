package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"marketdash/internal/domain"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PageSizes holds the per-view page size.
type PageSizes struct {
	Products    int `mapstructure:"products"`
	Orders      int `mapstructure:"orders"`
	Payments    int `mapstructure:"payments"`
	Withdrawals int `mapstructure:"withdrawals"`
	Users       int `mapstructure:"users"`
}

// Env is the resolved runtime configuration.
type Env struct {
	AppAddr            string
	GinMode            string
	APIBaseURL         string
	APIToken           string
	FetchTimeout       time.Duration
	PollInterval       time.Duration
	CurrencySymbol     string
	PageSizes          PageSizes
	CORSAllowedOrigins []string
	JWTSecret          string
	AdminUsername      string
	AdminPasswordHash  string
	DBDSN              string
}

// PageSize returns the configured size for a list view, 10 when unset.
func (e Env) PageSize(kind domain.Kind) int {
	var n int
	switch kind {
	case domain.KindProduct:
		n = e.PageSizes.Products
	case domain.KindOrder:
		n = e.PageSizes.Orders
	case domain.KindPayment:
		n = e.PageSizes.Payments
	case domain.KindWithdrawal:
		n = e.PageSizes.Withdrawals
	case domain.KindUser:
		n = e.PageSizes.Users
	}
	if n < 1 {
		return 10
	}
	return n
}

func (e Env) Validate() error {
	if strings.TrimSpace(e.APIBaseURL) == "" {
		return errors.New("api_base_url is required")
	}
	if e.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", e.FetchTimeout)
	}
	if e.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", e.PollInterval)
	}
	return nil
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("gin_mode", "")
	v.SetDefault("api_base_url", "")
	v.SetDefault("api_token", "")
	v.SetDefault("fetch_timeout", "15s")
	v.SetDefault("poll_interval", "5s")
	v.SetDefault("currency_symbol", "$")
	v.SetDefault("page_size.products", 6)
	v.SetDefault("page_size.orders", 10)
	v.SetDefault("page_size.payments", 10)
	v.SetDefault("page_size.withdrawals", 10)
	v.SetDefault("page_size.users", 15)
	v.SetDefault("cors_allowed_origins", defaultOrigins)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password_hash", "")
	v.SetDefault("db_dsn", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("MARKETDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// bare names kept from the previous deployment scripts
	_ = v.BindEnv("app_addr", "MARKETDASH_APP_ADDR", "APP_ADDR")
	_ = v.BindEnv("gin_mode", "MARKETDASH_GIN_MODE", "GIN_MODE")
	_ = v.BindEnv("cors_allowed_origins", "MARKETDASH_CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_ORIGINS")
	return v
}

func fromViper(v *viper.Viper) Env {
	return Env{
		AppAddr:        strings.TrimSpace(v.GetString("app_addr")),
		GinMode:        strings.TrimSpace(v.GetString("gin_mode")),
		APIBaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("api_base_url")), "/"),
		APIToken:       strings.TrimSpace(v.GetString("api_token")),
		FetchTimeout:   v.GetDuration("fetch_timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		CurrencySymbol: v.GetString("currency_symbol"),
		PageSizes: PageSizes{
			Products:    v.GetInt("page_size.products"),
			Orders:      v.GetInt("page_size.orders"),
			Payments:    v.GetInt("page_size.payments"),
			Withdrawals: v.GetInt("page_size.withdrawals"),
			Users:       v.GetInt("page_size.users"),
		},
		CORSAllowedOrigins: originList(v.GetStringSlice("cors_allowed_origins")),
		JWTSecret:          v.GetString("jwt_secret"),
		AdminUsername:      strings.TrimSpace(v.GetString("admin_username")),
		AdminPasswordHash:  strings.TrimSpace(v.GetString("admin_password_hash")),
		DBDSN:              strings.TrimSpace(v.GetString("db_dsn")),
	}
}

// originList accepts list values from a file and comma lists from env.
func originList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// Store holds the live configuration and notifies subscribers on reload.
type Store struct {
	v          *viper.Viper
	configFile string

	mu          sync.RWMutex
	env         Env
	subscribers []func(Env)
}

// Load reads .env (optional), then CONFIG_FILE (optional), then the environment.
func Load() (*Store, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}
	return LoadFile(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
}

// LoadFile builds a Store from configFile (may be empty) plus the environment.
func LoadFile(configFile string) (*Store, error) {
	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	env := fromViper(v)
	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Store{v: v, configFile: configFile, env: env}, nil
}

// Get returns the current configuration.
func (s *Store) Get() Env {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env
}

// Subscribe registers fn to be called with every accepted reload.
func (s *Store) Subscribe(fn func(Env)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// EnableHotReload watches the config file. Invalid edits are logged and ignored.
func (s *Store) EnableHotReload() {
	if s.configFile == "" {
		return
	}
	s.v.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("Config file changed: %s", e.Name)
		s.reload()
	})
	s.v.WatchConfig()
}

func (s *Store) reload() {
	env := fromViper(s.v)
	if err := env.Validate(); err != nil {
		log.Printf("Invalid configuration, keeping previous: %v", err)
		return
	}
	s.mu.Lock()
	s.env = env
	subscribers := make([]func(Env), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(env)
	}
}
