package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ProxyPath string   `toml:"proxy_path"` // used in webhook-sender
	ProxyList []string `toml:"-"`          // read from ProxyPath

	Prod_env bool

	// admin Access header
	PrivateKey string `toml:"private_key"`

	Testing struct {
		Enabled bool
		// delay before a simulated payment is published
		PaymentDelay time.Duration `toml:"payment_delay"`
	} `toml:"testing"`

	Postgres struct {
		Host     string
		User     string
		Password string
		Db_name  string
		Port     uint16
		Ssl_mode string
	}
	Nats struct {
		Servers     string   `toml:"-"`
		TomlServers []string `toml:"servers"`
	}
	Redis struct {
		Addr     string
		Password string
		Db       int
	} `toml:"redis"`
	Api struct {
		Ipv4      string
		Proto     string
		PublicURL string   `toml:"public_url"` // checkout links point here
		Origins   []string `toml:"origins"`    // dashboard origins for cors
	} `toml:"shark_web"`
	Billing struct {
		SecretKey     string        `toml:"-"`
		RateLimit     int           `toml:"rate_limit"`
		RateWindow    time.Duration `toml:"rate_window"`
		MinLinkAmount int64         `toml:"min_link_amount"`
		MaxBillAmount int64         `toml:"max_bill_amount"`
		Timezone      string        `toml:"timezone"`
	} `toml:"billing"`
	Plans    map[string]int64 `toml:"plans"` // plan name -> price in VND
	Firebase struct {
		ProjectID       string `toml:"project_id"`
		CredentialsFile string `toml:"credentials_file"`
	} `toml:"firebase"`
	Session struct {
		CookieName string        `toml:"cookie_name"`
		MaxAge     time.Duration `toml:"max_age"`
	} `toml:"session"`
	LogSink struct {
		Address string
	} `toml:"log_sink"`
}

// secrets that never live in the toml file
type Env struct {
	SecretKey           string `envconfig:"SHARK_CREDIT_SECRET_KEY"`
	AppURL              string `envconfig:"NEXT_PUBLIC_APP_URL"`
	FirebaseCredentials string `envconfig:"FIREBASE_CREDENTIALS"`
	RedisPassword       string `envconfig:"REDIS_PASSWORD"`
}

const (
	DefaultPublicURL  = "http://localhost:3001"
	DefaultCookieName = "session"
	DefaultTimezone   = "Asia/Ho_Chi_Minh"
)

var ErrTestingInProd = errors.New("cannot use testing in prod")

func ReadConfig() *Config {
	byteConfig, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	config, err := Parse(byteConfig)
	if err != nil {
		panic(err)
	}

	if secrets := os.Getenv("SECRETS"); secrets != "" {
		user, err := os.ReadFile(filepath.Join(secrets, "nats-user.txt"))
		if err != nil {
			panic(err)
		}
		pass, err := os.ReadFile(filepath.Join(secrets, "nats-password.txt"))
		if err != nil {
			panic(err)
		}
		config.Nats.Servers = NatsServers(config.Nats.TomlServers, strings.TrimSpace(string(user)), strings.TrimSpace(string(pass)))
	}

	if config.ProxyPath != "" {
		config.ProxyList, err = GetProxyList(config.ProxyPath)
		if err != nil {
			panic(err)
		}
	}

	return config
}

// Parse decodes the toml file, applies the env overlay and defaults.
func Parse(data []byte) (*Config, error) {
	var config Config
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, err
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}
	config.applyEnv(env)
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv(env Env) {
	c.Billing.SecretKey = env.SecretKey
	if env.AppURL != "" {
		c.Api.PublicURL = env.AppURL
	}
	if env.FirebaseCredentials != "" {
		c.Firebase.CredentialsFile = env.FirebaseCredentials
	}
	if env.RedisPassword != "" {
		c.Redis.Password = env.RedisPassword
	}
}

func (c *Config) applyDefaults() {
	if c.Api.PublicURL == "" {
		c.Api.PublicURL = DefaultPublicURL
	}
	c.Api.PublicURL = strings.TrimRight(c.Api.PublicURL, "/")
	if len(c.Api.Origins) == 0 {
		c.Api.Origins = []string{c.Api.PublicURL}
	}
	if c.Billing.RateLimit <= 0 {
		c.Billing.RateLimit = 200
	}
	if c.Billing.RateWindow <= 0 {
		c.Billing.RateWindow = 30 * time.Second
	}
	if c.Billing.MinLinkAmount <= 0 {
		c.Billing.MinLinkAmount = 1000
	}
	if c.Billing.MaxBillAmount <= 0 {
		c.Billing.MaxBillAmount = 1_000_000_000
	}
	if c.Billing.Timezone == "" {
		c.Billing.Timezone = DefaultTimezone
	}
	if c.Plans == nil {
		c.Plans = map[string]int64{}
	}
	if _, ok := c.Plans["PRO"]; !ok {
		c.Plans["PRO"] = 199000
	}
	if _, ok := c.Plans["ENTERPRISE"]; !ok {
		c.Plans["ENTERPRISE"] = 999000
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Session.MaxAge <= 0 {
		c.Session.MaxAge = 7 * 24 * time.Hour
	}
	if c.Nats.Servers == "" {
		c.Nats.Servers = strings.Join(c.Nats.TomlServers, ",")
	}
}

func (c *Config) Validate() error {
	if c.Prod_env && c.Testing.Enabled {
		return ErrTestingInProd
	}
	if _, err := time.LoadLocation(c.Billing.Timezone); err != nil {
		return fmt.Errorf("billing.timezone: %w", err)
	}
	if c.Billing.MaxBillAmount < c.Billing.MinLinkAmount {
		return fmt.Errorf("billing.max_bill_amount: below min_link_amount %d", c.Billing.MinLinkAmount)
	}
	for plan, price := range c.Plans {
		if price <= 0 {
			return fmt.Errorf("plans.%s: price must be positive", plan)
		}
	}
	return nil
}

// Location of the analytics day buckets. Validate has already checked the name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Billing.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NatsServers(servers []string, user, pass string) string {
	urls := make([]string, 0, len(servers))
	for _, x := range servers {
		urls = append(urls, fmt.Sprintf("nats://%s:%s@%s", user, pass, x))
	}
	return strings.Join(urls, ",")
}

// GetProxyList reads one proxy per line, blank lines are skipped.
func GetProxyList(path string) ([]string, error) {
	proxyList, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []string
	for _, line := range strings.Split(string(proxyList), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			list = append(list, line)
		}
	}
	return list, nil
}
