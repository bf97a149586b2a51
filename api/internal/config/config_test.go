package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
prod_env = false
private_key = "admin"

[testing]
enabled = true
payment_delay = "2s"

[postgres]
host = "localhost"
user = "shark"
db_name = "sharkpay"
port = 5432
ssl_mode = "disable"

[nats]
servers = ["localhost:4222", "localhost:4223"]

[shark_web]
ipv4 = "0.0.0.0:8080"
public_url = "https://pay.example.com/"

[billing]
rate_limit = 10
rate_window = "1m"

[plans]
PRO = 250000
`

func TestParse(t *testing.T) {
	t.Setenv("SHARK_CREDIT_SECRET_KEY", "secret")
	t.Setenv("NEXT_PUBLIC_APP_URL", "")
	t.Setenv("REDIS_PASSWORD", "redispass")

	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	if c.Billing.SecretKey != "secret" {
		t.Errorf("secret key %q", c.Billing.SecretKey)
	}
	if c.Api.PublicURL != "https://pay.example.com" {
		t.Errorf("public url %q", c.Api.PublicURL)
	}
	if c.Redis.Password != "redispass" {
		t.Errorf("redis password %q", c.Redis.Password)
	}
	if c.Billing.RateLimit != 10 || c.Billing.RateWindow != time.Minute {
		t.Errorf("rate limit %d/%s", c.Billing.RateLimit, c.Billing.RateWindow)
	}
	if c.Plans["PRO"] != 250000 || c.Plans["ENTERPRISE"] != 999000 {
		t.Errorf("plans %v", c.Plans)
	}
	if c.Testing.PaymentDelay != 2*time.Second {
		t.Errorf("payment delay %s", c.Testing.PaymentDelay)
	}
	if c.Session.MaxAge != 7*24*time.Hour || c.Session.CookieName != "session" {
		t.Errorf("session %+v", c.Session)
	}
	if c.Nats.Servers != "localhost:4222,localhost:4223" {
		t.Errorf("nats servers %q", c.Nats.Servers)
	}
	if c.Location().String() != DefaultTimezone {
		t.Errorf("location %s", c.Location())
	}
}

func TestParseEnvOverridesPublicURL(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_APP_URL", "http://localhost:9999")

	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if c.Api.PublicURL != "http://localhost:9999" {
		t.Fatalf("public url %q", c.Api.PublicURL)
	}
}

func TestValidate(t *testing.T) {
	_, err := Parse([]byte("prod_env = true\n[testing]\nenabled = true\n"))
	if !errors.Is(err, ErrTestingInProd) {
		t.Fatalf("got %v", err)
	}

	if _, err := Parse([]byte("[billing]\ntimezone = \"Mars/Olympus\"\n")); err == nil {
		t.Fatal("bad timezone accepted")
	}

	if _, err := Parse([]byte("[plans]\nPRO = -1\n")); err == nil {
		t.Fatal("negative price accepted")
	}

	if _, err := Parse([]byte("[billing]\nmin_link_amount = 5000\nmax_bill_amount = 100\n")); err == nil {
		t.Fatal("max_bill_amount below min_link_amount accepted")
	}

	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Billing.MaxBillAmount != 1_000_000_000 {
		t.Fatalf("default max_bill_amount: %d", cfg.Billing.MaxBillAmount)
	}
}

func TestGetProxyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies.txt")
	if err := os.WriteFile(path, []byte("user:pass@1.1.1.1:1080\n\n  2.2.2.2:1080 \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	list, err := GetProxyList(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[1] != "2.2.2.2:1080" {
		t.Fatalf("list %q", list)
	}

	if _, err := GetProxyList(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestNatsServers(t *testing.T) {
	got := NatsServers([]string{"a:4222", "b:4222"}, "u", "p")
	if got != "nats://u:p@a:4222,nats://u:p@b:4222" {
		t.Fatal(got)
	}
}
