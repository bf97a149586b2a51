package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sharkpay/api/internal/config"
)

func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped", fmt.Errorf("create link: %w", gorm.ErrDuplicatedKey), true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg fk", &pgconn.PgError{Code: "23503"}, false},
		{"other", errors.New("conn reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.err); got != tt.want {
				t.Fatalf("got %v", got)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if IsNotFound(nil) || IsNotFound(errors.New("x")) {
		t.Fatal("false positive")
	}
	if !IsNotFound(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)) {
		t.Fatal("wrapped not found missed")
	}
}

func TestDSN(t *testing.T) {
	c := &config.Config{}
	c.Postgres.Host = "db"
	c.Postgres.User = "u"
	c.Postgres.Password = "p"
	c.Postgres.Db_name = "sharkpay"
	c.Postgres.Port = 5432
	c.Postgres.Ssl_mode = "disable"

	want := "host=db user=u password=p dbname=sharkpay port=5432 sslmode=disable"
	if got := DSN(c); got != want {
		t.Fatalf("got %q", got)
	}
}
