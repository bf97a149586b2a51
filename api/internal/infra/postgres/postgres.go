package postgres

import (
	"fmt"

	"sharkpay/api/internal/config"
	"sharkpay/api/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table owned by the gateway.
var Models = []any{
	&domain.Merchants{},
	&domain.PaymentLinks{},
	&domain.Invoices{},
	&domain.Transactions{},
	&domain.Notifications{},
	&domain.Events{},
}

func DSN(config *config.Config) string {
	dbConfig := config.Postgres
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s", dbConfig.Host, dbConfig.User, dbConfig.Password, dbConfig.Db_name, dbConfig.Port, dbConfig.Ssl_mode)
}

func Init(config *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(DSN(config)), GormConfig())
	if err != nil {
		panic("Gorm error: " + err.Error())
	}

	if err := Migrate(db); err != nil {
		panic("Auto migrate error: " + err.Error())
	}

	return db
}

func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(Models...)
}
