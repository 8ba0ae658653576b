package database

import (
	"database/sql"
	"time"

	"codeforge/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"go.uber.org/zap"
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		zap.S().Fatalw("error opening database", "err", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = DB.Ping(); err != nil {
		zap.S().Fatalw("error connecting to database", "err", err)
	}

	zap.S().Info("connected to PostgreSQL database")
}

func Close() {
	if DB != nil {
		DB.Close()
		zap.S().Info("database connection closed")
	}
}
