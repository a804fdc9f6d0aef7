package store

import (
	"database/sql"

	"notifysvc/internal/failure"
	"notifysvc/internal/logger"
	"notifysvc/internal/store/migrations"

	_ "github.com/lib/pq"
)

func InitializeDB(dbConnString string) *sql.DB {
	if dbConnString == "" {
		logger.Fatal().Msg(failure.EnvironmentDatabaseError.Message)
	}

	db, err := sql.Open("postgres", dbConnString)
	if err != nil {
		failure.DatabaseInitializationError.WithErr(err).LogFatal()
	}

	if err := db.Ping(); err != nil {
		failure.DatabaseInitializationError.WithErr(err).LogFatal()
	}

	if err := migrations.RunMigrations(db); err != nil {
		failure.DatabaseMigrationError.WithErr(err).LogFatal()
	}

	return db
}
