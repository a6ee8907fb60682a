package database

import (
	"database/sql"
	"strings"
	"time"

	"formlink/config"

	_ "github.com/mattn/go-sqlite3"
)

func Open(cfg config.Config) (db *sql.DB, err error) {
	// foreign keys must hold on every pooled connection, so they go in the
	// DSN instead of a one-off PRAGMA
	dsn := cfg.DBUrl
	if !strings.Contains(dsn, "_foreign_keys=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}

	db, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return
	}

	return
}
