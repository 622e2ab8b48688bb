package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"tasktracker/internal/config"
)

// ConnectDB opens the database selected by conf.StorageDriver. DB_DSN, when
// set, is used verbatim.
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	dsn, err := BuildDSN(conf)
	if err != nil {
		return nil, err
	}

	if conf.StorageDriver == config.StorageSQLite && conf.DbDSN == "" {
		if err := os.MkdirAll(filepath.Dir(conf.StoragePath), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect(conf.StorageDriver, dsn)
	if err != nil {
		return nil, err
	}
	if conf.StorageDriver == config.StorageSQLite {
		// sqlite serializes writers; one connection avoids "database is locked".
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

func BuildDSN(conf *config.Config) (string, error) {
	if conf.DbDSN != "" {
		return conf.DbDSN, nil
	}

	switch conf.StorageDriver {
	case config.StorageMySQL:
		params := conf.DbParams
		if params == "" {
			params = "parseTime=true"
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?%s",
			conf.DbUser,
			conf.DbPassword,
			conf.DbHost,
			conf.DbPort,
			conf.DbName,
			params,
		), nil
	case config.StoragePostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s",
			conf.DbHost,
			conf.DbPort,
			conf.DbUser,
			conf.DbPassword,
			conf.DbName,
		)
		if conf.DbParams != "" {
			dsn += " " + strings.ReplaceAll(conf.DbParams, "&", " ")
		}
		return dsn, nil
	case config.StorageSQLite:
		dsn := conf.StoragePath
		if conf.DbParams != "" {
			dsn += "?" + conf.DbParams
		}
		return dsn, nil
	}

	return "", fmt.Errorf("unsupported sql driver %q", conf.StorageDriver)
}
