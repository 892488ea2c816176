package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const mysqlParamStr string = "?parseTime=true"

// Connect opens the configured database. SQLite is the primary store and
// gets its schema applied on connect; MySQL is selectable for deployments
// that already run one and is expected to be migrated externally.
func Connect(ctx context.Context, driver, uri string) (*sql.DB, sqlbuilder.Flavor, error) {
	switch driver {
	case "sqlite":
		db, err := sql.Open("sqlite3", uri)
		if err != nil {
			return nil, 0, fmt.Errorf("opening SQLite DB: %w", err)
		}

		// SQLite serializes writes; a single connection avoids
		// SQLITE_BUSY under concurrent handlers.
		db.SetMaxOpenConns(1)

		if err := db.PingContext(ctx); err != nil {
			return nil, 0, fmt.Errorf("checking SQLite DB connection: %w", err)
		}

		if _, err := db.ExecContext(ctx, schema); err != nil {
			return nil, 0, fmt.Errorf("applying SQLite schema: %w", err)
		}

		return db, sqlbuilder.SQLite, nil

	case "mysql":
		db, err := sql.Open("mysql", uri+mysqlParamStr)
		if err != nil {
			return nil, 0, fmt.Errorf("connecting to MySQL DB: %w", err)
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)

		if err := db.PingContext(ctx); err != nil {
			return nil, 0, fmt.Errorf("checking MySQL DB connection: %w", err)
		}

		return db, sqlbuilder.MySQL, nil

	default:
		return nil, 0, fmt.Errorf("unknown database driver [%s]", driver)
	}
}
