package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationTable = "goose_db_version"

// Commands lists the goose commands Migrate accepts.
var Commands = []string{"up", "down", "status", "reset"}

// Migrate runs a goose command against the embedded migrations using the
// pgx database/sql driver.
func Migrate(ctx context.Context, dsn, command string) error {
	run, ok := commandFuncs[command]
	if !ok {
		return fmt.Errorf("unknown migration command %q (want one of %v)", command, Commands)
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(Migrations)
	goose.SetTableName(migrationTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := run(ctx, sqlDB, MigrationsDir); err != nil {
		return fmt.Errorf("migrations %s: %w", command, err)
	}
	return nil
}

var commandFuncs = map[string]func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error{
	"up":     goose.UpContext,
	"down":   goose.DownContext,
	"status": goose.StatusContext,
	"reset":  goose.ResetContext,
}
