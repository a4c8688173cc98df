package db

import "embed"

// Migrations holds the goose SQL migrations applied by Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads from.
const MigrationsDir = "migrations"
