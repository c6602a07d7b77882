package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mssql"
	"github.com/testcontainers/testcontainers-go/wait"
)

type Database struct {
	Container testcontainers.Container
	DB        *sql.DB
	ConnStr   string
}

func SetupSQLServer(ctx context.Context) (*Database, error) {
	slog.Debug("starting sql server container")
	container, err := mssql.Run(ctx,
		"mcr.microsoft.com/mssql/server:2022-latest",
		mssql.WithAcceptEULA(),
		mssql.WithPassword("Strong@Passw0rd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Recovery is complete.").
				WithStartupTimeout(5*time.Minute)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	slog.Debug("got database connection string", "connStr", connStr)

	db, err := sql.Open("sqlserver", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("sql server container ready")
	return &Database{
		Container: container,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

func (d *Database) Close(ctx context.Context) error {
	if d.DB != nil {
		d.DB.Close()
	}
	if d.Container != nil {
		return d.Container.Terminate(ctx)
	}
	return nil
}

func (d *Database) Apply(ddl string) error {
	slog.Debug("applying ddl batch", "bytes", len(ddl))

	if _, err := d.DB.Exec(ddl); err != nil {
		return fmt.Errorf("failed to execute ddl: %w", err)
	}

	slog.Info("ddl batch applied successfully")
	return nil
}
