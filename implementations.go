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

	"schemaplan/introspect"
	"schemaplan/loader"
	"schemaplan/schema"
)

type SQLServerManager struct {
	container testcontainers.Container
	db        *sql.DB
	connStr   string
}

func NewSQLServerManager() DatabaseManager {
	return &SQLServerManager{}
}

func (m *SQLServerManager) Setup(ctx context.Context) error {
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
		return fmt.Errorf("failed to start container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connection string: %w", err)
	}
	slog.Debug("got database connection string", "connStr", connStr)

	db, err := sql.Open("sqlserver", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m.container = container
	m.db = db
	m.connStr = connStr

	slog.Info("sql server container ready")
	return nil
}

func (m *SQLServerManager) Close(ctx context.Context) error {
	if m.db != nil {
		m.db.Close()
	}
	if m.container != nil {
		return m.container.Terminate(ctx)
	}
	return nil
}

func (m *SQLServerManager) Apply(ddl string) error {
	slog.Debug("applying ddl batch", "bytes", len(ddl))

	if _, err := m.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to execute ddl: %w", err)
	}

	slog.Info("ddl batch applied successfully")
	return nil
}

func (m *SQLServerManager) GetDB() *sql.DB {
	return m.db
}

func (m *SQLServerManager) GetConnectionString() string {
	return m.connStr
}

type YAMLModelLoader struct{}

func NewYAMLModelLoader() ModelLoader {
	return &YAMLModelLoader{}
}

func (l *YAMLModelLoader) Load(path string) (*schema.DatabaseModel, error) {
	return loader.Load(path)
}

type MSSQLIntrospector struct{}

func NewMSSQLIntrospector() SchemaIntrospector {
	return &MSSQLIntrospector{}
}

func (i *MSSQLIntrospector) Introspect(db *sql.DB) (*schema.DatabaseModel, error) {
	return introspect.Introspect(db)
}
