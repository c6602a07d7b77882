package main

import (
	"context"
	"database/sql"

	"schemaplan/schema"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// ModelLoader handles reading target schema models from model files
type ModelLoader interface {
	// Load parses a model file into a database model
	Load(path string) (*schema.DatabaseModel, error)
}

// SchemaIntrospector handles reading the observed schema from a database
type SchemaIntrospector interface {
	// Introspect reads tables, columns and foreign keys from the database
	Introspect(db *sql.DB) (*schema.DatabaseModel, error)
}

// DatabaseManager handles database lifecycle and operations
type DatabaseManager interface {
	// Setup creates and initializes the database connection
	Setup(ctx context.Context) error
	// Close cleans up database resources
	Close(ctx context.Context) error
	// Apply executes the provided DDL batch
	Apply(ddl string) error
	// GetDB returns the underlying database connection
	GetDB() *sql.DB
	// GetConnectionString returns the connection string of the managed database
	GetConnectionString() string
}
