package main

import (
	"context"
	"database/sql"
	"fmt"

	"schemaplan/schema"
)

// MockDatabaseManager is a mock implementation of DatabaseManager for testing
type MockDatabaseManager struct {
	SetupFunc func(ctx context.Context) error
	CloseFunc func(ctx context.Context) error
	ApplyFunc func(ddl string) error
	GetDBFunc func() *sql.DB

	// Track calls for verification
	SetupCalled bool
	CloseCalled bool
	ApplyCalled bool
	AppliedDDL  string
}

func (m *MockDatabaseManager) Setup(ctx context.Context) error {
	m.SetupCalled = true
	if m.SetupFunc != nil {
		return m.SetupFunc(ctx)
	}
	return nil
}

func (m *MockDatabaseManager) Close(ctx context.Context) error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

func (m *MockDatabaseManager) Apply(ddl string) error {
	m.ApplyCalled = true
	m.AppliedDDL = ddl
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ddl)
	}
	return nil
}

func (m *MockDatabaseManager) GetDB() *sql.DB {
	if m.GetDBFunc != nil {
		return m.GetDBFunc()
	}
	return nil
}

func (m *MockDatabaseManager) GetConnectionString() string {
	return "test://connection"
}

// MockModelLoader is a mock implementation of ModelLoader for testing
type MockModelLoader struct {
	LoadFunc func(path string) (*schema.DatabaseModel, error)
}

func (m *MockModelLoader) Load(path string) (*schema.DatabaseModel, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(path)
	}
	return schema.NewDatabaseModel(), nil
}

// MockSchemaIntrospector is a mock implementation of SchemaIntrospector for testing
type MockSchemaIntrospector struct {
	IntrospectFunc func(db *sql.DB) (*schema.DatabaseModel, error)
}

func (m *MockSchemaIntrospector) Introspect(db *sql.DB) (*schema.DatabaseModel, error) {
	if m.IntrospectFunc != nil {
		return m.IntrospectFunc(db)
	}
	return schema.NewDatabaseModel(), nil
}

// TestDatabase is a helper for creating test database instances
type TestDatabase struct {
	*Database
}

// NewTestDatabase creates a test database without requiring Docker
func NewTestDatabase() *TestDatabase {
	return &TestDatabase{
		Database: &Database{
			Container: nil,
			DB:        nil,
			ConnStr:   "test://connection",
		},
	}
}

// SimulateError simulates various database errors for testing
func SimulateError(errType string) error {
	switch errType {
	case "connection":
		return fmt.Errorf("connection refused")
	case "syntax":
		return fmt.Errorf("syntax error near 'INVALID'")
	case "permission":
		return fmt.Errorf("permission denied")
	default:
		return fmt.Errorf("simulated error: %s", errType)
	}
}

// buildModel assembles a DatabaseModel from table declarations, failing the
// build on declaration errors so tests can use it inline.
func buildModel(tables ...*schema.TableModel) *schema.DatabaseModel {
	db := schema.NewDatabaseModel()
	for _, t := range tables {
		if err := db.AddTable(t); err != nil {
			panic(err)
		}
	}
	return db
}
