package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaplan/schema"
)

const testModelYAML = `
mixins:
  - name: Audit
    fields:
      - name: CreatedAt
        type: datetime

tables:
  - name: Client
    mixins: [Audit]
    fields:
      - name: ClientID
        type: int32
        primaryKey: true
        identity: true
      - name: Name
        type: unicodestring
        precision: 200
      - name: Email
        type: asciistring
        nullable: true
    indexes:
      - fields: [Email]
        unique: true

  - name: Order
    fields:
      - name: OrderID
        type: int32
        primaryKey: true
        identity: true
      - name: ClientID
        type: int32
      - name: Total
        type: money
    foreignKeys:
      - column: ClientID
        targetTable: Client
        targetColumn: ClientID
    indexes:
      - fields: [Client]
`

func writeTestModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testModelYAML), 0644))
	return path
}

func TestModelToPlan(t *testing.T) {
	if !isDockerAvailable() {
		t.Skip("docker not available, skipping model to plan test")
	}

	modelFile := writeTestModel(t)

	target, err := NewYAMLModelLoader().Load(modelFile)
	require.NoError(t, err)
	assert.Len(t, target.Tables(), 2)

	plan := PlanMigration(target, schema.NewDatabaseModel())
	require.NotEmpty(t, plan.Steps)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := SetupSQLServer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := db.Close(ctx); err != nil {
			t.Logf("failed to cleanup database: %v", err)
		}
	}()

	ddl := FormatPlanAsSQL(reorderForApply(plan), target)
	require.NoError(t, db.Apply(ddl))

	extracted, err := NewMSSQLIntrospector().Introspect(db.DB)
	require.NoError(t, err)
	assert.Len(t, extracted.Tables(), 2)

	client, ok := extracted.Table("Client")
	require.True(t, ok, "Client table not found after apply")
	assert.GreaterOrEqual(t, len(client.Fields), 4)

	hasPrimaryKey := false
	for _, f := range client.Fields {
		if f.IsPrimaryKey {
			hasPrimaryKey = true
			break
		}
	}
	assert.True(t, hasPrimaryKey, "Client table should have a primary key")

	// Re-planning against the freshly applied schema must be a no-op.
	replan := PlanMigration(target, extracted)
	assert.Empty(t, replan.Steps)
}

func TestFormatPlanOutputModes(t *testing.T) {
	target, err := NewYAMLModelLoader().Load(writeTestModel(t))
	require.NoError(t, err)

	plan := PlanMigration(target, schema.NewDatabaseModel())

	infoOutput := FormatPlan(plan)
	assert.NotEmpty(t, infoOutput)

	sqlOutput := FormatPlanAsSQL(plan, target)
	assert.NotEmpty(t, sqlOutput)
	assert.NotEqual(t, infoOutput, sqlOutput)
}

func TestRun(t *testing.T) {
	t.Run("run_function_help", func(t *testing.T) {
		resetCommand()
		cmd := rootCmd
		cmd.SetArgs([]string{"--help"})
		err := cmd.Execute()
		t.Logf("help command result: %v", err)
	})

	t.Run("run_function_no_args", func(t *testing.T) {
		resetCommand()
		cmd := rootCmd
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		assert.Error(t, err)
	})
}

func TestProcessPlanUnit(t *testing.T) {
	t.Run("model_file_does_not_exist", func(t *testing.T) {
		mockLoader := &MockModelLoader{}
		mockIntrospector := &MockSchemaIntrospector{}
		mockDB := &MockDatabaseManager{}

		err := processPlan("/non/existent/model.yaml", "", mockLoader, mockIntrospector, mockDB)
		if err == nil {
			t.Fatal("expected error for non-existent model file")
		}
		if err.Error() != "model file does not exist: /non/existent/model.yaml" {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("model_load_error", func(t *testing.T) {
		mockLoader := &MockModelLoader{
			LoadFunc: func(path string) (*schema.DatabaseModel, error) {
				return nil, fmt.Errorf("failed to unmarshal model")
			},
		}
		mockIntrospector := &MockSchemaIntrospector{}
		mockDB := &MockDatabaseManager{}

		err := processPlan(writeTestModel(t), "", mockLoader, mockIntrospector, mockDB)
		if err == nil {
			t.Fatal("expected error when model loading fails")
		}
		assert.Contains(t, err.Error(), "failed to load model")
	})

	t.Run("successful_execution_info_mode", func(t *testing.T) {
		originalEmitMode := emitMode
		originalVerifyMode := verifyMode
		emitMode = false
		verifyMode = false
		defer func() {
			emitMode = originalEmitMode
			verifyMode = originalVerifyMode
		}()

		mockLoader := &MockModelLoader{
			LoadFunc: func(path string) (*schema.DatabaseModel, error) {
				return NewYAMLModelLoader().Load(path)
			},
		}
		mockIntrospector := &MockSchemaIntrospector{}
		mockDB := &MockDatabaseManager{}

		err := processPlan(writeTestModel(t), "", mockLoader, mockIntrospector, mockDB)
		require.NoError(t, err)
		assert.False(t, mockDB.SetupCalled, "verify mode off, no database expected")
	})

	t.Run("verify_mode_applies_plan", func(t *testing.T) {
		originalEmitMode := emitMode
		originalVerifyMode := verifyMode
		emitMode = false
		verifyMode = true
		defer func() {
			emitMode = originalEmitMode
			verifyMode = originalVerifyMode
		}()

		mockLoader := &MockModelLoader{
			LoadFunc: func(path string) (*schema.DatabaseModel, error) {
				return NewYAMLModelLoader().Load(path)
			},
		}
		mockIntrospector := &MockSchemaIntrospector{}
		mockDB := &MockDatabaseManager{}

		err := processPlan(writeTestModel(t), "", mockLoader, mockIntrospector, mockDB)
		require.NoError(t, err)
		assert.True(t, mockDB.SetupCalled)
		assert.True(t, mockDB.ApplyCalled)
		assert.True(t, mockDB.CloseCalled)
		assert.Contains(t, mockDB.AppliedDDL, "create table Client (")
		assert.Contains(t, mockDB.AppliedDDL, "create table Order (")
		assert.Contains(t, mockDB.AppliedDDL, "FK_Order_ClientID")

		// Both creates must precede the foreign key in the applied DDL.
		fkPos := strings.Index(mockDB.AppliedDDL, "FK_Order_ClientID")
		assert.Less(t, strings.Index(mockDB.AppliedDDL, "create table Client ("), fkPos)
		assert.Less(t, strings.Index(mockDB.AppliedDDL, "create table Order ("), fkPos)
	})

	t.Run("verify_setup_error", func(t *testing.T) {
		originalVerifyMode := verifyMode
		verifyMode = true
		defer func() { verifyMode = originalVerifyMode }()

		mockLoader := &MockModelLoader{
			LoadFunc: func(path string) (*schema.DatabaseModel, error) {
				return NewYAMLModelLoader().Load(path)
			},
		}
		mockIntrospector := &MockSchemaIntrospector{}
		mockDB := &MockDatabaseManager{
			SetupFunc: func(ctx context.Context) error {
				return fmt.Errorf("failed to start container")
			},
		}

		err := processPlan(writeTestModel(t), "", mockLoader, mockIntrospector, mockDB)
		if err == nil {
			t.Fatal("expected error when database setup fails")
		}
		if !mockDB.SetupCalled {
			t.Error("expected Setup to be called")
		}
		if mockDB.ApplyCalled {
			t.Error("Apply must not run after a setup failure")
		}
	})

	t.Run("verify_apply_error", func(t *testing.T) {
		originalVerifyMode := verifyMode
		verifyMode = true
		defer func() { verifyMode = originalVerifyMode }()

		mockLoader := &MockModelLoader{
			LoadFunc: func(path string) (*schema.DatabaseModel, error) {
				return NewYAMLModelLoader().Load(path)
			},
		}
		mockIntrospector := &MockSchemaIntrospector{}
		mockDB := &MockDatabaseManager{
			ApplyFunc: func(ddl string) error {
				return SimulateError("syntax")
			},
		}

		err := processPlan(writeTestModel(t), "", mockLoader, mockIntrospector, mockDB)
		if err == nil {
			t.Fatal("expected error when apply fails")
		}
		if !mockDB.CloseCalled {
			t.Error("expected Close to be called even on error")
		}
	})

	t.Run("successful_execution_emit_mode", func(t *testing.T) {
		originalEmitMode := emitMode
		originalVerifyMode := verifyMode
		emitMode = true
		verifyMode = false
		defer func() {
			emitMode = originalEmitMode
			verifyMode = originalVerifyMode
		}()

		mockLoader := &MockModelLoader{
			LoadFunc: func(path string) (*schema.DatabaseModel, error) {
				return NewYAMLModelLoader().Load(path)
			},
		}
		mockIntrospector := &MockSchemaIntrospector{}
		mockDB := &MockDatabaseManager{}

		err := processPlan(writeTestModel(t), "", mockLoader, mockIntrospector, mockDB)
		require.NoError(t, err)
	})
}

func TestReorderForApply(t *testing.T) {
	plan := schema.MigrationPlan{Steps: []schema.MigrationStep{
		{Action: schema.ActionAddColumn, TableName: "Client"},
		{Action: schema.ActionCreateTable, TableName: "Order"},
		{Action: schema.ActionAddForeignKey, TableName: "Order"},
		{Action: schema.ActionCreateTable, TableName: "Invoice"},
	}}

	reordered := reorderForApply(plan)
	require.Len(t, reordered.Steps, 4)
	assert.Equal(t, schema.ActionCreateTable, reordered.Steps[0].Action)
	assert.Equal(t, "Order", reordered.Steps[0].TableName)
	assert.Equal(t, schema.ActionCreateTable, reordered.Steps[1].Action)
	assert.Equal(t, "Invoice", reordered.Steps[1].TableName)
	assert.Equal(t, schema.ActionAddColumn, reordered.Steps[2].Action)
	assert.Equal(t, schema.ActionAddForeignKey, reordered.Steps[3].Action)
}

func resetCommand() {
	emitMode = false
	verifyMode = false
	mcpMode = false
	connString = ""
	rootCmd.ResetFlags()
	rootCmd.Flags().BoolVarP(&emitMode, "emit", "e", false, "Emit plan as SQL DDL statements")
	rootCmd.Flags().BoolVar(&verifyMode, "verify", false, "Apply the plan to a disposable SQL Server container")
	rootCmd.Flags().BoolVar(&mcpMode, "mcp", false, "Run as Model Context Protocol server")
	rootCmd.Flags().StringVar(&connString, "conn", "", "Connection string of the database to diff against")
}

func isDockerAvailable() bool {
	return true
}
