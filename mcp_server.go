package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"schemaplan/schema"
)

// StartMCPServer starts the MCP server for migration planning
func StartMCPServer() error {
	s := server.NewMCPServer(
		"schemaplan",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	planMigrationTool := mcp.NewTool("plan_migration",
		mcp.WithDescription("Compute an additive migration plan from a YAML schema model, optionally diffed against a live SQL Server database"),
		mcp.WithString("model_file",
			mcp.Required(),
			mcp.Description("Path to the YAML model file describing the target schema"),
		),
		mcp.WithString("connection_string",
			mcp.Description("Connection string of the database holding the observed schema (omit to plan against an empty schema)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'sql' for DDL statements, 'info' for readable steps (default)"),
			mcp.Enum("sql", "info"),
		),
	)

	s.AddTool(planMigrationTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handlePlanMigration(ctx, request)
	})

	renderSchemaTool := mcp.NewTool("render_schema",
		mcp.WithDescription("Render a YAML schema model as full SQL Server DDL (tables, foreign keys, indexes)"),
		mcp.WithString("model_file",
			mcp.Required(),
			mcp.Description("Path to the YAML model file"),
		),
	)

	s.AddTool(renderSchemaTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRenderSchema(ctx, request)
	})

	slog.Info("starting schemaplan mcp server")
	return server.ServeStdio(s)
}

// handlePlanMigration processes the plan_migration tool request
func handlePlanMigration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	modelFile, err := request.RequireString("model_file")
	if err != nil {
		return mcp.NewToolResultError("model_file parameter is required"), nil
	}

	conn := request.GetString("connection_string", "")
	format := request.GetString("format", "info")

	output, err := planMigrationCore(ctx, modelFile, conn, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("migration plan computed:\n\n%s", output)), nil
}

// planMigrationCore contains the core logic for plan computation, separated for testing
func planMigrationCore(ctx context.Context, modelFile, conn, format string) (string, error) {
	return planMigrationCoreWithDeps(ctx, modelFile, conn, format, NewYAMLModelLoader(), NewMSSQLIntrospector())
}

// planMigrationCoreWithDeps is the testable version with dependency injection
func planMigrationCoreWithDeps(_ context.Context, modelFile, conn, format string,
	modelLoader ModelLoader, introspector SchemaIntrospector) (string, error) {
	if _, err := os.Stat(modelFile); os.IsNotExist(err) {
		return "", fmt.Errorf("model file does not exist: %s", modelFile)
	}

	target, err := modelLoader.Load(modelFile)
	if err != nil {
		return "", fmt.Errorf("failed to load model: %v", err)
	}

	actual := schema.NewDatabaseModel()
	if conn != "" {
		db, err := sql.Open("sqlserver", conn)
		if err != nil {
			return "", fmt.Errorf("failed to open database connection: %v", err)
		}
		defer db.Close()

		actual, err = introspector.Introspect(db)
		if err != nil {
			return "", fmt.Errorf("failed to introspect schema: %v", err)
		}
	}

	plan := schema.Plan(target, actual)

	if format == "sql" {
		return schema.FormatPlanSQL(plan, target), nil
	}
	return schema.FormatPlanInfo(plan), nil
}

// handleRenderSchema processes the render_schema tool request
func handleRenderSchema(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	modelFile, err := request.RequireString("model_file")
	if err != nil {
		return mcp.NewToolResultError("model_file parameter is required"), nil
	}

	output, err := renderSchemaCore(modelFile)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("schema rendered successfully:\n\n%s", output)), nil
}

// renderSchemaCore contains the core logic for schema rendering, separated for testing
func renderSchemaCore(modelFile string) (string, error) {
	return renderSchemaCoreWithDeps(modelFile, NewYAMLModelLoader())
}

// renderSchemaCoreWithDeps is the testable version with dependency injection
func renderSchemaCoreWithDeps(modelFile string, modelLoader ModelLoader) (string, error) {
	if _, err := os.Stat(modelFile); os.IsNotExist(err) {
		return "", fmt.Errorf("model file does not exist: %s", modelFile)
	}

	target, err := modelLoader.Load(modelFile)
	if err != nil {
		return "", fmt.Errorf("failed to load model: %v", err)
	}

	return schema.FormatDatabaseSQL(target), nil
}
