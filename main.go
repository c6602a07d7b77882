package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"schemaplan/schema"
)

var (
	emitMode   bool
	verifyMode bool
	mcpMode    bool
	connString string
)

var rootCmd = &cobra.Command{
	Use:   "schemaplan [model-file]",
	Short: "Compute an additive migration plan from a schema model",
	Long: `schemaplan takes a YAML model file describing the desired database schema,
compares it against an observed SQL Server schema, and computes an ordered,
additive migration plan (create table, add column, add foreign key).

Without --conn the observed schema is empty, so the plan creates everything.

Modes:
  info mode (default): Shows human-readable plan steps
  emit mode (-e): Outputs SQL DDL statements
  verify mode (--verify): Applies the emitted DDL to a disposable SQL Server container
  mcp mode (--mcp): Run as Model Context Protocol server`,
	Args: func(cmd *cobra.Command, args []string) error {
		if mcpMode {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: runSchemaplan,
}

func main() {
	if err := run(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	if rootCmd.Flags().Lookup("emit") == nil {
		rootCmd.Flags().BoolVarP(&emitMode, "emit", "e", false, "Emit plan as SQL DDL statements")
	}
	if rootCmd.Flags().Lookup("verify") == nil {
		rootCmd.Flags().BoolVar(&verifyMode, "verify", false, "Apply the plan to a disposable SQL Server container")
	}
	if rootCmd.Flags().Lookup("mcp") == nil {
		rootCmd.Flags().BoolVar(&mcpMode, "mcp", false, "Run as Model Context Protocol server")
	}
	if rootCmd.Flags().Lookup("conn") == nil {
		rootCmd.Flags().StringVar(&connString, "conn", "", "Connection string of the database to diff against")
	}

	return rootCmd.Execute()
}

func runSchemaplan(cmd *cobra.Command, args []string) {
	if mcpMode {
		slog.Info("starting mcp server")
		if err := StartMCPServer(); err != nil {
			slog.Error("failed to start mcp server", "error", err)
			os.Exit(1)
		}
		return
	}

	modelFile := args[0]

	modelLoader := NewYAMLModelLoader()
	introspector := NewMSSQLIntrospector()
	dbManager := NewSQLServerManager()

	if err := processPlan(modelFile, connString, modelLoader, introspector, dbManager); err != nil {
		slog.Error("failed to process plan", "error", err)
		os.Exit(1)
	}
}

func processPlan(modelFile, conn string, modelLoader ModelLoader, introspector SchemaIntrospector, dbManager DatabaseManager) error {
	slog.Info("processing model file", "file", modelFile)

	if _, err := os.Stat(modelFile); os.IsNotExist(err) {
		return fmt.Errorf("model file does not exist: %s", modelFile)
	}

	ctx := context.Background()

	target, err := modelLoader.Load(modelFile)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	actual := schema.NewDatabaseModel()
	if conn != "" {
		slog.Info("introspecting observed schema")
		db, err := sql.Open("sqlserver", conn)
		if err != nil {
			return fmt.Errorf("failed to open database connection: %w", err)
		}
		defer db.Close()

		actual, err = introspector.Introspect(db)
		if err != nil {
			return fmt.Errorf("failed to introspect schema: %w", err)
		}
	}

	slog.Info("computing migration plan")
	plan := PlanMigration(target, actual)

	if emitMode {
		fmt.Print(FormatPlanAsSQL(plan, target))
	} else {
		fmt.Println("\n=== MIGRATION PLAN ===")
		fmt.Print(FormatPlan(plan))
	}

	if verifyMode {
		slog.Info("verifying plan against disposable database")
		if err := verifyPlan(ctx, plan, target, dbManager); err != nil {
			return fmt.Errorf("failed to verify plan: %w", err)
		}
		slog.Info("plan verified successfully")
	}

	return nil
}

// verifyPlan applies the plan's DDL to a disposable SQL Server container.
// Create-table steps go first: the plan does not order a table's foreign
// keys after the creation of other new tables they reference, so a naive
// step-order apply could fail on interdependent tables.
func verifyPlan(ctx context.Context, plan schema.MigrationPlan, target *schema.DatabaseModel, dbManager DatabaseManager) error {
	if err := dbManager.Setup(ctx); err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer func() {
		if err := dbManager.Close(ctx); err != nil {
			slog.Error("failed to cleanup", "error", err)
		}
	}()

	ddl := FormatPlanAsSQL(reorderForApply(plan), target)
	if err := dbManager.Apply(ddl); err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	return nil
}

// reorderForApply moves all create-table steps ahead of every other step,
// keeping relative order within each group.
func reorderForApply(plan schema.MigrationPlan) schema.MigrationPlan {
	var creates, rest []schema.MigrationStep
	for _, step := range plan.Steps {
		if step.Action == schema.ActionCreateTable {
			creates = append(creates, step)
		} else {
			rest = append(rest, step)
		}
	}
	return schema.MigrationPlan{Steps: append(creates, rest...), Extras: plan.Extras}
}
