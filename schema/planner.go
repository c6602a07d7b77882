package schema

import "log/slog"

// Action identifies the kind of DDL intent a migration step carries.
type Action string

const (
	ActionCreateTable   Action = "create_table"
	ActionAddColumn     Action = "add_column"
	ActionAddForeignKey Action = "add_foreign_key"
	// Reserved actions. The planner never emits these today; they keep the
	// plan shape stable for future phases (column alteration, index diffing).
	ActionAlterColumn Action = "alter_column"
	ActionAddIndex    Action = "add_index"
)

// MigrationStep is a single DDL intent. Which payload fields are set depends
// on the action: Fields for CreateTable and AddColumn, ForeignKey for
// AddForeignKey, Index for AddIndex.
type MigrationStep struct {
	Action     Action
	TableName  string
	Fields     []FieldModel
	ForeignKey *ForeignKeyModel
	Index      *IndexModel
}

// MigrationPlan is the ordered output of Plan. Extras lists structure found
// only in the actual schema; it is informational and no consumer acts on it.
type MigrationPlan struct {
	Steps  []MigrationStep
	Extras *ExtrasReport
}

// ExtrasReport records tables and columns present in the actual schema but
// absent from the target. The planner is additive-only, so nothing in here
// ever becomes a step.
type ExtrasReport struct {
	Tables  []string
	Columns map[string][]string
}

// Plan diffs the target schema against the actual one and returns an ordered,
// additive migration plan. Neither input is mutated; a nil actual is treated
// as an empty schema. The plan contains no drop or alter steps: structure
// that exists only in the actual schema is reported in Extras and otherwise
// ignored.
//
// Foreign keys of a newly created table immediately follow its CreateTable
// step, but no ordering is guaranteed relative to other tables created by the
// same plan. Consumers that apply plans must tolerate a foreign key arriving
// before its referenced table exists, e.g. by deferring constraint checks.
func Plan(target, actual *DatabaseModel) MigrationPlan {
	if actual == nil {
		actual = NewDatabaseModel()
	}

	var steps []MigrationStep

	// Phase 1: tables missing from the actual schema, each created with its
	// full field set and followed by its own foreign keys.
	for _, tt := range target.Tables() {
		if _, exists := actual.Table(tt.Name); exists {
			continue
		}
		slog.Debug("planning table creation", "table", tt.Name, "fields", len(tt.Fields))
		steps = append(steps, MigrationStep{
			Action:    ActionCreateTable,
			TableName: tt.Name,
			Fields:    tt.Fields,
		})
		for i := range tt.ForeignKeys {
			fk := tt.ForeignKeys[i]
			steps = append(steps, MigrationStep{
				Action:     ActionAddForeignKey,
				TableName:  tt.Name,
				ForeignKey: &fk,
			})
		}
	}

	// Phase 2: columns missing from tables that exist on both sides, one
	// step per field. Foreign keys implied by a new column are deliberately
	// left to phase 3.
	for _, tt := range target.Tables() {
		at, exists := actual.Table(tt.Name)
		if !exists {
			continue
		}
		for _, f := range tt.Fields {
			if at.HasField(f.Name) {
				continue
			}
			slog.Debug("planning column addition", "table", tt.Name, "column", f.Name)
			steps = append(steps, MigrationStep{
				Action:    ActionAddColumn,
				TableName: tt.Name,
				Fields:    []FieldModel{f},
			})
		}
	}

	// Phase 3: foreign keys missing from tables that exist on both sides.
	// The match key is the referenced table name only, not the full
	// (column, table, column) tuple: once the actual schema has any foreign
	// key to a given target table, further relationships to that table are
	// treated as satisfied.
	for _, tt := range target.Tables() {
		at, exists := actual.Table(tt.Name)
		if !exists {
			continue
		}
		satisfied := make(map[string]bool, len(at.ForeignKeys))
		for _, fk := range at.ForeignKeys {
			satisfied[normKey(fk.TargetTable)] = true
		}
		for i := range tt.ForeignKeys {
			fk := tt.ForeignKeys[i]
			if satisfied[normKey(fk.TargetTable)] {
				continue
			}
			slog.Debug("planning foreign key addition", "table", tt.Name, "target", fk.TargetTable)
			steps = append(steps, MigrationStep{
				Action:     ActionAddForeignKey,
				TableName:  tt.Name,
				ForeignKey: &fk,
			})
		}
	}

	plan := MigrationPlan{Steps: steps, Extras: collectExtras(target, actual)}
	slog.Info("migration plan computed", "steps", len(plan.Steps), "extraTables", len(plan.Extras.Tables))
	return plan
}

func collectExtras(target, actual *DatabaseModel) *ExtrasReport {
	extras := &ExtrasReport{Columns: make(map[string][]string)}
	for _, at := range actual.Tables() {
		tt, exists := target.Table(at.Name)
		if !exists {
			extras.Tables = append(extras.Tables, at.Name)
			continue
		}
		for _, f := range at.Fields {
			if !tt.HasField(f.Name) {
				extras.Columns[at.Name] = append(extras.Columns[at.Name], f.Name)
			}
		}
	}
	return extras
}
