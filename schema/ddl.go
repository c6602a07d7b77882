package schema

import (
	"fmt"
	"strings"
)

// FormatPlanInfo formats a migration plan as human-readable text.
func FormatPlanInfo(plan MigrationPlan) string {
	var sb strings.Builder

	for _, step := range plan.Steps {
		switch step.Action {
		case ActionCreateTable:
			sb.WriteString(fmt.Sprintf("Create table: %s\n", step.TableName))
			for _, f := range step.Fields {
				sb.WriteString(fmt.Sprintf("  - %s %s %s%s\n",
					f.Name, RenderFieldType(f), nullability(f), pkMarker(f)))
			}
		case ActionAddColumn:
			for _, f := range step.Fields {
				sb.WriteString(fmt.Sprintf("Add column: %s.%s %s %s\n",
					step.TableName, f.Name, RenderFieldType(f), nullability(f)))
			}
		case ActionAddForeignKey:
			fk := step.ForeignKey
			sb.WriteString(fmt.Sprintf("Add foreign key: %s.%s -> %s.%s\n",
				step.TableName, fk.ColumnName, fk.TargetTable, fk.TargetColumnName))
		case ActionAddIndex:
			sb.WriteString(fmt.Sprintf("Add index: %s (%s)\n",
				step.TableName, strings.Join(step.Index.Fields, ", ")))
		}
	}

	return sb.String()
}

// FormatPlanSQL formats a migration plan as executable DDL statements.
// The target model supplies foreign-key context for resolving index field
// names; a step whose table is not in the model renders its index fields
// unresolved.
func FormatPlanSQL(plan MigrationPlan, target *DatabaseModel) string {
	var sb strings.Builder

	for _, step := range plan.Steps {
		switch step.Action {
		case ActionCreateTable:
			writeCreateTable(&sb, step.TableName, step.Fields)
		case ActionAddColumn:
			for _, f := range step.Fields {
				sb.WriteString(fmt.Sprintf("alter table %s add %s %s %s;\n",
					step.TableName, f.Name, strings.ToLower(RenderFieldType(f)), nullability(f)))
			}
		case ActionAddForeignKey:
			writeAddForeignKey(&sb, step.TableName, *step.ForeignKey)
		case ActionAddIndex:
			var table *TableModel
			if target != nil {
				table, _ = target.Table(step.TableName)
			}
			writeCreateIndex(&sb, step.TableName, *step.Index, table)
		}
	}

	return sb.String()
}

// FormatDatabaseSQL formats a full database model as DDL: one create table
// per table, then its foreign key constraints, then its indexes with
// generated names and resolved field lists.
func FormatDatabaseSQL(db *DatabaseModel) string {
	var sb strings.Builder

	for _, table := range db.Tables() {
		writeCreateTable(&sb, table.Name, table.Fields)
		for _, fk := range table.ForeignKeys {
			writeAddForeignKey(&sb, table.Name, fk)
		}
		for _, ix := range table.Indexes {
			writeCreateIndex(&sb, table.Name, ix, table)
		}
		if len(table.ForeignKeys) > 0 || len(table.Indexes) > 0 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeCreateTable(sb *strings.Builder, tableName string, fields []FieldModel) {
	sb.WriteString(fmt.Sprintf("create table %s (\n", tableName))

	var columnDefs []string
	var primaryKeys []string

	for _, f := range fields {
		var colDef strings.Builder
		colDef.WriteString(fmt.Sprintf("    %s %s", f.Name, strings.ToLower(RenderFieldType(f))))

		if f.IsIdentity {
			colDef.WriteString(" identity(1,1)")
		}
		if !f.IsNullable {
			colDef.WriteString(" not null")
		}

		columnDefs = append(columnDefs, colDef.String())

		if f.IsPrimaryKey {
			primaryKeys = append(primaryKeys, f.Name)
		}
	}

	sb.WriteString(strings.Join(columnDefs, ",\n"))

	if len(primaryKeys) > 0 {
		sb.WriteString(fmt.Sprintf(",\n    primary key (%s)", strings.Join(primaryKeys, ", ")))
	}

	sb.WriteString("\n);\n\n")
}

func writeAddForeignKey(sb *strings.Builder, tableName string, fk ForeignKeyModel) {
	constraint := fmt.Sprintf("FK_%s_%s", tableName, fk.ColumnName)
	sb.WriteString(fmt.Sprintf("alter table %s add constraint %s foreign key (%s) references %s (%s);\n",
		tableName, constraint, fk.ColumnName, fk.TargetTable, fk.TargetColumnName))
}

func writeCreateIndex(sb *strings.Builder, tableName string, ix IndexModel, table *TableModel) {
	columns := ResolveIndexFields(ix.Fields, table)
	name := GenerateIndexName(ix.IsUnique, tableName, columns)

	unique := ""
	if ix.IsUnique {
		unique = "unique "
	}
	clustered := ""
	if ix.Kind == IndexKindClustered {
		clustered = "clustered "
	}
	sb.WriteString(fmt.Sprintf("create %s%sindex %s on %s (%s);\n",
		unique, clustered, name, tableName, strings.Join(columns, ", ")))
}

func nullability(f FieldModel) string {
	if f.IsNullable {
		return "null"
	}
	return "not null"
}

func pkMarker(f FieldModel) string {
	if f.IsPrimaryKey {
		return " (primary key)"
	}
	return ""
}
