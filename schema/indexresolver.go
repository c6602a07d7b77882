package schema

// ResolveIndexFields translates index field names that refer to logical
// related-table names into the physical column implementing that
// relationship. A name matching a foreign key's target table
// (case-insensitively) is replaced by that key's column name; anything else
// passes through unchanged, on the assumption that it already names a
// physical column. A nil table returns the input as-is.
//
// When two foreign keys share a target table the last one declared wins,
// a known limitation for tables with multiple relationships to the same
// target.
func ResolveIndexFields(fields []string, table *TableModel) []string {
	if table == nil {
		return fields
	}

	byTarget := make(map[string]string, len(table.ForeignKeys))
	for _, fk := range table.ForeignKeys {
		byTarget[normKey(fk.TargetTable)] = fk.ColumnName
	}

	resolved := make([]string, len(fields))
	for i, name := range fields {
		if column, ok := byTarget[normKey(name)]; ok {
			resolved[i] = column
		} else {
			resolved[i] = name
		}
	}
	return resolved
}
