// Package introspect reads the actual schema of a live SQL Server database
// into the schema data model, so it can be diffed against a target model.
package introspect

import (
	"database/sql"
	"fmt"
	"log/slog"

	"schemaplan/schema"
)

// Introspect reads tables, columns and foreign keys from the dbo schema of
// the connected database. Column type codes are kept raw; the type registry
// resolves or degrades them at rendering time.
func Introspect(db *sql.DB) (*schema.DatabaseModel, error) {
	slog.Debug("starting schema introspection")
	names, err := getTables(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	slog.Info("found database tables", "count", len(names))

	model := schema.NewDatabaseModel()
	for _, name := range names {
		slog.Debug("processing table", "table", name)

		table := schema.NewTableModel(name)
		if err := addColumns(db, table); err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", name, err)
		}
		if err := addForeignKeys(db, table); err != nil {
			return nil, fmt.Errorf("failed to get foreign keys for table %s: %w", name, err)
		}
		if err := model.AddTable(table); err != nil {
			return nil, err
		}
	}

	slog.Info("schema introspection completed", "tables", len(model.Tables()))
	return model, nil
}

func getTables(db *sql.DB) ([]string, error) {
	query := `
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = 'dbo'
		AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

func addColumns(db *sql.DB, table *schema.TableModel) error {
	query := `
		SELECT
			c.COLUMN_NAME,
			c.DATA_TYPE,
			CASE WHEN c.IS_NULLABLE = 'YES' THEN 1 ELSE 0 END,
			CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 1 ELSE 0 END,
			COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity'),
			c.CHARACTER_MAXIMUM_LENGTH,
			c.NUMERIC_PRECISION,
			c.NUMERIC_SCALE
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN (
			SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
				ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
			WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY' AND tc.TABLE_SCHEMA = 'dbo'
		) pk ON c.TABLE_NAME = pk.TABLE_NAME AND c.COLUMN_NAME = pk.COLUMN_NAME
		WHERE c.TABLE_NAME = @p1 AND c.TABLE_SCHEMA = 'dbo'
		ORDER BY c.ORDINAL_POSITION
	`

	rows, err := db.Query(query, table.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, dataType    string
			nullable, isPK    bool
			identity          sql.NullInt64
			charLen           sql.NullInt64
			numPrec, numScale sql.NullInt64
		)
		if err := rows.Scan(&name, &dataType, &nullable, &isPK, &identity, &charLen, &numPrec, &numScale); err != nil {
			return err
		}

		field, err := schema.NewFieldModel(name, dataType)
		if err != nil {
			return err
		}
		field.IsNullable = nullable
		field.IsPrimaryKey = isPK
		field.IsIdentity = identity.Valid && identity.Int64 == 1

		// CHARACTER_MAXIMUM_LENGTH already reports -1 for (max) columns,
		// matching the registry's sentinel.
		if charLen.Valid {
			p := int(charLen.Int64)
			field.Precision = &p
		} else if numPrec.Valid {
			p := int(numPrec.Int64)
			field.Precision = &p
			if numScale.Valid {
				s := int(numScale.Int64)
				field.Scale = &s
			}
		}

		if err := table.AddField(field); err != nil {
			return err
		}
	}

	return rows.Err()
}

func addForeignKeys(db *sql.DB, table *schema.TableModel) error {
	query := `
		SELECT KCU1.COLUMN_NAME, KCU2.TABLE_NAME, KCU2.COLUMN_NAME
		FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS RC
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU1
			ON RC.CONSTRAINT_NAME = KCU1.CONSTRAINT_NAME
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU2
			ON RC.UNIQUE_CONSTRAINT_NAME = KCU2.CONSTRAINT_NAME
		WHERE KCU1.TABLE_SCHEMA = 'dbo' AND KCU1.TABLE_NAME = @p1
		ORDER BY KCU1.CONSTRAINT_NAME
	`

	rows, err := db.Query(query, table.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var column, refTable, refColumn string
		if err := rows.Scan(&column, &refTable, &refColumn); err != nil {
			return err
		}

		nullable := false
		if f, ok := table.Field(column); ok {
			nullable = f.IsNullable
		}
		table.AddForeignKey(schema.ForeignKeyModel{
			ColumnName:       column,
			TargetTable:      refTable,
			TargetColumnName: refColumn,
			IsNullable:       nullable,
			Relationship:     schema.RelationshipOneToMany,
		})
	}

	return rows.Err()
}
