// Package loader reads YAML model-definition files into the schema data
// model. Mixin expansion happens here: by the time a DatabaseModel leaves
// this package, every table carries its merged field set and no reserved
// mixin markers remain.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"schemaplan/schema"
)

type fileDoc struct {
	Mixins []tableDoc `yaml:"mixins"`
	Tables []tableDoc `yaml:"tables"`
}

type tableDoc struct {
	Name        string          `yaml:"name"`
	Mixins      []string        `yaml:"mixins"`
	Attributes  map[string]bool `yaml:"attributes"`
	Fields      []fieldDoc      `yaml:"fields"`
	ForeignKeys []foreignKeyDoc `yaml:"foreignKeys"`
	Indexes     []indexDoc      `yaml:"indexes"`
}

type fieldDoc struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	PrimaryKey bool   `yaml:"primaryKey"`
	Identity   bool   `yaml:"identity"`
	Nullable   bool   `yaml:"nullable"`
	Optional   bool   `yaml:"optional"`
	Precision  *int   `yaml:"precision"`
	Scale      *int   `yaml:"scale"`
}

type foreignKeyDoc struct {
	Column       string `yaml:"column"`
	TargetTable  string `yaml:"targetTable"`
	TargetColumn string `yaml:"targetColumn"`
	Nullable     bool   `yaml:"nullable"`
	Relationship string `yaml:"relationship"`
}

type indexDoc struct {
	Fields []string `yaml:"fields"`
	Unique bool     `yaml:"unique"`
	Kind   string   `yaml:"kind"`
}

// Load reads and parses a model file from disk.
func Load(path string) (*schema.DatabaseModel, error) {
	slog.Debug("loading model file", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	db, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	return db, nil
}

// Parse builds a DatabaseModel from YAML model-definition content. Tables
// keep their file order, which keeps downstream planning deterministic.
func Parse(data []byte) (*schema.DatabaseModel, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}

	mixins := make(map[string]*schema.MixinModel, len(doc.Mixins))
	for _, md := range doc.Mixins {
		mixin, err := buildTable(md)
		if err != nil {
			return nil, fmt.Errorf("mixin %s: %w", md.Name, err)
		}
		mixins[normKey(md.Name)] = mixin
	}
	slog.Debug("parsed mixins", "count", len(mixins))

	db := schema.NewDatabaseModel()
	for _, td := range doc.Tables {
		table, err := buildTable(td)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", td.Name, err)
		}
		if err := expandMixins(table, mixins); err != nil {
			return nil, fmt.Errorf("table %s: %w", td.Name, err)
		}
		if err := db.AddTable(table); err != nil {
			return nil, err
		}
	}

	slog.Info("model loaded", "tables", len(db.Tables()), "mixins", len(mixins))
	return db, nil
}

func buildTable(doc tableDoc) (*schema.TableModel, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("missing name")
	}

	table := schema.NewTableModel(doc.Name)
	table.Mixins = doc.Mixins
	for name, value := range doc.Attributes {
		table.Attributes[name] = value
	}

	for _, fd := range doc.Fields {
		field, err := schema.NewFieldModel(fd.Name, fd.Type)
		if err != nil {
			return nil, err
		}
		field.IsPrimaryKey = fd.PrimaryKey
		field.IsIdentity = fd.Identity
		field.IsNullable = fd.Nullable
		field.IsOptional = fd.Optional
		field.Precision = fd.Precision
		field.Scale = fd.Scale
		if err := table.AddField(field); err != nil {
			return nil, err
		}
	}

	for _, fkd := range doc.ForeignKeys {
		relationship := schema.RelationshipType(fkd.Relationship)
		if relationship == "" {
			relationship = schema.RelationshipOneToMany
		}
		table.AddForeignKey(schema.ForeignKeyModel{
			ColumnName:       fkd.Column,
			TargetTable:      fkd.TargetTable,
			TargetColumnName: fkd.TargetColumn,
			IsNullable:       fkd.Nullable,
			Relationship:     relationship,
		})
	}

	for _, ixd := range doc.Indexes {
		kind := schema.IndexKind(ixd.Kind)
		if kind == "" {
			kind = schema.IndexKindNonClustered
		}
		table.AddIndex(schema.IndexModel{
			Fields:   ixd.Fields,
			IsUnique: ixd.Unique,
			Kind:     kind,
		})
	}

	return table, nil
}

// expandMixins merges each referenced mixin's fields, foreign keys and
// indexes into the table. On a field name collision the table's own
// declaration wins.
func expandMixins(table *schema.TableModel, mixins map[string]*schema.MixinModel) error {
	for _, name := range table.Mixins {
		mixin, ok := mixins[normKey(name)]
		if !ok {
			return fmt.Errorf("unknown mixin %s", name)
		}
		for _, f := range mixin.Fields {
			if table.HasField(f.Name) {
				continue
			}
			if err := table.AddField(f); err != nil {
				return err
			}
		}
		for _, fk := range mixin.ForeignKeys {
			table.AddForeignKey(fk)
		}
		for _, ix := range mixin.Indexes {
			table.AddIndex(ix)
		}
		slog.Debug("expanded mixin", "table", table.Name, "mixin", name)
	}
	return nil
}

func normKey(name string) string {
	return strings.ToLower(name)
}
