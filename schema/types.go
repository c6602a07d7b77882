package schema

import (
	"fmt"
	"strings"
)

// MixinFieldType is the reserved type code used by model files to mark a
// mixin inclusion point. It must never survive into a constructed field:
// mixin expansion happens in the loader, before the core sees the table.
const MixinFieldType = "mixin"

// RelationshipType describes the cardinality of a foreign key.
type RelationshipType string

const (
	RelationshipOneToMany RelationshipType = "one-to-many"
	RelationshipOneToOne  RelationshipType = "one-to-one"
)

// IndexKind distinguishes index storage layouts.
type IndexKind string

const (
	IndexKindNonClustered IndexKind = "nonclustered"
	IndexKindClustered    IndexKind = "clustered"
)

// FieldModel represents a single column declaration. Type is a raw type code
// string; it is validated against the type registry at rendering time, not at
// construction.
type FieldModel struct {
	Name         string
	Type         string
	IsPrimaryKey bool
	IsIdentity   bool
	IsNullable   bool
	IsOptional   bool
	Precision    *int
	Scale        *int
}

// NewFieldModel constructs a field, rejecting the reserved mixin marker.
// Any other unknown type code is accepted and degrades to best-effort
// rendering later.
func NewFieldModel(name, typeCode string) (FieldModel, error) {
	if strings.EqualFold(typeCode, MixinFieldType) {
		return FieldModel{}, fmt.Errorf("field %s: type code %q is reserved for mixin expansion", name, MixinFieldType)
	}
	return FieldModel{Name: name, Type: typeCode}, nil
}

// ForeignKeyModel represents a single-column reference to another table.
// Composite keys are not supported.
type ForeignKeyModel struct {
	ColumnName       string
	TargetTable      string
	TargetColumnName string
	IsNullable       bool
	Relationship     RelationshipType
}

// IndexModel is an ordered list of field names. Names may be logical
// relationship names that need resolution to physical columns, see
// ResolveIndexFields.
type IndexModel struct {
	Fields   []string
	IsUnique bool
	Kind     IndexKind
}

// TableModel holds the declaration of one table. Field names are unique
// case-insensitively; lookups go through a normalized-key map so no call
// site needs its own case folding.
type TableModel struct {
	Name        string
	Fields      []FieldModel
	ForeignKeys []ForeignKeyModel
	Indexes     []IndexModel
	Attributes  map[string]bool
	Mixins      []string

	fieldIndex map[string]int
}

// MixinModel is a reusable field set, structurally identical to a table.
type MixinModel = TableModel

// NewTableModel creates an empty table declaration.
func NewTableModel(name string) *TableModel {
	return &TableModel{
		Name:       name,
		Attributes: make(map[string]bool),
		fieldIndex: make(map[string]int),
	}
}

// AddField appends a field, enforcing case-insensitive name uniqueness.
func (t *TableModel) AddField(f FieldModel) error {
	key := normKey(f.Name)
	if _, exists := t.fieldIndex[key]; exists {
		return fmt.Errorf("table %s: duplicate field %s", t.Name, f.Name)
	}
	t.fieldIndex[key] = len(t.Fields)
	t.Fields = append(t.Fields, f)
	return nil
}

// AddForeignKey appends a foreign key declaration.
func (t *TableModel) AddForeignKey(fk ForeignKeyModel) {
	t.ForeignKeys = append(t.ForeignKeys, fk)
}

// AddIndex appends an index declaration.
func (t *TableModel) AddIndex(ix IndexModel) {
	t.Indexes = append(t.Indexes, ix)
}

// Field looks up a field by name, case-insensitively.
func (t *TableModel) Field(name string) (FieldModel, bool) {
	i, ok := t.fieldIndex[normKey(name)]
	if !ok {
		return FieldModel{}, false
	}
	return t.Fields[i], true
}

// HasField reports whether a field with the given name exists.
func (t *TableModel) HasField(name string) bool {
	_, ok := t.fieldIndex[normKey(name)]
	return ok
}

// DatabaseModel is a collection of tables. Lookups are case-insensitive;
// iteration order is insertion order, which keeps planning deterministic.
type DatabaseModel struct {
	tables []*TableModel
	byName map[string]*TableModel
}

// NewDatabaseModel creates an empty database model.
func NewDatabaseModel() *DatabaseModel {
	return &DatabaseModel{byName: make(map[string]*TableModel)}
}

// AddTable registers a table, enforcing case-insensitive name uniqueness.
func (d *DatabaseModel) AddTable(t *TableModel) error {
	key := normKey(t.Name)
	if _, exists := d.byName[key]; exists {
		return fmt.Errorf("duplicate table %s", t.Name)
	}
	d.byName[key] = t
	d.tables = append(d.tables, t)
	return nil
}

// Table looks up a table by name, case-insensitively.
func (d *DatabaseModel) Table(name string) (*TableModel, bool) {
	t, ok := d.byName[normKey(name)]
	return t, ok
}

// Tables returns all tables in insertion order.
func (d *DatabaseModel) Tables() []*TableModel {
	return d.tables
}

func normKey(name string) string {
	return strings.ToLower(name)
}
