package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolverTable() *TableModel {
	table := NewTableModel("Order")
	table.AddForeignKey(ForeignKeyModel{
		ColumnName:       "ClientID",
		TargetTable:      "Client",
		TargetColumnName: "ClientID",
	})
	return table
}

func TestResolveIndexFieldsRelationship(t *testing.T) {
	resolved := ResolveIndexFields([]string{"Client"}, resolverTable())
	assert.Equal(t, []string{"ClientID"}, resolved)
}

func TestResolveIndexFieldsPassthrough(t *testing.T) {
	resolved := ResolveIndexFields([]string{"Notes"}, resolverTable())
	assert.Equal(t, []string{"Notes"}, resolved)
}

func TestResolveIndexFieldsMixed(t *testing.T) {
	resolved := ResolveIndexFields([]string{"client", "CreatedAt"}, resolverTable())
	assert.Equal(t, []string{"ClientID", "CreatedAt"}, resolved, "matching is case-insensitive")
}

func TestResolveIndexFieldsNilTable(t *testing.T) {
	fields := []string{"Client", "Notes"}
	assert.Equal(t, fields, ResolveIndexFields(fields, nil))
}

func TestResolveIndexFieldsEmpty(t *testing.T) {
	assert.Empty(t, ResolveIndexFields(nil, resolverTable()))
}

func TestResolveIndexFieldsDuplicateTargetLastWins(t *testing.T) {
	table := resolverTable()
	table.AddForeignKey(ForeignKeyModel{
		ColumnName:       "ResellerID",
		TargetTable:      "Client",
		TargetColumnName: "ClientID",
	})

	resolved := ResolveIndexFields([]string{"Client"}, table)
	assert.Equal(t, []string{"ResellerID"}, resolved)
}
