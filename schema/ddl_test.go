package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ddlTestModel(t *testing.T) *DatabaseModel {
	t.Helper()

	client := makeTable(t, "Client",
		FieldModel{Name: "ClientID", Type: "int32", IsPrimaryKey: true, IsIdentity: true},
		FieldModel{Name: "Name", Type: "unicodestring", Precision: intp(200)},
		FieldModel{Name: "Email", Type: "asciistring", IsNullable: true},
	)
	client.AddIndex(IndexModel{Fields: []string{"Email"}, IsUnique: true})

	order := makeTable(t, "Order",
		FieldModel{Name: "OrderID", Type: "int32", IsPrimaryKey: true, IsIdentity: true},
		FieldModel{Name: "ClientID", Type: "int32"},
		FieldModel{Name: "Total", Type: "money"},
	)
	order.AddForeignKey(ForeignKeyModel{
		ColumnName:       "ClientID",
		TargetTable:      "Client",
		TargetColumnName: "ClientID",
	})
	order.AddIndex(IndexModel{Fields: []string{"Client"}, IsUnique: false})

	return makeDB(t, client, order)
}

func TestFormatDatabaseSQL(t *testing.T) {
	result := FormatDatabaseSQL(ddlTestModel(t))

	assert.Contains(t, result, "create table Client (")
	assert.Contains(t, result, "ClientID int identity(1,1) not null")
	assert.Contains(t, result, "Name nvarchar(200) not null")
	assert.Contains(t, result, "Email varchar(255)")
	assert.Contains(t, result, "primary key (ClientID)")
	assert.Contains(t, result, "Total decimal(19,4) not null")
	assert.Contains(t, result, "alter table Order add constraint FK_Order_ClientID foreign key (ClientID) references Client (ClientID);")

	// Unique indexes get the alternate-key prefix; logical field names
	// resolve to the foreign key column.
	assert.Contains(t, result, "create unique index AK_Client_Email on Client (Email);")
	assert.Contains(t, result, "create index IX_Order_ClientID on Order (ClientID);")
}

func TestFormatPlanSQL(t *testing.T) {
	target := ddlTestModel(t)
	actual := makeDB(t, makeTable(t, "Client",
		FieldModel{Name: "ClientID", Type: "int", IsPrimaryKey: true},
		FieldModel{Name: "Name", Type: "nvarchar", Precision: intp(200)},
	))

	plan := Plan(target, actual)
	result := FormatPlanSQL(plan, target)

	assert.Contains(t, result, "alter table Client add Email varchar(255) null;")
	assert.Contains(t, result, "create table Order (")
	assert.Contains(t, result, "alter table Order add constraint FK_Order_ClientID")
	assert.NotContains(t, strings.ToLower(result), "drop")
}

func TestFormatPlanSQLAddIndexStep(t *testing.T) {
	// The planner never emits AddIndex today, but the renderer must handle
	// the reserved variant so the plan shape can grow without breaking
	// consumers.
	target := ddlTestModel(t)
	plan := MigrationPlan{Steps: []MigrationStep{{
		Action:    ActionAddIndex,
		TableName: "Order",
		Index:     &IndexModel{Fields: []string{"Client"}, IsUnique: false},
	}}}

	result := FormatPlanSQL(plan, target)
	assert.Contains(t, result, "create index IX_Order_ClientID on Order (ClientID);")

	// Without table context the logical name passes through unresolved.
	result = FormatPlanSQL(plan, nil)
	assert.Contains(t, result, "create index IX_Order_Client on Order (Client);")
}

func TestFormatPlanInfo(t *testing.T) {
	target := ddlTestModel(t)
	plan := Plan(target, NewDatabaseModel())

	result := FormatPlanInfo(plan)
	assert.Contains(t, result, "Create table: Client")
	assert.Contains(t, result, "Create table: Order")
	assert.Contains(t, result, "ClientID int not null (primary key)")
	assert.Contains(t, result, "Add foreign key: Order.ClientID -> Client.ClientID")
}

func TestFormatPlanInfoAddColumn(t *testing.T) {
	plan := MigrationPlan{Steps: []MigrationStep{{
		Action:    ActionAddColumn,
		TableName: "Client",
		Fields:    []FieldModel{{Name: "Email", Type: "asciistring", IsNullable: true}},
	}}}

	result := FormatPlanInfo(plan)
	assert.Contains(t, result, "Add column: Client.Email varchar(255) null")
}

func TestFormatDatabaseSQLEmptyModel(t *testing.T) {
	result := FormatDatabaseSQL(NewDatabaseModel())
	assert.Empty(t, result)
}

func TestFormatPlanSQLEmptyPlan(t *testing.T) {
	require.Empty(t, FormatPlanSQL(MigrationPlan{}, nil))
}

func TestFormatDatabaseSQLClusteredIndex(t *testing.T) {
	table := makeTable(t, "Ledger",
		FieldModel{Name: "EntryID", Type: "int64", IsPrimaryKey: true},
		FieldModel{Name: "PostedAt", Type: "datetime"},
	)
	table.AddIndex(IndexModel{Fields: []string{"PostedAt"}, Kind: IndexKindClustered})

	result := FormatDatabaseSQL(makeDB(t, table))
	assert.Contains(t, result, "create clustered index IX_Ledger_PostedAt on Ledger (PostedAt);")
}
