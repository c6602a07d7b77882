package main

import (
	"schemaplan/schema"
)

func PlanMigration(target, actual *schema.DatabaseModel) schema.MigrationPlan {
	return schema.Plan(target, actual)
}

func FormatPlan(plan schema.MigrationPlan) string {
	return schema.FormatPlanInfo(plan)
}

func FormatPlanAsSQL(plan schema.MigrationPlan, target *schema.DatabaseModel) string {
	return schema.FormatPlanSQL(plan, target)
}
