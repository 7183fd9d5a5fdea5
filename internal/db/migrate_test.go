package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_Ordered(t *testing.T) {
	files, err := MigrationFiles()

	require.NoError(t, err)
	assert.Equal(t, []string{"001_maintenance.sql", "002_schedules.sql", "003_work_items.sql"}, files)
}

func TestMigrations_DeclareDedupIndexes(t *testing.T) {
	var all strings.Builder
	files, err := MigrationFiles()
	require.NoError(t, err)
	for _, f := range files {
		b, err := migrations.ReadFile("migrations/" + f)
		require.NoError(t, err)
		all.Write(b)
	}
	sql := all.String()

	assert.Contains(t, sql, "ux_schedule_jobs_slot")
	assert.Contains(t, sql, "WHERE status <> 'Cancel'")
	assert.Contains(t, sql, "ux_task_assignments_active")
	assert.Contains(t, sql, "ux_work_logs_active")
	assert.Contains(t, sql, "inspection_id TEXT PRIMARY KEY")
}
