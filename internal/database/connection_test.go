package database

import (
	"testing"

	"checklist_manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestInitializeSQLite(t *testing.T) {
	db, err := Initialize("sqlite:file:connection_test?mode=memory&cache=shared", "silent")
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.ChecklistSubtask{}))
	assert.True(t, db.Migrator().HasTable("checklist_subtasks"))
	assert.True(t, db.Migrator().HasTable(&models.Holiday{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("SILENT"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
