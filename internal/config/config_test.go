package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(3000), cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "./templates", cfg.UI.TemplatesPath)
	assert.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.False(t, cfg.Export.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Export.Schedule)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.TaskTimeout)
	assert.False(t, cfg.Demo.Enabled)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("DATABASE_DSN", "root:secret@tcp(db:3306)/library?parseTime=true")
	t.Setenv("EXPORT_ENABLED", "true")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("TASK_RETRY_DELAY", "30s")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "root:secret@tcp(db:3306)/library?parseTime=true", cfg.Database.DSN)
	assert.True(t, cfg.Export.Enabled)
	assert.True(t, cfg.Demo.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Tasks.RetryDelay)
}
