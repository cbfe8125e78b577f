package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRegisterDBTracing(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: false}, zap.NewNop()))
	_, registered := db.Config.Plugins["otelgorm"]
	assert.False(t, registered)

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBName: "sales"}, zap.NewNop()))
	_, registered = db.Config.Plugins["otelgorm"]
	assert.True(t, registered)
}
