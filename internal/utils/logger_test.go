package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerJSONCarriesAppName(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	InitLogger("widget-service-test")

	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	t.Cleanup(func() { Logger.SetOutput(os.Stdout) })
	Logger.WithField("widget_id", 1).Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "widget-service-test", entry["app"])
	assert.Equal(t, "hello", entry["msg"])
	assert.EqualValues(t, 1, entry["widget_id"])
}

func TestInitLoggerBadLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouting")
	t.Setenv("LOG_FORMAT", "")
	InitLogger("widget-service-test")

	assert.Equal(t, "info", Logger.GetLevel().String())
}
