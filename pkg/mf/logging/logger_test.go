package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer

	l := NewLoggerWithWriters(DEBUG, &out, &errOut)

	l.Info("hello")
	l.Warn("uh oh")

	assert.Contains(t, out.String(), "hello")
	assert.NotContains(t, out.String(), "uh oh")
	assert.Contains(t, errOut.String(), "uh oh")
}

func TestLoggerSuppressesBelowConfiguredLevel(t *testing.T) {
	var out, errOut bytes.Buffer

	l := NewLoggerWithWriters(WARN, &out, &errOut)

	l.Debug("should not appear")
	l.Info("should not appear either")
	l.Error("should appear")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "should appear")
}

func TestLoggerWritesJSONLine(t *testing.T) {
	var out, errOut bytes.Buffer

	l := NewLoggerWithWriters(DEBUG, &out, &errOut)
	l.Infof("feature %s created", "mf-1")

	var e entry
	assert.NoError(t, json.Unmarshal(out.Bytes(), &e))
	assert.Equal(t, levelINFO, e.Level)
	assert.Equal(t, "feature mf-1 created", e.Message)
	assert.NotEmpty(t, e.Timestamp)
}

func TestNewMockLoggerWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer

	l := NewMockLogger(&buf)
	l.Debug("debug should show up")

	assert.Contains(t, buf.String(), "debug should show up")
}
