package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level          Level
		expectedString string
	}{
		{DEBUG, levelDEBUG},
		{INFO, levelINFO},
		{NOTICE, levelNOTICE},
		{WARN, levelWARN},
		{ERROR, levelERROR},
		{FATAL, levelFATAL},
		{Level(99), ""},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.expectedString, tc.level.String(), "TEST[%d], Failed.\n", i)
	}
}

func TestGetLevelFromString(t *testing.T) {
	tests := []struct {
		desc     string
		input    string
		expected Level
	}{
		{"DebugLevel", "DEBUG", DEBUG},
		{"InfoLevel", "INFO", INFO},
		{"NoticeLevel", "NOTICE", NOTICE},
		{"WarnLevel", "WARN", WARN},
		{"ErrorLevel", "ERROR", ERROR},
		{"FatalLevel", "FATAL", FATAL},
		{"DefaultLevel", "UNKNOWN", INFO},
		{"LowerCaseIsNormalized", "debug", DEBUG},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.expected, GetLevelFromString(tc.input), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}
