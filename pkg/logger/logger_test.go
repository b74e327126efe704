package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", &buf)

	log.WithField("incident_id", "42").Debug("Incident created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Incident created", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "42", entry["incident_id"])
	assert.Contains(t, entry, "time")
}

func TestNewWithOutput_Level(t *testing.T) {
	testCases := []struct {
		input string
		want  logrus.Level
	}{
		{"warn", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"nonsense", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			log := NewWithOutput(tc.input, &bytes.Buffer{})
			assert.Equal(t, tc.want, log.GetLevel())
		})
	}
}
