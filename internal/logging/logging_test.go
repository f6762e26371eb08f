package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewWritesAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(logrus.DebugLevel, &buf)

	l.Debug("a debug decision")
	l.Warn("a structural warning")

	out := buf.String()
	assert.Contains(t, out, "a debug decision")
	assert.Contains(t, out, "a structural warning")
}

func TestNewSuppressesBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(logrus.WarnLevel, &buf)

	l.Debug("should not appear")
	l.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestDiscardDropsEverything(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() {
		l.Warn("nobody hears this")
	})
}
