package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {

	log, err := New(Options{Level: "debug", NoColors: true})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log, err = New(Options{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	_, err = New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewFileOutput(t *testing.T) {

	file := filepath.Join(t.TempDir(), "stats.log")

	log, err := New(Options{File: file, NoColors: true})
	require.NoError(t, err)

	log.WithFields(Fields{"sequence": "dancetrack0001"}).Info("loaded")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded")
	assert.Contains(t, string(data), "dancetrack0001")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.IsLevelEnabled(logrus.InfoLevel))
}
