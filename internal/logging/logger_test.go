package logging_test

import (
	"alcyxob/workout-tracker/internal/logging"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		"trace":   logrus.TraceLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"info":    logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"chatty":  logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.GetLevel(in), "level %q", in)
	}
}

type failingWriter struct {
	err    error
	closed bool
}

func (w *failingWriter) Write([]byte) (int, error) { return 0, w.err }

func (w *failingWriter) Close() error {
	w.closed = true
	return w.err
}

func TestCombinedWriter_Write(t *testing.T) {
	var a, b bytes.Buffer
	cw := logging.NewCombinedWriter(&a, &b)

	n, err := cw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())
}

func TestCombinedWriter_Errors(t *testing.T) {
	var buf bytes.Buffer
	first := &failingWriter{err: errors.New("disk full")}
	second := &failingWriter{err: errors.New("closed pipe")}
	cw := logging.NewCombinedWriter(first, &buf, second)

	_, err := cw.Write([]byte("line"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, "line", buf.String(), "healthy writers still receive the message")

	err = cw.Close()
	assert.Len(t, multierr.Errors(err), 2)
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestCombinedWriter_CloseSkipsStdStreams(t *testing.T) {
	cw := logging.NewCombinedWriter(os.Stderr, os.Stdout)
	require.NoError(t, cw.Close())

	_, err := os.Stderr.Stat()
	assert.NoError(t, err, "stderr is still open")
}

func TestSetup_File(t *testing.T) {
	log := logrus.New()
	name := filepath.Join(t.TempDir(), "workouts")

	closer := logging.Setup(log, logging.SetupParams{
		LogLevel:      "debug",
		LogFormatJSON: true,
		LogFileName:   name,
	})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log.WithField("template_id", "abc").Debug("template added")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(name + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"template added"`)
	assert.Contains(t, string(data), `"template_id":"abc"`)
}

func TestSetup_Stderr(t *testing.T) {
	log := logrus.New()

	closer := logging.Setup(log, logging.SetupParams{LogLevel: "warn"})
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.Equal(t, os.Stderr, log.Out)
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.NoError(t, closer.Close())
}
