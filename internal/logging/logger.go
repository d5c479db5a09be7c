package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogLevel      string
	LogFormatJSON bool
	LogFileName   string // empty means stderr only
	LogToStderr   bool   // also write to stderr when LogFileName is set
}

// Setup configures log according to params. The returned closer releases the log
// file, if any; it is safe to call when only stderr is used.
func Setup(log *logrus.Logger, params SetupParams) io.Closer {
	if params.LogFormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	log.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		log.SetOutput(os.Stderr)
		return NewCombinedWriter()
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	fileLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   10, // megabytes
		LocalTime: false,
		Compress:  true,
	}

	if params.LogToStderr {
		out := NewCombinedWriter(os.Stderr, fileLogger)
		log.SetOutput(out)
		return out
	}
	log.SetOutput(fileLogger)
	return fileLogger
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
