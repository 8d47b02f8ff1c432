package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// Init configures the global logger. Development gets pretty console output
// at debug level; everything else gets JSON at info level.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		return
	}

	log = zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

func Debug(msg string, args ...any) {
	emit(log.Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(log.Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(log.Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(log.Error(), msg, args)
}

func Fatal(msg string, args ...any) {
	emit(log.Fatal(), msg, args)
}

// emit attaches args as key/value pairs. A single trailing value (a bare
// error, typically) lands under "error".
func emit(e *zerolog.Event, msg string, args []any) {
	i := 0
	for ; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		e = e.Interface(key, args[i+1])
	}
	if i < len(args) {
		e = e.Interface("error", args[i])
	}
	e.Msg(msg)
}
