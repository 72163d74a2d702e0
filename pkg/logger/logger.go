package logger

import (
	"log/slog"
	"os"
	"strconv"
)

var log *slog.Logger

// Init sets up the process-wide logger. Development gets human-readable text
// at debug level, anything else gets JSON at info level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func get() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize tolerates loose call sites: bare errors and values without keys
// are wrapped so slog never sees an odd argument list.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		valid := true
		for i := 0; i < len(args); i += 2 {
			if _, ok := args[i].(string); !ok {
				valid = false
				break
			}
		}
		if valid {
			return args
		}
	}

	out := make([]any, 0, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case error:
			out = append(out, slog.Any("error", v))
		default:
			out = append(out, slog.Any("arg"+strconv.Itoa(i), v))
		}
	}
	return out
}
