package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run executes f and recovers any panic so a background goroutine can not
// take down the process.
func Run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
		}
	}()
	f()
}
