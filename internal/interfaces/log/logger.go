// Package log
package log

import "github.com/flybg-dev/flyingsites/internal/interfaces/global"

// LoggerInterface is the leveled logger used across the server. The F
// variants format like fmt.Sprintf; Fatal logs and exits. ShutdownCallback
// flushes buffered output and is run last on shutdown.
type LoggerInterface interface {
	Init(debug bool)
	ShutdownCallback() global.Callable
	Debug(msg string, v ...interface{})
	DebugF(msg string, v ...interface{})
	Info(msg string, v ...interface{})
	InfoF(msg string, v ...interface{})
	Warn(msg string, v ...interface{})
	WarnF(msg string, v ...interface{})
	Error(msg string, v ...interface{})
	ErrorF(msg string, v ...interface{})
	Fatal(msg string, v ...interface{})
	FatalF(msg string, v ...interface{})
}
