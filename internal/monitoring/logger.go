package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the runner, the
// cutflow registry and the store. It defaults to log.Printf; SetLogger
// replaces it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Prefixed returns a printf-style logger that routes through the current
// Logf with prefix prepended to every message. The target is resolved at
// call time so a later SetLogger still applies.
func Prefixed(prefix string) func(format string, v ...interface{}) {
	return func(format string, v ...interface{}) {
		Logf(prefix+format, v...)
	}
}
