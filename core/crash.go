package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	restoreMu sync.Mutex
	restore   func()
)

// SetCrashRestore registers the hook that returns the terminal to a sane state
// before a crash report is printed; nil clears it
func SetCrashRestore(fn func()) {
	restoreMu.Lock()
	restore = fn
	restoreMu.Unlock()
}

// HandleCrash restores the terminal, prints the panic with its stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	restoreMu.Lock()
	fn := restore
	restoreMu.Unlock()
	if fn != nil {
		fn()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// Guard wraps fn with panic recovery routed to HandleCrash, for goroutines that
// run while the terminal is in raw mode
func Guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		return fn()
	}
}
