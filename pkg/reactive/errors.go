package reactive

import (
	"fmt"
	"log/slog"
)

// ErrorHandler receives failures recovered from user-authored getters and
// callbacks, along with the owning scope (possibly nil) and a short
// description of where the failure happened. The core invokes it and then
// continues running other watchers; it never calls back into the core.
//
// The default handler logs the error. Replace it at startup:
//
//	reactive.ErrorHandler = func(err error, scope *reactive.Scope, info string) {
//	    myReporter.Capture(err, info)
//	}
var ErrorHandler = func(err error, scope *Scope, info string) {
	attrs := []any{slog.String("where", info)}
	if scope != nil {
		attrs = append(attrs, slog.Uint64("scope", scope.id))
	}
	log().Error("reactive: "+err.Error(), attrs...)
}

// handleError routes a recovered user failure to the registered handler.
func handleError(err error, scope *Scope, info string) {
	if ErrorHandler != nil {
		ErrorHandler(err, scope, info)
	}
}

// recoveredError converts a recover() result to an error.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
