package driftwood

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set Scroller debug flag so that
// package-level code paths (sheet parsing, callback recovery) can honor it
// without a back-reference. With multiple scrollers, trace output reflects
// whichever called SetDebugMode last.
var globalDebug bool

// warnf prints a warning to stderr with the package prefix. Warnings fire
// regardless of debug mode; they report misconfiguration, not tracing.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[driftwood] warning: "+format+"\n", args...)
}

// debugf prints a trace line to stderr. Only emits when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[driftwood] "+format+"\n", args...)
}

// safeCall invokes a consumer callback, recovering any panic so one broken
// handler cannot abort the tick. The panic value is logged with the callback
// site for diagnosis.
func safeCall(site string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			warnf("recovered panic in %s callback: %v", site, r)
		}
	}()
	fn()
}
