package gradleprops

import "github.com/gopasspw/gopass/pkg/debug"

// Notifier receives the human-readable notices emitted by an Editor.
//
// Verbosef carries internal operational detail (file creation, defaults
// applied, save actions). Infof carries user-facing advisories about
// configuration drift from the recommended values. Implementations are
// responsible for display, formatting and suppression; an Editor never
// blocks on its Notifier.
type Notifier interface {
	Verbosef(format string, args ...any)
	Infof(format string, args ...any)
}

// debugNotifier routes all notices to the debug log. It is the fallback
// used when an Editor has no Notifier set.
type debugNotifier struct{}

func (debugNotifier) Verbosef(format string, args ...any) {
	debug.V(1).Log(format, args...)
}

func (debugNotifier) Infof(format string, args ...any) {
	debug.Log(format, args...)
}
