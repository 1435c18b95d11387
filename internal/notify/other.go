//go:build !darwin && !linux

// Fallback for platforms without a wired notification channel. Reminders
// still schedule and fire internally; delivery is dropped, and IsSupported
// lets callers skip wiring the scheduler entirely.
package notify

func newPlatformNotifier() Notifier {
	return &noopNotifier{}
}
