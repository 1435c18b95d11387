//go:build darwin

// macOS notifications via osascript. The notification carries the app name
// as its title and the task text as the subtitle so grouped notifications
// read as taskify's in Notification Center.
package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

type darwinNotifier struct{}

func newPlatformNotifier() Notifier {
	return &darwinNotifier{}
}

func (n *darwinNotifier) Send(title, message string) error {
	return n.deliver(title, message, false)
}

func (n *darwinNotifier) SendWithSound(title, message string) error {
	return n.deliver(title, message, true)
}

// IsSupported reports whether osascript is on PATH.
func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *darwinNotifier) deliver(title, message string, sound bool) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s" subtitle "%s"`,
		escapeAppleScript(message), appName, escapeAppleScript(title))
	if sound {
		script += ` sound name "default"`
	}

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// escapeAppleScript escapes backslashes and quotes for AppleScript string
// literals.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
