//go:build linux

// Linux notifications via notify-send, branded with the app name so the
// daemon groups them per application.
package notify

import (
	"fmt"
	"os/exec"
)

type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return &linuxNotifier{}
}

func (n *linuxNotifier) Send(title, message string) error {
	return n.deliver(title, message, false)
}

// SendWithSound raises the urgency hint; audible playback is up to the
// notification daemon.
func (n *linuxNotifier) SendWithSound(title, message string) error {
	return n.deliver(title, message, true)
}

// IsSupported reports whether notify-send is on PATH.
func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *linuxNotifier) deliver(title, message string, sound bool) error {
	args := []string{"--app-name=" + appName}
	if sound {
		args = append(args, "--urgency=normal")
	}
	args = append(args, title, message)

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
