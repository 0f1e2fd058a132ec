//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts to the macOS Notification Center through osascript.
// Notification Center picks the icon from the sending application, so
// opts.IconPath is ignored here.
func Notify(title, body string, _ Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return exec.Command("osascript", "-e", script).Run()
}
