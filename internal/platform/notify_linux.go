//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const notifyTimeoutMs = 5000

// Notify posts a desktop notification over the org.freedesktop.Notifications
// session bus interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	if opts.IconPath != "" {
		// Some servers only honor the icon through the image-path hint.
		hints["image-path"] = dbus.MakeVariant(opts.IconPath)
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"Squidpad", uint32(0), opts.IconPath, title, body, []string{}, hints, int32(notifyTimeoutMs))
	return call.Err
}
