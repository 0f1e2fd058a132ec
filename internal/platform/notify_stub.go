//go:build !linux && !darwin && !windows

package platform

// Notify silently succeeds where no notification transport exists.
func Notify(title, body string, _ Options) error {
	return nil
}
