package platform

// Options carries the platform-specific extras of a notification.
type Options struct {
	// IconPath names an image file shown alongside the notification on
	// platforms whose notification center supports one. Empty means the
	// application default.
	IconPath string
}
