package platform

import "time"

// AppName is the application name shown by notification centres.
const AppName = "FlowSketch"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Expire is how long the notification stays up. Zero uses DefaultExpire.
	Expire time.Duration
}

// DefaultExpire is the display time used when Options.Expire is zero.
const DefaultExpire = 5 * time.Second

func (o Options) expireMillis() int32 {
	if o.Expire <= 0 {
		return int32(DefaultExpire / time.Millisecond)
	}
	return int32(o.Expire / time.Millisecond)
}
