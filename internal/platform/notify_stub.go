//go:build !linux && !darwin && !windows

package platform

// Notify does nothing where no notification centre is known.
func Notify(string, string, Options) error { return nil }
