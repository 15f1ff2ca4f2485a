//go:build windows

package server

// Named pipes are not used; the TCP fallback needs no file permissions.
func setSocketPermissions(string) {}
