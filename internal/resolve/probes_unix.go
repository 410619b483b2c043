//go:build unix

package resolve

import "golang.org/x/sys/unix"

// writable reports whether the current user may write to path.
func writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

// executable reports whether the current user may execute path.
func executable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
