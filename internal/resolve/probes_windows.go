//go:build windows

package resolve

import (
	"os"
	"strings"
)

// writable approximates an access check from file attributes; windows has
// no faccessat equivalent worth the ACL walk for a build-host tool.
func writable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 != 0
}

func executable(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".exe") || strings.HasSuffix(lower, ".bat") || strings.HasSuffix(lower, ".cmd")
}
