package dexopt

import (
	"fmt"
	"os"
	"strings"

	"github.com/provide-io/dexpreopt/internal/resolve"
)

const (
	archiveExt   = ".jar"
	optimizedExt = ".odex"

	// bootClasspathVar is read by dexopt to resolve the bootstrap
	// dependencies of whatever unit it is processing.
	bootClasspathVar = "BOOTCLASSPATH"
)

// BootClasspath expands the ordered boot archive names into absolute
// archive paths rooted at the boot directory's marker form. Input order
// is preserved exactly; it mirrors the runtime classpath ordering.
func BootClasspath(boot resolve.BootPath, jars []string) []string {
	entries := make([]string, len(jars))
	for i, name := range jars {
		entries[i] = boot.String() + "/" + name + archiveExt
	}
	return entries
}

// ExportBootClasspath publishes the colon-joined entries into the
// process environment so every dexopt child inherits them. This happens
// before the first invocation in either mode.
func ExportBootClasspath(entries []string) error {
	if err := os.Setenv(bootClasspathVar, strings.Join(entries, ":")); err != nil {
		return fmt.Errorf("❌ cannot export %s: %w", bootClasspathVar, err)
	}
	return nil
}
