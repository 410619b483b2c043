// Package config holds the per-invocation configuration and the
// command-line parser that builds it.
package config

import (
	"github.com/provide-io/dexpreopt/pkg/logging"
)

// VerifyLevel selects how much bytecode verification dexopt performs.
type VerifyLevel string

const (
	VerifyNone   VerifyLevel = "none"
	VerifyRemote VerifyLevel = "remote"
	VerifyAll    VerifyLevel = "all"
)

// OptimizeLevel selects which classes dexopt optimizes.
type OptimizeLevel string

const (
	OptimizeNone     OptimizeLevel = "none"
	OptimizeVerified OptimizeLevel = "verified"
	OptimizeAll      OptimizeLevel = "all"
)

// Config is the fully-parsed configuration for a single invocation.
// It is immutable once Parse returns; every later stage treats it as
// read-only.
type Config struct {
	BuildDir   string // base of the build tree, default current directory
	DexoptPath string // optimizer executable, auto-discovered when empty
	ProductDir string // relative to BuildDir, auto-discovered when empty
	BootDir    string // device-relative boot directory under ProductDir

	BootJars  []string // ordered boot archive base names, no extension
	Bootstrap bool     // process the whole boot classpath, no positionals

	Verify       VerifyLevel
	Optimize     OptimizeLevel
	RegisterMaps bool
	Uniprocessor bool

	LogLevel string

	InputFile  string // archive to optimize, single-file mode only
	OutputFile string // destination path, single-file mode only
}

// Default returns a Config carrying the documented defaults.
func Default() *Config {
	return &Config{
		BuildDir:     ".",
		BootDir:      "system/framework",
		BootJars:     []string{"core"},
		Verify:       VerifyAll,
		Optimize:     OptimizeVerified,
		RegisterMaps: true,
		LogLevel:     logging.GetLogLevel(),
	}
}
