// Package resolve locates and validates the on-disk build tree, product
// tree, boot classpath directory, and the dexopt executable. Every
// failure here is fatal for the run: each step depends on the previous
// one, so errors surface immediately instead of accumulating.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/dexpreopt/internal/config"
)

var (
	ErrMissingCandidate   = errors.New("❌ no candidate found")
	ErrAmbiguousCandidate = errors.New("❌ multiple candidates found")
)

// productRoot is where product directories live relative to the build dir.
const productRoot = "target/product"

// BootPath is the two-segment location of the boot classpath directory.
// The split between the build-host prefix and the device-relative suffix
// is a contract with dexopt: it marks where host path information ends so
// dexopt can emit device-correct dependency names.
type BootPath struct {
	HostPrefix string // absolute product directory on the build host
	DeviceDir  string // device-relative boot directory, e.g. system/framework
}

// boundary marks the host/device split in rendered paths. A double slash
// is inert for the filesystem, so the rendered form is usable both as a
// real path and as a marker dexopt can split on, and it survives
// colon-joining into BOOTCLASSPATH.
const boundary = "//"

// String renders the marker form passed to dexopt.
func (p BootPath) String() string {
	return p.HostPrefix + boundary + p.DeviceDir
}

// Dir renders the plain filesystem join, for existence and writability
// probes.
func (p BootPath) Dir() string {
	return filepath.Join(p.HostPrefix, p.DeviceDir)
}

// Paths holds every resolved, validated location the driver needs.
type Paths struct {
	BuildDir   string // canonical absolute, now the working directory
	ProductDir string // absolute
	Boot       BootPath
	DexoptPath string // absolute, executable
}

// Resolve validates the build directory, moves the working directory
// there, then discovers and validates the product directory, boot
// directory, and dexopt executable in that order.
func Resolve(cfg *config.Config, logger hclog.Logger) (*Paths, error) {
	if cfg.BuildDir == "" {
		return nil, errors.New("❌ build directory must not be empty")
	}
	build, err := canonical(cfg.BuildDir)
	if err != nil {
		return nil, fmt.Errorf("❌ bad build directory %s: %w", cfg.BuildDir, err)
	}
	if err := checkWritableDir(build); err != nil {
		return nil, err
	}
	if err := os.Chdir(build); err != nil {
		return nil, fmt.Errorf("❌ cannot enter build directory: %w", err)
	}
	logger.Debug("📂 Entered build directory", "path", build)

	product := cfg.ProductDir
	if product == "" {
		product, err = UniqueChild(productRoot, func(entry os.DirEntry) (string, bool) {
			if !entry.IsDir() {
				return "", false
			}
			return filepath.Join(productRoot, entry.Name()), true
		})
		if err != nil {
			return nil, fmt.Errorf("❌ cannot discover product directory under %s: %w", productRoot, err)
		}
		logger.Debug("📂 Discovered product directory", "path", product)
	}
	if err := checkWritableDir(product); err != nil {
		return nil, err
	}
	productAbs, err := filepath.Abs(product)
	if err != nil {
		return nil, fmt.Errorf("❌ bad product directory %s: %w", product, err)
	}

	boot := BootPath{HostPrefix: productAbs, DeviceDir: cfg.BootDir}
	if err := checkWritableDir(boot.Dir()); err != nil {
		return nil, err
	}

	dexoptPath := cfg.DexoptPath
	if dexoptPath == "" {
		dexoptPath, err = discoverDexopt()
		if err != nil {
			return nil, err
		}
		logger.Debug("📂 Discovered optimizer", "path", dexoptPath)
	}
	dexoptAbs, err := filepath.Abs(dexoptPath)
	if err != nil {
		return nil, fmt.Errorf("❌ bad dexopt path %s: %w", dexoptPath, err)
	}
	if err := checkExecutable(dexoptAbs); err != nil {
		return nil, err
	}

	return &Paths{
		BuildDir:   build,
		ProductDir: productAbs,
		Boot:       boot,
		DexoptPath: dexoptAbs,
	}, nil
}

// UniqueChild scans the immediate entries of dir and returns the single
// result for which keep reports a match. Zero matches or more than one
// is an error; discovery must never guess.
func UniqueChild(dir string, keep func(entry os.DirEntry) (string, bool)) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot list %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if result, ok := keep(entry); ok {
			matches = append(matches, result)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrMissingCandidate, dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w in %s (%d matches)", ErrAmbiguousCandidate, dir, len(matches))
	}
}

// discoverDexopt searches one level of host-architecture directories for
// a bin/dexopt executable, requiring exactly one match.
func discoverDexopt() (string, error) {
	path, err := UniqueChild("host", func(entry os.DirEntry) (string, bool) {
		if !entry.IsDir() {
			return "", false
		}
		candidate := filepath.Join("host", entry.Name(), "bin", "dexopt")
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			return "", false
		}
		return candidate, true
	})
	if err != nil {
		return "", fmt.Errorf("❌ cannot discover dexopt executable: %w", err)
	}
	return path, nil
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func checkWritableDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("❌ directory %s does not exist: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("❌ %s is not a directory", path)
	}
	if !writable(path) {
		return fmt.Errorf("❌ directory %s is not writable", path)
	}
	return nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("❌ dexopt executable %s does not exist: %w", path, err)
	}
	if !info.Mode().IsRegular() || !executable(path) {
		return fmt.Errorf("❌ %s is not executable", path)
	}
	return nil
}
