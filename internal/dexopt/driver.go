package dexopt

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/dexpreopt/internal/config"
	"github.com/provide-io/dexpreopt/internal/resolve"
)

// Driver dispatches between single-file and bootstrap mode and enforces
// the fail-fast contract: the first non-zero optimizer status aborts the
// run with that status, no rollback of already-produced outputs.
type Driver struct {
	Paths  *resolve.Paths
	Flags  string
	Runner Runner
	Logger hclog.Logger
}

// Run expands and exports the boot classpath, then processes either the
// single input/output pair or every boot classpath entry in order.
func (d *Driver) Run(cfg *config.Config) error {
	entries := BootClasspath(d.Paths.Boot, cfg.BootJars)
	if err := ExportBootClasspath(entries); err != nil {
		return err
	}

	if cfg.Bootstrap {
		return d.runBootstrap(entries)
	}
	return d.runSingle(cfg.InputFile, cfg.OutputFile)
}

func (d *Driver) runBootstrap(entries []string) error {
	for _, entry := range entries {
		output := strings.TrimSuffix(entry, archiveExt) + optimizedExt
		d.Logger.Info("📦 Optimizing boot archive", "input", entry, "output", output)
		if err := d.Runner.Run(entry, output, d.Flags); err != nil {
			return err
		}
	}
	d.Logger.Info("✅ Boot classpath optimized", "count", len(entries))
	return nil
}

func (d *Driver) runSingle(input, output string) error {
	abs, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("❌ bad input path %s: %w", input, err)
	}
	input = abs

	// Boot classpath members must carry the host/device boundary so
	// dexopt emits device-correct dependency names for them.
	bootDir := d.Paths.Boot.Dir() + "/"
	if strings.HasPrefix(input, bootDir) {
		input = d.Paths.Boot.String() + "/" + strings.TrimPrefix(input, bootDir)
		d.Logger.Debug("📦 Input is a boot archive, using boundary form", "input", input)
	}

	d.Logger.Info("📦 Optimizing archive", "input", input, "output", output)
	if err := d.Runner.Run(input, output, d.Flags); err != nil {
		return err
	}
	d.Logger.Info("✅ Archive optimized", "output", output)
	return nil
}
