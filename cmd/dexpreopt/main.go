package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/provide-io/dexpreopt/internal/config"
	"github.com/provide-io/dexpreopt/internal/dexopt"
	"github.com/provide-io/dexpreopt/internal/resolve"
	"github.com/provide-io/dexpreopt/pkg/logging"
)

const version = "1.1.0"

var rootCmd *cobra.Command

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "dexpreopt [options] [--] [input output]",
		Short: "Run dexopt over bytecode archives before device install",
		Long: `Drive the host-side dexopt optimizer over compiled bytecode archives
before they are installed onto a target device. Locates the build tree,
product tree, and optimizer, then processes a single archive or, with
--bootstrap, the whole ordered boot classpath.`,
		// The option grammar (--name=value only, "--" terminator, errors
		// accumulated and reported together) is a compatibility contract,
		// so tokens are parsed by internal/config instead of pflag.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               run,
	}
}

func main() {
	// Handle --version or -V before cobra runs
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("dexpreopt %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		var exitErr *dexopt.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, errs := config.Parse(args)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "dexpreopt:", err)
		}
		config.Usage(os.Stderr)
		return fmt.Errorf("%d configuration error(s)", len(errs))
	}

	logger := logging.NewLogger("dexpreopt", cfg.LogLevel, os.Stderr)

	paths, err := resolve.Resolve(cfg, logger)
	if err != nil {
		logger.Error("❌ Path resolution failed", "error", err)
		return err
	}

	driver := &dexopt.Driver{
		Paths:  paths,
		Flags:  dexopt.OptimizeFlags(cfg),
		Runner: &dexopt.ExecRunner{DexoptPath: paths.DexoptPath, Logger: logger},
		Logger: logger,
	}
	if err := driver.Run(cfg); err != nil {
		var exitErr *dexopt.ExitError
		if errors.As(err, &exitErr) {
			logger.Error("❌ Optimizer failed", "status", exitErr.Code)
		} else {
			logger.Error("❌ Invocation failed", "error", err)
		}
		return err
	}
	return nil
}
