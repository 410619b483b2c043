// Package dexopt translates the human-facing configuration into dexopt's
// terse flag string and drives the optimizer over each unit of work.
package dexopt

import (
	"strings"

	"github.com/provide-io/dexpreopt/internal/config"
)

// OptimizeFlags renders the compact flag string dexopt consumes. Token
// order is fixed: verify, optimize, register maps, uniprocessor. The
// register-map token only appears when maps are enabled; the others are
// always present.
func OptimizeFlags(cfg *config.Config) string {
	tokens := make([]string, 0, 4)

	switch cfg.Verify {
	case config.VerifyNone:
		tokens = append(tokens, "v=n")
	case config.VerifyRemote:
		tokens = append(tokens, "v=r")
	case config.VerifyAll:
		tokens = append(tokens, "v=a")
	}

	switch cfg.Optimize {
	case config.OptimizeNone:
		tokens = append(tokens, "o=n")
	case config.OptimizeVerified:
		tokens = append(tokens, "o=v")
	case config.OptimizeAll:
		tokens = append(tokens, "o=a")
	}

	if cfg.RegisterMaps {
		tokens = append(tokens, "m=y")
	}

	if cfg.Uniprocessor {
		tokens = append(tokens, "u=y")
	} else {
		tokens = append(tokens, "u=n")
	}

	return strings.Join(tokens, ",")
}
