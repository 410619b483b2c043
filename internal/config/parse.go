package config

import (
	"fmt"
	"strings"
)

// ParseError describes one rejected command-line token. Parsing never
// stops at the first bad token; every error is reported so the user sees
// all of them at once.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Token, e.Reason)
}

type optionSpec struct {
	takesValue bool
	apply      func(cfg *Config, token, value string) []error
}

func setString(dst func(cfg *Config) *string) optionSpec {
	return optionSpec{
		takesValue: true,
		apply: func(cfg *Config, token, value string) []error {
			*dst(cfg) = value
			return nil
		},
	}
}

func setBool(dst func(cfg *Config) *bool, v bool) optionSpec {
	return optionSpec{
		apply: func(cfg *Config, token, value string) []error {
			*dst(cfg) = v
			return nil
		},
	}
}

var options = map[string]optionSpec{
	"build-dir":   setString(func(c *Config) *string { return &c.BuildDir }),
	"dexopt":      setString(func(c *Config) *string { return &c.DexoptPath }),
	"product-dir": setString(func(c *Config) *string { return &c.ProductDir }),
	"boot-dir":    setString(func(c *Config) *string { return &c.BootDir }),

	"bootstrap":        setBool(func(c *Config) *bool { return &c.Bootstrap }, true),
	"no-register-maps": setBool(func(c *Config) *bool { return &c.RegisterMaps }, false),
	"uniprocessor":     setBool(func(c *Config) *bool { return &c.Uniprocessor }, true),

	"boot-jars": {takesValue: true, apply: applyBootJars},
	"verify":    {takesValue: true, apply: applyVerify},
	"optimize":  {takesValue: true, apply: applyOptimize},
	"log-level": {takesValue: true, apply: applyLogLevel},
}

func applyBootJars(cfg *Config, token, value string) []error {
	if value == "" {
		return []error{&ParseError{token, "boot-jar list must not be empty"}}
	}
	jars := strings.Split(value, ":")
	var errs []error
	for _, jar := range jars {
		if jar == "" {
			errs = append(errs, &ParseError{token, "empty boot-jar name in list"})
		}
	}
	if errs != nil {
		return errs
	}
	cfg.BootJars = jars
	return nil
}

func applyVerify(cfg *Config, token, value string) []error {
	switch VerifyLevel(value) {
	case VerifyNone, VerifyRemote, VerifyAll:
		cfg.Verify = VerifyLevel(value)
		return nil
	}
	return []error{&ParseError{token, "verify level must be none, remote, or all"}}
}

func applyOptimize(cfg *Config, token, value string) []error {
	switch OptimizeLevel(value) {
	case OptimizeNone, OptimizeVerified, OptimizeAll:
		cfg.Optimize = OptimizeLevel(value)
		return nil
	}
	return []error{&ParseError{token, "optimize level must be none, verified, or all"}}
}

func applyLogLevel(cfg *Config, token, value string) []error {
	switch value {
	case "trace", "debug", "info", "warn", "error":
		cfg.LogLevel = value
		return nil
	}
	return []error{&ParseError{token, "log level must be trace, debug, info, warn, or error"}}
}

// Parse consumes the full argument list and produces the Config plus
// every configuration error found. Options take the shapes
// "--name=value" and "--name"; a bare "--" ends option processing and
// consumes itself; the first token matching neither shape ends option
// processing without being consumed. Remaining tokens are positional:
// none are allowed in bootstrap mode, exactly input and output
// otherwise.
func Parse(args []string) (*Config, []error) {
	cfg := Default()
	var errs []error

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if !strings.HasPrefix(arg, "--") {
			break
		}

		name, value, hasValue := strings.Cut(arg[2:], "=")
		spec, known := options[name]
		if !known {
			errs = append(errs, &ParseError{arg, "unknown option"})
			continue
		}
		if spec.takesValue && !hasValue {
			errs = append(errs, &ParseError{arg, "option requires a value"})
			continue
		}
		if !spec.takesValue && hasValue {
			errs = append(errs, &ParseError{arg, "option does not take a value"})
			continue
		}
		errs = append(errs, spec.apply(cfg, arg, value)...)
	}

	rest := args[i:]
	if cfg.Bootstrap {
		if len(rest) != 0 {
			errs = append(errs, &ParseError{
				Reason: fmt.Sprintf("bootstrap mode takes no input/output arguments, got %d", len(rest)),
			})
		}
	} else {
		if len(rest) != 2 {
			errs = append(errs, &ParseError{
				Reason: fmt.Sprintf("expected exactly <input> <output>, got %d arguments", len(rest)),
			})
		} else {
			cfg.InputFile = rest[0]
			cfg.OutputFile = rest[1]
		}
	}

	return cfg, errs
}
