package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nbmd/internal/config"
)

// runConfig prints the effective configuration as YAML: defaults, then
// the config file, then NBMD_* variables.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseConfigFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConfigUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", ErrUsage, positional)
	}

	logger := newLogger(env.Stderr, flags.quiet, flags.verbose)
	warnUnknownEnvVars(logger, env.Environ())

	envCfg, err := loadEnvConfig(env.LookupEnv)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(flags.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
