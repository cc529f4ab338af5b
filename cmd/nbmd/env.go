package main

import (
	"io"
	"os"
	"time"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and process environment lookups.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(key string) (string, bool)
	Environ   func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
	}
}
