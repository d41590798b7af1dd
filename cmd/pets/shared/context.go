// Package shared holds the context passed to all CLI commands.
package shared

import "github.com/go-ports/pets/internal/service"

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// Home overrides the pets home directory.
	// When empty, resolution falls through to PETS_HOME env var → persisted config → ~/.pets.
	Home string

	// DataFile overrides the data file configured for the home directory.
	DataFile string
}

// Service opens the ledger selected by the global flags.
func (c *Context) Service() (*service.Service, error) {
	return service.New(c.Home, c.DataFile)
}
