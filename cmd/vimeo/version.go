package main

import (
	"fmt"
	"os"

	// Packages
	version "github.com/mutablelogic/go-vimeo/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommands struct {
	Version VersionCommand `cmd:"" group:"OTHER" help:"Print version information"`
}

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	fmt.Fprintln(os.Stdout, string(version.JSON(execName())))
	return nil
}
