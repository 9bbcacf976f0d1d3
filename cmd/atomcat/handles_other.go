//go:build !linux && !darwin
// +build !linux,!darwin

package main

import "github.com/urfave/cli"

// extraCommands is empty here: named pipes have no SCM_RIGHTS equivalent,
// so the handle-passing demo only exists on linux/darwin.
var extraCommands = []cli.Command{}
