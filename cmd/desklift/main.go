package main

import (
	"github.com/robotalks/desklift/pkg/cli/sh"
	"github.com/robotalks/desklift/pkg/link"

	_ "github.com/robotalks/desklift/pkg/cli/cmds/lift"
)

//go-build: CGO_ENABLED=0

func init() {
	link.SetupFlags()
}

func main() {
	sh.Main()
}
