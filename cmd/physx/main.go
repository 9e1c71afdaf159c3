package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"physx/internal/commands"
	"physx/internal/env"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	reg := commands.NewRegistry("physx")
	registerRun(reg)
	registerInit(reg)
	registerInspect(reg)

	err := reg.Execute(os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		reg.Usage(os.Stderr)
		os.Exit(2)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "physx:", err)
		os.Exit(1)
	}
}
