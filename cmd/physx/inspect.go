package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"physx/internal/commands"
	"physx/internal/physics"
	"physx/internal/simconfig"
)

func registerInspect(reg *commands.Registry) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	configPath := fs.String("config", simconfig.DefaultPath, "YAML config file")
	startup := fs.String("startup", "", "file to load bodies from (default from config)")
	digits := fs.Int("digits", 6, "decimal places in the output")

	reg.Register("inspect", "print bounds, collisions and centre of mass of a startup file", fs, func([]string) error {
		cfg, err := loadConfig(*configPath, fs, map[string]func(*simconfig.Config){
			"startup": func(c *simconfig.Config) { c.StartupFile = *startup },
		})
		if err != nil {
			return err
		}
		w, err := cfg.NewWorld(nil)
		if err != nil {
			return err
		}
		if err := w.LoadFrom(cfg.StartupFile); err != nil {
			return err
		}
		return inspect(os.Stdout, w, *digits)
	})
}

func inspect(out io.Writer, w *physics.World, digits int) error {
	fmt.Fprintln(out, w)
	for _, b := range w.Bodies() {
		bounds := b.Bounds().Offset(b.Position)
		lo, err := physics.Round(bounds.Min, digits)
		if err != nil {
			return err
		}
		hi, err := physics.Round(bounds.Max, digits)
		if err != nil {
			return err
		}
		hit := "none"
		if other := b.Collision(w); other != nil {
			hit = other.String()
		}
		fmt.Fprintf(out, "%s: bounds %s..%s, collides with %s\n", b, lo, hi, hit)
	}
	com, err := w.CenterOfMass()
	if err != nil {
		fmt.Fprintf(out, "centre of mass: %v\n", err)
		return nil
	}
	com, err = physics.Round(com, digits)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "centre of mass: %s\n", com)
	return nil
}
