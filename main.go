package main

import (
	"fmt"
	"os"

	"github.com/df07/go-mis-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render demo worlds with a multiple importance sampling path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-levels",
			Usage: "per-module levels, e.g. scene=debug,renderer=warning",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame of a demo world",
			Description: `
Build one of the demo worlds, trace it on every available core and write the
gamma-encoded result as a PNG. Width and height default to the world's
suggested size.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell-box",
					Usage: "demo world to render (see list-worlds)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 100,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: 50,
					Usage: "maximum path depth",
				},
				cli.IntFlag{
					Name:  "threads, t",
					Usage: "number of render workers (0 for one per core)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for the world layout and the render",
				},
				cli.StringFlag{
					Name:  "mode",
					Value: "default",
					Usage: "integrator: default or normals",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 2,
					Usage: "gamma used to encode the frame",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: renderFrame,
		},
		{
			Name:   "list-worlds",
			Usage:  "list the demo worlds",
			Action: listWorlds,
		},
	}
	return app
}

func setupLogging(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	if err := log.SetModuleLevels(ctx.GlobalString("log-levels")); err != nil {
		return fmt.Errorf("invalid --log-levels: %w", err)
	}
	return nil
}
