// The blockview tool segments a binary image's code and data sections into
// disassembly blocks and prints them as colored text.
//
// Separation of concern mirrors the teacher's x tool: a thin lifter opens
// the object file and builds the section/symbol/decoder views, then hands
// everything to the engine.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mewkiz/pkg/term"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var (
	// dbg is a logger which logs debug messages with "blockview:" prefix to
	// standard error.
	dbg = log.New(os.Stderr, term.MagentaBold("blockview:")+" ", 0)
	// warn is a logger which logs warning messages with "warning:" prefix to
	// standard error.
	warn = log.New(os.Stderr, term.RedBold("warning:")+" ", 0)
)

func main() {
	app := &cli.App{
		Name:  "blockview",
		Usage: "segment a binary image into disassembly blocks",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "q", Usage: "suppress debug messages"},
			&cli.StringFlag{Name: "config", Usage: "path to an optional blockview.json config sidecar", Value: "blockview.json"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("q") {
				dbg.SetOutput(io.Discard)
			}
			return nil
		},
		Commands: []*cli.Command{
			viewCommand,
			boundariesCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

var viewCommand = &cli.Command{
	Name:      "view",
	Usage:     "print every block in the binary, in address order",
	ArgsUsage: "binary",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return errors.New("missing binary path")
		}
		return runView(path, c.String("config"))
	},
}

var boundariesCommand = &cli.Command{
	Name:      "boundaries",
	Usage:     "print the computed block boundary addresses",
	ArgsUsage: "binary",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return errors.New("missing binary path")
		}
		return runBoundaries(path)
	},
}

func runView(path, configPath string) error {
	prog, err := newProgram(path)
	if err != nil {
		return errors.WithStack(err)
	}
	cfg, err := loadConfig(configPath, prog.decoder.MaxInstructionWidth())
	if err != nil {
		return errors.WithStack(err)
	}
	prog.engine.Config = cfg

	boundaries, err := prog.engine.ComputeBlockBoundaries()
	if err != nil {
		return errors.WithStack(err)
	}
	dbg.Printf("computed %d boundaries across %d sections", len(boundaries), len(prog.sections.Sections()))

	w := renderer{out: os.Stdout}
	for _, a := range boundaries {
		blocks, err := prog.engine.ParseBlocks(a)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, b := range blocks {
			w.render(b)
		}
	}
	return nil
}

func runBoundaries(path string) error {
	prog, err := newProgram(path)
	if err != nil {
		return errors.WithStack(err)
	}
	boundaries, err := prog.engine.ComputeBlockBoundaries()
	if err != nil {
		return errors.WithStack(err)
	}
	for _, a := range boundaries {
		fmt.Println(a)
	}
	return nil
}
