package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kvjson/go/vdata"
)

func vdataCommand() *cli.Command {
	return &cli.Command{
		Name:      "vdata_parser",
		Usage:     "extract a VDATA file from a VPK and convert it to JSON",
		ArgsUsage: "<path_to_vpk> <path_to_vdata>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "skip_json",
				Aliases: []string{"s"},
				Usage:   "print the extracted VDATA text instead of JSON",
			},
			&cli.StringFlag{
				Name:    "decompiler",
				Usage:   "decompiler executable",
				Value:   vdata.DefaultBinary,
				EnvVars: []string{"KVJSON_DECOMPILER"},
			},
			&cli.StringFlag{
				Name:  "block",
				Usage: "name of the block to extract",
				Value: vdata.DefaultBlock,
			},
		},
		Action: runVdata,
	}
}

func runVdata(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(errors.New("expected <path_to_vpk> <path_to_vdata>"), 2)
	}
	vpk, path := c.Args().Get(0), c.Args().Get(1)

	log := newLogger(c)
	ex := &vdata.Extractor{
		Binary: c.String("decompiler"),
		Block:  c.String("block"),
	}

	log.Debug("extracting data block", "vpk", vpk, "path", path, "decompiler", ex.Binary)
	text, err := ex.Extract(c.Context, vpk, path)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if c.Bool("skip_json") {
		_, err := fmt.Fprintln(c.App.Writer, text)
		return err
	}

	v, err := vdata.Convert(text)
	if err != nil {
		return cli.Exit(fmt.Errorf("%s: %w", path, err), 1)
	}
	return writeValue(c, v)
}
