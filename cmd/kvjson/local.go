package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	kvjson "github.com/kvjson/go"
)

func localCommand() *cli.Command {
	return &cli.Command{
		Name:  "local_parser",
		Usage: "convert a localization text file, or a folder of them, to JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "path to text file to be parsed to JSON",
			},
			&cli.StringFlag{
				Name:    "folder",
				Aliases: []string{"d"},
				Usage:   "path to folder of text files to be parsed to JSON",
			},
			&cli.BoolFlag{
				Name:    "skip_json",
				Aliases: []string{"s"},
				Usage:   "print the cleaned text file instead of JSON",
			},
			&cli.BoolFlag{
				Name:    "keep_empty_files",
				Aliases: []string{"k"},
				Usage:   "keep files without topic sections as objects instead of dropping them",
				EnvVars: []string{"KVJSON_KEEP_EMPTY"},
			},
			&cli.StringSliceFlag{
				Name:    "sub_folders",
				Aliases: []string{"g"},
				Usage:   "read --folder as the localization root and convert these sub-folders (1 to 7)",
			},
			&cli.StringFlag{
				Name:    "repairs",
				Usage:   "YAML file replacing the built-in structural repair table",
				EnvVars: []string{"KVJSON_REPAIRS"},
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "files converted in parallel (0 = number of CPUs)",
				EnvVars: []string{"KVJSON_JOBS"},
			},
		},
		Action: runLocal,
	}
}

type localArgs struct {
	file       string
	folder     string
	skip       bool
	subFolders []string
}

func (a localArgs) validate() error {
	switch {
	case a.file == "" && a.folder == "":
		return errors.New("one of --file or --folder is required")
	case a.file != "" && a.folder != "":
		return errors.New("--file and --folder cannot be used together")
	case a.skip && a.folder != "":
		return errors.New("--skip_json cannot be used with --folder")
	case len(a.subFolders) > 0 && a.folder == "":
		return errors.New("--sub_folders requires --folder")
	case len(a.subFolders) > kvjson.MaxSubFolders:
		return fmt.Errorf("--sub_folders takes at most %d names", kvjson.MaxSubFolders)
	}
	return nil
}

func runLocal(c *cli.Context) error {
	args := localArgs{
		file:       c.String("file"),
		folder:     c.String("folder"),
		skip:       c.Bool("skip_json"),
		subFolders: c.StringSlice("sub_folders"),
	}
	if err := args.validate(); err != nil {
		return cli.Exit(err, 2)
	}

	log := newLogger(c)
	opts := kvjson.Options{
		KeepEmptyFiles: c.Bool("keep_empty_files"),
		SkipConversion: args.skip,
		Jobs:           c.Int("jobs"),
		Logger:         log,
	}
	if path := c.String("repairs"); path != "" {
		repairs, err := kvjson.LoadRepairsFile(path)
		if err != nil {
			return cli.Exit(err, 1)
		}
		opts.Repairs = repairs
	}

	conv, err := kvjson.NewConverter(opts)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if args.file != "" {
		res, err := conv.ConvertFile(args.file)
		if err != nil {
			return cli.Exit(err, 1)
		}
		if !res.Include {
			log.Info("file has no topic sections, nothing to output", "path", args.file)
			return nil
		}
		if res.Value == nil {
			_, err := fmt.Fprintln(c.App.Writer, res.Text)
			return err
		}
		return writeValue(c, res.Value)
	}

	var out *kvjson.Value
	if len(args.subFolders) > 0 {
		out, err = conv.ConvertSubFolders(c.Context, args.folder, args.subFolders)
	} else {
		out, err = conv.ConvertFolder(c.Context, args.folder)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	return writeValue(c, out)
}

func writeValue(c *cli.Context, v *kvjson.Value) error {
	data := kvjson.Encode(v)
	if c.Bool("pretty") {
		indented, err := kvjson.EncodeIndent(v, "  ")
		if err != nil {
			return cli.Exit(err, 1)
		}
		data = indented
	}
	_, err := fmt.Fprintln(c.App.Writer, string(data))
	return err
}
