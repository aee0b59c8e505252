package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/brunoga/sitepatch"
	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/config"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file (yaml)'"`
	Y          bool   `cli:"name=y aliases=yaml desc='write documents as yaml'"`
	Color      bool   `cli:"name=color desc='force colored output'"`
	Verbose    bool   `cli:"name=v aliases=verbose desc='log at debug level'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// settings loads the configuration file, or the defaults when none is
// given.
func (cfg *MainConfig) settings() (config.Config, error) {
	if cfg.ConfigFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfg.ConfigFile)
}

func (cfg *MainConfig) logger(c config.Config) (*slog.Logger, error) {
	lc := c.Log
	if cfg.Verbose {
		lc.Level = "debug"
	}
	return lc.NewLogger(os.Stderr)
}

func (cfg *MainConfig) format() sitepatch.Format {
	if cfg.Y {
		return sitepatch.FormatYAML
	}
	return sitepatch.FormatJSON
}

func (cfg *MainConfig) blockOpts(c config.Config) []block.Option {
	return []block.Option{block.WithSlots(c.SlotFunc())}
}

// colored reports whether output to w should use color.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) write(w io.Writer, v any) error {
	data, err := sitepatch.Marshal(v, cfg.format())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type ApplyConfig struct {
	*MainConfig
	Patch  string `cli:"name=p aliases=patch desc='patch file (json or yaml)'"`
	If     string `cli:"name=if desc='only apply when this expression holds on the document'"`
	Strict bool   `cli:"name=strict desc='validate the patch with strict JSON Patch semantics'"`
	Page   string `cli:"name=page desc='page to report changes for (default first page)'"`
	Report bool   `cli:"name=r aliases=report desc='print the change report instead of the document'"`

	Apply *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Page string `cli:"name=page desc='page to compare (default first page)'"`
	JSON bool   `cli:"name=json desc='print the change report as json'"`

	Diff *cli.Command
}

type LocateConfig struct {
	*MainConfig
	Page string `cli:"name=page desc='page to search (default first page)'"`

	Locate *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}

func loadDocument(arg string) (sitepatch.Document, error) {
	data, err := readInput(arg)
	if err != nil {
		return nil, err
	}
	doc, err := sitepatch.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return doc, nil
}
