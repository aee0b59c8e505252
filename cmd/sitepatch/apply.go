package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/brunoga/sitepatch"
	"github.com/brunoga/sitepatch/changes"
	"github.com/brunoga/sitepatch/patch"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Patch == "" {
		return fmt.Errorf("%w: apply requires -p <patch>", cli.ErrUsage)
	}
	docPath, err := docArg(args)
	if err != nil {
		return err
	}

	settings, err := cfg.settings()
	if err != nil {
		return err
	}
	log, err := cfg.logger(settings)
	if err != nil {
		return err
	}
	cloner, err := settings.Cloner()
	if err != nil {
		return err
	}
	opts := []patch.Option{
		patch.WithCloner(cloner),
		patch.WithStrict(cfg.Strict || settings.Strict),
		patch.WithLogger(log),
	}
	if cfg.If != "" {
		cond, err := patch.NewCondition(cfg.If)
		if err != nil {
			return fmt.Errorf("%w: -if: %w", cli.ErrUsage, err)
		}
		opts = append(opts, patch.WithCondition(cond))
	}

	doc, err := loadDocument(docPath)
	if err != nil {
		return err
	}
	p, err := sitepatch.LoadPatch(cfg.Patch)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", cfg.Patch, err)
	}

	res := patch.NewApplier(opts...).Apply(doc, p)
	if !res.Success {
		pal := cfg.palette(os.Stderr)
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, pal.removed("error:"), e)
		}
		return cli.ExitCodeErr(1)
	}
	log.Debug("patch applied", "patch", cfg.Patch, "operations", len(p))

	if cfg.Report {
		r := changes.Detect(doc, res.Document, cfg.Page, cfg.blockOpts(settings)...)
		return cfg.write(cc.Out, r)
	}
	return cfg.write(cc.Out, res.Document)
}
