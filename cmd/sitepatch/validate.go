package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/brunoga/sitepatch"
	"github.com/brunoga/sitepatch/patch"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate requires a patch", cli.ErrUsage)
	}
	p, err := sitepatch.LoadPatch(args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	docPath, err := docArg(args[1:])
	if err != nil {
		return err
	}
	doc, err := loadDocument(docPath)
	if err != nil {
		return err
	}

	pal := cfg.palette(cc.Out)
	if err := patch.ValidateStrict(doc, p); err != nil {
		fmt.Fprintln(cc.Out, pal.removed("invalid:"), err)
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintf(cc.Out, "%s %d operations\n", pal.added("ok:"), len(p))
	return nil
}
