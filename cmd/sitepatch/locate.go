package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/brunoga/sitepatch/block"
)

func locate(cfg *LocateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Locate.Parse(cc, args)
	if err != nil {
		cfg.Locate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: locate requires a block id", cli.ErrUsage)
	}
	id := args[0]
	docPath, err := docArg(args[1:])
	if err != nil {
		return err
	}
	settings, err := cfg.settings()
	if err != nil {
		return err
	}
	doc, err := loadDocument(docPath)
	if err != nil {
		return err
	}
	loc, err := block.Locate(doc, cfg.Page, id, cfg.blockOpts(settings)...)
	if err != nil {
		return err
	}

	pal := cfg.palette(cc.Out)
	fmt.Fprintf(cc.Out, "%s %s\n", pal.path("path:"), loc.Path)
	fmt.Fprintf(cc.Out, "page:   %s (%s)\n", loc.PageID, loc.PagePath)
	fmt.Fprintf(cc.Out, "array:  %s [%d]\n", loc.ParentPath, loc.Index)
	if loc.ParentID != "" {
		fmt.Fprintf(cc.Out, "parent: %s.%s\n", loc.ParentID, loc.Slot)
	}
	if slots := block.SlotsOf(loc, cfg.blockOpts(settings)...); len(slots) > 0 {
		fmt.Fprintf(cc.Out, "slots:  %v\n", slots)
	}
	return nil
}
