package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/brunoga/sitepatch/changes"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	settings, err := cfg.settings()
	if err != nil {
		return err
	}
	before, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	after, err := loadDocument(args[1])
	if err != nil {
		return err
	}

	opts := cfg.blockOpts(settings)
	r := changes.Detect(before, after, cfg.Page, opts...)
	if cfg.JSON || cfg.Y {
		if err := cfg.write(cc.Out, r); err != nil {
			return err
		}
	} else {
		printReport(cc.Out, cfg.palette(cc.Out), r, changes.Describe(before, after, cfg.Page, r, opts...))
	}
	if !r.Empty() {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func printReport(w io.Writer, pal palette, r changes.Report, diffs []changes.PropDiff) {
	switch {
	case r.Empty():
		fmt.Fprintln(w, "no changes")
		return
	case len(r.Removed) > 0:
		for _, id := range r.Removed {
			fmt.Fprintf(w, "%s %s\n", pal.removed("-"), id)
		}
	default:
		for _, c := range r.Changes {
			switch {
			case c.BlockID == changes.Structural:
				fmt.Fprintf(w, "%s structural change: %s\n", pal.changed("!"), strings.Join(c.ChangedProps, ", "))
			case len(c.ChangedProps) == 0:
				fmt.Fprintf(w, "%s %s\n", pal.added("+"), c.BlockID)
			default:
				fmt.Fprintf(w, "%s %s: %s\n", pal.changed("~"), c.BlockID, strings.Join(c.ChangedProps, ", "))
			}
		}
	}
	for _, d := range diffs {
		fmt.Fprintf(w, "  %s ", pal.path(d.BlockID+"."+d.Prop+":"))
		for _, seg := range d.Diffs {
			switch seg.Type {
			case diffpatch.DiffDelete:
				fmt.Fprint(w, pal.removed("[-"+seg.Text+"-]"))
			case diffpatch.DiffInsert:
				fmt.Fprint(w, pal.added("{+"+seg.Text+"+}"))
			default:
				fmt.Fprint(w, seg.Text)
			}
		}
		fmt.Fprintln(w)
	}
	if r.FullRebuild() {
		fmt.Fprintln(w, "full rebuild required")
	} else if c, ok := r.Targeted(); ok {
		fmt.Fprintf(w, "targeted update of %s\n", c.BlockID)
	}
}
