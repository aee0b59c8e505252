package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type palette struct {
	added, removed, changed, path func(a ...any) string
}

func plain(a ...any) string { return fmt.Sprint(a...) }

func colorFunc(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

func (cfg *MainConfig) palette(w io.Writer) palette {
	if !cfg.colored(w) {
		return palette{added: plain, removed: plain, changed: plain, path: plain}
	}
	return palette{
		added:   colorFunc(color.FgGreen),
		removed: colorFunc(color.FgRed),
		changed: colorFunc(color.FgYellow),
		path:    colorFunc(color.FgCyan, color.Bold),
	}
}
