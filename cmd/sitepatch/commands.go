package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "sitepatch").
		WithSynopsis("sitepatch [opts] command [opts]").
		WithDescription("sitepatch edits page-builder documents with patches and reports what changed.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sitepatchMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			DiffCommand(cfg),
			LocateCommand(cfg),
			ValidateCommand(cfg))
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a", "ap").
		WithSynopsis("apply -p patch [opts] [document]").
		WithDescription("apply a patch to a document and print the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [opts] before after").
		WithDescription("report the blocks that changed between two documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func LocateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LocateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Locate, "locate").
		WithAliases("l", "loc").
		WithSynopsis("locate [opts] <block id> [document]").
		WithDescription("print the path of a block").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return locate(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate <patch> [document]").
		WithDescription("check a patch against strict JSON Patch semantics without applying it").
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}
