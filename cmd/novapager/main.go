package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/tuannm99/novapager/internal"
	"github.com/tuannm99/novapager/internal/shell"
	"github.com/tuannm99/novapager/internal/storage"
)

var CLI struct {
	Config string `name:"config" short:"c" help:"Config file (YAML)" type:"path"`
	DB     string `name:"db" help:"Page file, overrides storage.path" type:"path"`

	Init  InitCmd  `cmd:"" help:"Create a zero-filled page file"`
	Get   GetCmd   `cmd:"" help:"Show one page"`
	Fill  FillCmd  `cmd:"" help:"Set every byte of a page and write it"`
	Flush FlushCmd `cmd:"" help:"Flush one page to stable storage"`
	Stat  StatCmd  `cmd:"" help:"Show file size, page count and optional digests"`
	Shell ShellCmd `cmd:"" default:"1" help:"Interactive shell (default)"`
}

type appContext struct {
	cfg *internal.NovaPagerConfig
	log *slog.Logger
}

func (a *appContext) openPager() (*storage.Pager, error) {
	return storage.Open(a.cfg.Storage.Path, storage.WithLogger(a.log))
}

type InitCmd struct {
	Pages uint32 `name:"pages" short:"n" help:"Number of pages (default: storage.create_pages)"`
}

func (c *InitCmd) Run(app *appContext) error {
	pages := c.Pages
	if pages == 0 {
		pages = app.cfg.Storage.CreatePages
	}
	if err := storage.CreateFile(app.cfg.Storage.Path, pages); err != nil {
		return err
	}
	app.log.Info("created page file", "path", app.cfg.Storage.Path, "pages", pages)
	return nil
}

type GetCmd struct {
	Page uint32 `arg:"" help:"Page number"`
	Dump bool   `name:"dump" help:"Hex dump the whole page"`
}

func (c *GetCmd) Run(app *appContext) error {
	p, err := app.openPager()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	page, err := p.GetPage(c.Page)
	if err != nil {
		return err
	}
	fmt.Println(shell.Describe(page))
	if c.Dump {
		fmt.Print(hex.Dump(page.Data[:]))
	}
	return nil
}

type FillCmd struct {
	Page  uint32 `arg:"" help:"Page number"`
	Value string `arg:"" help:"Byte value, e.g. 170 or 0xAA"`
}

func (c *FillCmd) Run(app *appContext) error {
	b, err := strconv.ParseUint(c.Value, 0, 8)
	if err != nil {
		return fmt.Errorf("invalid byte %q: %w", c.Value, err)
	}

	p, err := app.openPager()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	page, err := p.GetPage(c.Page)
	if err != nil {
		return err
	}
	page.Fill(byte(b))
	if err := p.WritePage(page); err != nil {
		return err
	}
	if err := p.Flush(c.Page); err != nil {
		return err
	}
	app.log.Info("page written", "page", c.Page, "value", b)
	return nil
}

type FlushCmd struct {
	Page uint32 `arg:"" help:"Page number"`
}

func (c *FlushCmd) Run(app *appContext) error {
	p, err := app.openPager()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	if _, err := p.GetPage(c.Page); err != nil {
		return err
	}
	return p.Flush(c.Page)
}

type StatCmd struct {
	Digest bool `name:"digest" help:"Print the digest of every page"`
}

func (c *StatCmd) Run(app *appContext) error {
	p, err := app.openPager()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	fmt.Printf("path:      %s\n", p.Path())
	fmt.Printf("pages:     %d\n", p.NumPages())
	fmt.Printf("page size: %d\n", storage.PageSize)
	fmt.Printf("cache:     %d slots\n", storage.CacheCapacity)

	if !c.Digest {
		return nil
	}
	for n := uint32(0); n < p.NumPages(); n++ {
		page, err := p.GetPage(n)
		if err != nil {
			return err
		}
		fmt.Printf("%8d  %016x\n", n, page.Digest())
	}
	return nil
}

type ShellCmd struct{}

func (c *ShellCmd) Run(app *appContext) error {
	p, err := app.openPager()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	sh := shell.New(p, os.Stdout, app.cfg.Shell.Prompt)
	return sh.RunInteractive(app.cfg.Shell.History)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("novapager"),
		kong.Description("Inspect and edit fixed-size page files through a direct-mapped page cache"),
		kong.UsageOnError(),
	)

	cfg, err := internal.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if CLI.DB != "" {
		cfg.Storage.Path = CLI.DB
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)

	err = ctx.Run(&appContext{cfg: cfg, log: logger})
	ctx.FatalIfErrorf(err)
}
