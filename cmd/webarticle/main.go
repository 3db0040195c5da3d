package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/crawl"
	"github.com/fwojciec/webarticle/goquery"
	wahttp "github.com/fwojciec/webarticle/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// errorText returns the message of application errors and the full error
// text of anything else.
func errorText(err error) string {
	if webarticle.ErrorCode(err) == webarticle.EINTERNAL {
		return err.Error()
	}
	return webarticle.ErrorMessage(err)
}

// Main represents the program.
type Main struct {
	// ConfigPaths are TOML files read for flag defaults, in order.
	// Missing files are ignored.
	ConfigPaths []string

	// Overrides for end-to-end testing. Nil fields use the real wiring.
	BuildPipeline func(deps *Dependencies, flags FetchFlags) (*crawl.Pipeline, func() error, error)
	Sitemaps      webarticle.SitemapReader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	m := &Main{}
	if path := DefaultConfigPath(); path != "" {
		m.ConfigPaths = []string{path}
	}
	return m
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  slog.New(slog.DiscardHandler),
		Filters: webarticle.NewFilterRegistry(),
	}
	goquery.Register(deps.Filters)

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webarticle"),
		kong.Description("Extract the main article text from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(TOMLLoader, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webarticle --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	deps.Sitemaps = m.Sitemaps
	if deps.Sitemaps == nil {
		client := &http.Client{Timeout: wahttp.DefaultFetchTimeout}
		deps.Sitemaps = wahttp.NewSitemapReader(client, webarticle.DefaultUserAgent())
	}
	deps.BuildPipeline = func(flags FetchFlags) (*crawl.Pipeline, func() error, error) {
		if m.BuildPipeline != nil {
			return m.BuildPipeline(deps, flags)
		}
		return BuildPipeline(deps, flags)
	}
	deps.OpenCache = OpenCache

	return kongCtx.Run(deps)
}
