package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Filters *webarticle.FilterRegistry

	// Sitemaps reads URL lists for batch --sitemap.
	Sitemaps webarticle.SitemapReader

	// BuildPipeline wires a Pipeline for a set of fetch flags. The returned
	// func releases the fetcher and cache.
	BuildPipeline func(flags FetchFlags) (*crawl.Pipeline, func() error, error)

	// OpenCache opens the cache selected by flags.
	OpenCache func(flags CacheFlags) (webarticle.Cache, func() error, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag defaults from a TOML file."`
	Verbose bool            `short:"v" help:"Log progress to stderr."`

	Extract ExtractCmd `cmd:"" default:"withargs" help:"Extract the main text of a web page or local file"`
	Batch   BatchCmd   `cmd:"" help:"Extract many pages concurrently"`
	Compare CompareCmd `cmd:"" help:"Compare extractors on one page"`
	Filters FiltersCmd `cmd:"" help:"List available pre-filters"`
	Purge   PurgeCmd   `cmd:"" help:"Delete old cache entries"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// CacheFlags select the cache backend.
type CacheFlags struct {
	CacheDir string `short:"d" default:"_cache" env:"WEBARTICLE_CACHE_DIR" help:"Directory where cache files are stored."`
	CacheDB  string `name:"cache-db" env:"WEBARTICLE_CACHE_DB" help:"SQLite file used as cache instead of --cache-dir."`
}

// FetchFlags configure how pages are fetched and extracted.
type FetchFlags struct {
	CacheFlags `embed:""`

	Encoding        string        `short:"e" help:"Character encoding of the page. Detected when empty."`
	Cache           bool          `short:"c" help:"Store and load data from the cache."`
	UserAgent       string        `short:"u" env:"WEBARTICLE_USER_AGENT" help:"User agent sent with requests and checked against robots.txt."`
	Filters         string        `short:"f" help:"Comma-separated pre-filters applied before extraction."`
	IgnoreRobotstxt bool          `short:"i" name:"ignore-robotstxt" help:"Do not check robots.txt."`
	OnlyMIMETypes   []string      `short:"m" name:"only-mime-types" sep:"," help:"Only process resources of these MIME types."`
	Blur            int           `short:"b" default:"5" help:"Path levels grouped together by the cluster extractor."`
	Timeout         time.Duration `short:"t" default:"5s" help:"Timeout for a single fetch."`
	Raw             bool          `help:"Print the tidied HTML instead of extracted text."`
	Render          bool          `help:"Render pages in headless Chrome before extraction."`
	Extractor       string        `default:"cluster" enum:"cluster,readability,trafilatura" help:"Extraction algorithm (${enum})."`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	FetchFlags `embed:""`

	URL   string `arg:"" help:"URL or local file name."`
	Title bool   `help:"Print the page title on the first line."`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	FetchFlags `embed:""`

	URLs        []string `arg:"" optional:"" name:"url" help:"URLs or local file names."`
	Sitemap     string   `help:"Also extract every URL listed in this sitemap."`
	Concurrency int      `default:"4" help:"Pages extracted at once."`
	Title       bool     `help:"Print each page title after its header."`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain (0 disables limiting)."`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	FetchFlags `embed:""`

	URL      string `arg:"" help:"URL or local file name."`
	Expected    string `type:"existingfile" help:"File holding the expected article text."`
	ProbeRender bool   `help:"Also fetch the page in a browser and report whether rendering adds text."`
}

// FiltersCmd is the "filters" subcommand.
type FiltersCmd struct{}

// PurgeCmd is the "purge" subcommand.
type PurgeCmd struct {
	CacheFlags `embed:""`

	OlderThan time.Duration `default:"720h" help:"Delete entries last written longer ago than this."`
	Kind      string        `enum:"all,text,raw,robots" default:"all" help:"Only delete entries of this kind (${enum})."`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
