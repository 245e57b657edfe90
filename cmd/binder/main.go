// ABOUTME: CLI entrypoint for the binder collection tracker with TUI, viewer, MCP, and export modes.
// ABOUTME: Wires config, the xlsx store, and the activity journal behind a flag-based dispatch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/2389-research/binder/collection"
	"github.com/2389-research/binder/config"
	"github.com/2389-research/binder/mcpserver"
	"github.com/2389-research/binder/report"
	"github.com/2389-research/binder/store"
	"github.com/2389-research/binder/tui"
	"github.com/2389-research/binder/web"
)

var version = "dev"

// cliConfig holds all CLI configuration parsed from flags and positional arguments.
type cliConfig struct {
	serveMode     bool
	bind          string
	mcpMode       bool
	statsMode     bool
	exportFormat  string
	exportOut     string
	query         string
	historyN      int
	configPath    string
	dataDir       string
	showVersion   bool
	collectionArg string
}

func main() {
	loadDotEnv(".env")

	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("binder %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags() cliConfig {
	var cfg cliConfig

	fs := flag.NewFlagSet("binder", flag.ContinueOnError)
	fs.BoolVar(&cfg.serveMode, "serve", false, "Start the read-only web viewer")
	fs.StringVar(&cfg.bind, "bind", "", "Viewer listen address, loopback only (default: 127.0.0.1:2389)")
	fs.BoolVar(&cfg.mcpMode, "mcp", false, "Serve read-only MCP tools over stdio")
	fs.BoolVar(&cfg.statsMode, "stats", false, "Print the statistics report and exit")
	fs.StringVar(&cfg.exportFormat, "export", "", "Export the collection: csv or json")
	fs.StringVar(&cfg.exportOut, "out", "", "Export destination file (default: stdout)")
	fs.StringVar(&cfg.query, "q", "", "Filter exported records by substring search")
	fs.IntVar(&cfg.historyN, "history", 0, "Print the n most recent activity entries and exit")
	fs.StringVar(&cfg.configPath, "config", "", "Config file path (default: ~/.config/binder/config.yaml)")
	fs.StringVar(&cfg.dataDir, "data-dir", "", "Data directory for the activity journal (default: $XDG_DATA_HOME/binder)")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(os.Stderr, version)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if fs.NArg() > 0 {
		cfg.collectionArg = fs.Arg(0)
	}

	return cfg
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure, 2 for flag misuse.
func run(cfg cliConfig) int {
	appCfg, err := config.Load(resolveConfigPath(cfg.configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	path := appCfg.CollectionPath(cfg.collectionArg)

	switch {
	case cfg.serveMode:
		return runServe(cfg, appCfg, path)
	case cfg.mcpMode:
		return runMCP(path)
	case cfg.statsMode:
		return runStats(path)
	case cfg.exportFormat != "":
		return runExport(cfg, appCfg, path)
	case cfg.historyN > 0:
		return runHistory(cfg)
	default:
		return runTUI(cfg, appCfg, path)
	}
}

// runTUI opens the interactive terminal app on the collection file. A file
// that fails to load starts the session on an empty table with a warning,
// so a damaged sheet can still be rebuilt by hand.
func runTUI(cfg cliConfig, appCfg config.Config, path string) int {
	tbl, err := store.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; starting with an empty collection\n", err)
	}

	dataDir, err := resolveDataDir(cfg.dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: creating data directory: %v\n", err)
		return 1
	}

	journalPath := filepath.Join(dataDir, "activity.jsonl")
	journal, err := store.OpenActivity(journalPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer journal.Close()

	recent, err := store.ReplayActivity(journalPath, appCfg.HistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not replay activity: %v\n", err)
	}

	if err := tui.Run(tbl, journal, path, recent); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runServe starts the read-only web viewer on a loopback address.
func runServe(cfg cliConfig, appCfg config.Config, path string) int {
	bind := appCfg.Bind
	if cfg.bind != "" {
		bind = cfg.bind
	}

	srv, err := web.NewServer(web.ServerConfig{Addr: bind, CollectionPath: path})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("binder viewer on http://%s (collection: %s)\n", bind, path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runMCP serves the read-only MCP tools over stdio until the client
// disconnects or the process is interrupted.
func runMCP(path string) int {
	tbl, err := store.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	srv := mcpserver.New(tbl, filepath.Base(path), version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runStats prints the markdown statistics report to stdout.
func runStats(path string) int {
	tbl, err := store.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	stats := collection.ComputeStats(tbl.Records(), collection.StatsFilter{})
	fmt.Print(report.Markdown(filepath.Base(path), stats, collection.StatsFilter{}, time.Now()))
	return 0
}

// runExport writes the (optionally filtered) collection as CSV or JSON to
// stdout or the -out file. Relative -out paths land in the configured
// export directory when one is set.
func runExport(cfg cliConfig, appCfg config.Config, path string) int {
	format := strings.ToLower(cfg.exportFormat)
	if format != "csv" && format != "json" {
		fmt.Fprintf(os.Stderr, "error: unknown export format %q (want csv or json)\n", cfg.exportFormat)
		return 2
	}

	tbl, err := store.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	view := tbl.Search(cfg.query)

	dest := cfg.exportOut
	if dest != "" && !filepath.IsAbs(dest) && appCfg.ExportDir != "" {
		dest = filepath.Join(appCfg.ExportDir, dest)
	}

	out := os.Stdout
	if dest != "" {
		f, err := os.Create(dest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		out = f
	}

	var exportErr error
	switch format {
	case "csv":
		exportErr = store.ExportCSV(out, view)
	case "json":
		exportErr = store.ExportJSON(out, view)
	}

	if dest != "" {
		if err := out.Close(); err != nil && exportErr == nil {
			exportErr = err
		}
	}
	if exportErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", exportErr)
		return 1
	}

	if dest != "" {
		fmt.Printf("Exported %d records to %s\n", len(view), dest)
	}
	return 0
}

// runHistory prints the most recent activity journal entries.
func runHistory(cfg cliConfig) int {
	dataDir, err := resolveDataDir(cfg.dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	entries, err := store.ReplayActivity(filepath.Join(dataDir, "activity.jsonl"), cfg.historyN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if len(entries) == 0 {
		fmt.Println("No activity recorded yet.")
		return 0
	}

	for _, e := range entries {
		fmt.Printf("%s  %-8s %s\n", e.Time.Format("2006-01-02 15:04:05"), e.Action, e.Detail)
	}
	return 0
}
