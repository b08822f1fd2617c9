// Package main is the Hitung CLI entry point.
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

	"go.uber.org/zap"

	"github.com/hyperjump/hitung/internal/catalog"
	"github.com/hyperjump/hitung/internal/config"
	"github.com/hyperjump/hitung/internal/lookup"
	"github.com/hyperjump/hitung/internal/metrics"
	"github.com/hyperjump/hitung/internal/server"
	"github.com/hyperjump/hitung/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/hitung/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// A missing default file is not an error: the built-in defaults are returned
// with an empty resolved path.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	args := os.Args[2:]
	switch command {
	case "server":
		runServer(args)
	case "search":
		runSearch(args)
	case "convert":
		runConvert(args)
	case "calc":
		runCalc(args)
	case "schedule":
		runSchedule(args)
	case "lookup":
		runLookup(args)
	case "qr":
		runQR(args)
	case "units":
		runUnits(args)
	case "pages":
		runPages(args)
	case "config":
		runConfig(args)
	case "version", "--version", "-v":
		fmt.Printf("hitung version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newSearcher(cfg *config.Config) (*catalog.Searcher, error) {
	return catalog.NewSearcher(catalog.SearchOptions{
		MaxResults:     cfg.Search.MaxResults,
		FuzzyEnabled:   cfg.Search.FuzzyOrDefault(),
		Fuzziness:      cfg.Search.Fuzziness,
		MaxSuggestions: cfg.Search.MaxSuggestions,
	})
}

func newLookupClient(cfg *config.Config, logger *zap.Logger) *lookup.Client {
	b := cfg.Lookup.Breaker
	return lookup.NewClient(lookup.Options{
		PostalBaseURL: cfg.Lookup.PostalBaseURL,
		IFSCBaseURL:   cfg.Lookup.IFSCBaseURL,
		QRBaseURL:     cfg.Lookup.QRBaseURL,
		Timeout:       cfg.Lookup.Timeout,
		CacheSize:     cfg.Lookup.CacheSize,
		Breaker: lookup.BreakerSettings{
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			MinRequests:  b.MinRequests,
			FailureRatio: b.FailureRatio,
		},
		Logger: logger,
	})
}

func runServer(args []string) {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (requests, lookups, cache hits)")
	port := fs.Int("port", 0, "listen port (overrides config)")
	_ = fs.Parse(args)

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	searcher, err := newSearcher(cfg)
	if err != nil {
		logger.Fatal("Failed to build search index", zap.Error(err))
	}
	defer searcher.Close()

	srv := server.NewServer(
		searcher,
		newLookupClient(cfg, logger),
		metrics.NewCollector(),
		&cfg.Server,
		logger,
		version,
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// boolFlags are the flags that never consume the next argument.
var boolFlags = map[string]bool{"debug": true, "url": true, "h": true, "help": true}

// reorderArgs moves flags (and their values) in front of the positional
// arguments so that flag.Parse() sees them. Go's flag package stops at the
// first non-flag argument, so "hitung search bmi --output json" would
// otherwise leave --output unparsed. Positionals keep their relative order.
// Negative numbers are positional; a "--" terminator is inserted before
// them so flag.Parse does not read them as flags.
func reorderArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if !isFlag(a) {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") || boolFlags[name] {
			continue
		}
		if i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, flags...)
	for _, a := range positional {
		if strings.HasPrefix(a, "-") {
			out = append(out, "--")
			break
		}
	}
	return append(out, positional...)
}

func isFlag(a string) bool {
	if len(a) < 2 || a[0] != '-' {
		return false
	}
	c := a[1]
	return c != '.' && (c < '0' || c > '9')
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func printUsage() {
	fmt.Println(`hitung - Calculators, unit conversion and Indian lookups

Usage:
  hitung server [flags]                      Start the HTTP server
  hitung search [flags] <query>              Search the calculator catalog
  hitung convert [flags] <value> <from> <to> Convert between units
  hitung calc [flags] <slug> [key=value...]  Run a calculator
  hitung schedule [flags]                    Export an EMI schedule as XLSX
  hitung lookup <pin|area|ifsc> <query>      Look up post offices or a bank branch
  hitung qr [flags] <data>                   Download a QR code PNG
  hitung units [flags]                       List unit categories
  hitung pages [slug]                        List or print static pages
  hitung config [flags]                      Print the effective config
  hitung version                             Show version
  hitung help                                Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/hitung/config.yaml,
                     falls back to ./config.yaml and then built-in defaults)
  --output string    Output format: text or json (default: text)

Server Flags:
  --debug            Enable debug logging
  --port int         Listen port (overrides config)

Search Flags:
  --server string    Query a running server instead of the local index

Convert Flags:
  --category string  Unit category (inferred from the units when omitted)

Schedule Flags:
  --principal float  Loan amount
  --rate float       Annual interest rate in percent
  --months int       Tenure in months
  --out string       Output file (default: emi-schedule.xlsx)

QR Flags:
  --size int         Image size in pixels, 50-1000 (default: 256)
  --out string       Output file (default: qr.png)
  --url              Print the image URL instead of downloading

Config Flags:
  --write string     Write the effective config to this path

Examples:
  hitung server
  hitung search compound interest
  hitung search --output json calclator      # typo-tolerant
  hitung convert 100 celsius fahrenheit
  hitung calc emi principal=1000000 annual_rate=10 months=12
  hitung calc bmi height_cm=180 weight_kg=78.4 --output json
  hitung schedule --principal 500000 --rate 9.5 --months 60
  hitung lookup pin 110001
  hitung lookup ifsc HDFC0000001
  hitung qr --size 300 "https://example.com"`)
}
