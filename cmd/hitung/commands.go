package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/hitung/internal/calc"
	"github.com/hyperjump/hitung/internal/catalog"
	"github.com/hyperjump/hitung/internal/cli"
	"github.com/hyperjump/hitung/internal/config"
	"github.com/hyperjump/hitung/internal/export"
	"github.com/hyperjump/hitung/internal/formula"
	"github.com/hyperjump/hitung/internal/lookup"
	"github.com/hyperjump/hitung/internal/models"
	"github.com/hyperjump/hitung/internal/pages"
	"github.com/hyperjump/hitung/internal/units"
	"github.com/hyperjump/hitung/pkg/utils"
)

// commandTimeout bounds one-shot network commands.
const commandTimeout = 30 * time.Second

// env is what every one-shot command needs after flag parsing.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	format cli.OutputFormat
}

// commonFlags registers --config, --output and --debug on fs.
type commonFlags struct {
	config *string
	output *string
	debug  *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config: fs.String("config", defaultConfigPath, "config file path"),
		output: fs.String("output", "text", "output format: text or json"),
		debug:  fs.Bool("debug", false, "log lookups and cache hits to stderr"),
	}
}

func (c commonFlags) env() *env {
	format, err := cli.ParseOutputFormat(*c.output)
	if err != nil {
		fail("%v", err)
	}
	cfg, _, err := loadConfig(*c.config)
	if err != nil {
		fail("Failed to load config: %v", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug || *c.debug)
	if err != nil {
		fail("Failed to create logger: %v", err)
	}
	return &env{cfg: cfg, logger: logger, format: format}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fail("Output failed: %v", err)
	}
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	common := addCommonFlags(fs)
	serverURL := fs.String("server", "", "server URL (empty = search the built-in catalog)")
	_ = fs.Parse(reorderArgs(args))

	query := buildSearchQuery(fs.Args())
	if query == "" {
		fail("Usage: hitung search [flags] <query>")
	}
	e := common.env()
	defer e.logger.Sync()

	var response *catalog.Response
	var err error
	if *serverURL != "" {
		response, err = searchViaHTTP(*serverURL, query)
	} else {
		var searcher *catalog.Searcher
		searcher, err = newSearcher(e.cfg)
		if err != nil {
			fail("Failed to build search index: %v", err)
		}
		defer searcher.Close()
		response, err = searcher.Search(context.Background(), query)
	}
	if err != nil {
		fail("Search failed: %v", err)
	}
	check(cli.WriteSearchResults(os.Stdout, response, e.format))
}

func searchViaHTTP(serverURL, query string) (*catalog.Response, error) {
	resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/api/v1/search?q=" + url.QueryEscape(query))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response catalog.Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	common := addCommonFlags(fs)
	category := fs.String("category", "", "unit category (inferred when omitted)")
	_ = fs.Parse(reorderArgs(args))
	if fs.NArg() != 3 {
		fail("Usage: hitung convert [flags] <value> <from> <to>")
	}
	e := common.env()

	value, err := units.Parse(fs.Arg(0))
	if err != nil {
		fail("Invalid value: %v", err)
	}
	from, to := fs.Arg(1), fs.Arg(2)
	cat := units.CategoryID(*category)
	if cat == "" {
		if cat, err = inferCategory(from, to); err != nil {
			fail("%v", err)
		}
	}
	res, err := calc.Convert(value, from, to, cat)
	if err != nil {
		fail("Conversion failed: %v", err)
	}
	check(cli.WriteConversion(os.Stdout, res, e.format))
}

// inferCategory finds the one category that has both unit codes.
func inferCategory(from, to string) (units.CategoryID, error) {
	var found []units.CategoryID
	for _, c := range units.Categories() {
		_, okFrom := c.Unit(from)
		_, okTo := c.Unit(to)
		if okFrom && okTo {
			found = append(found, c.ID)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", fmt.Errorf("no category has both %q and %q; see hitung units", from, to)
	default:
		return "", fmt.Errorf("%q and %q are ambiguous; pass --category", from, to)
	}
}

func runCalc(args []string) {
	fs := flag.NewFlagSet("calc", flag.ExitOnError)
	common := addCommonFlags(fs)
	_ = fs.Parse(reorderArgs(args))
	if fs.NArg() < 1 {
		fail("Usage: hitung calc [flags] <slug> [key=value...]")
	}
	e := common.env()

	slug := fs.Arg(0)
	registry := calc.New(nil)
	if !registry.Has(slug) {
		fail("Unknown calculator %q. Available: %s", slug, strings.Join(registry.Slugs(), ", "))
	}
	body, err := buildCalcBody(fs.Args()[1:])
	if err != nil {
		fail("%v", err)
	}
	result, err := registry.Run(slug, bytes.NewReader(body))
	if err != nil {
		fail("%v", err)
	}
	check(cli.WriteResult(os.Stdout, slug, result, e.format))
}

// buildCalcBody turns key=value pairs into a JSON object. Values that are
// valid JSON (numbers, booleans, arrays) are kept as is; anything else is a
// string.
func buildCalcBody(pairs []string) ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q is not key=value", p)
		}
		if json.Valid([]byte(v)) && v != "" {
			obj[k] = json.RawMessage(v)
			continue
		}
		quoted, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[k] = quoted
	}
	return json.Marshal(obj)
}

func runSchedule(args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	principal := fs.Float64("principal", 0, "loan amount")
	rate := fs.Float64("rate", 0, "annual interest rate in percent")
	months := fs.Int("months", 0, "tenure in months")
	out := fs.String("out", "emi-schedule.xlsx", "output file")
	_ = fs.Parse(args)

	req := models.ScheduleRequest{Principal: *principal, AnnualRate: *rate, Months: *months}
	if err := models.Validate(&req); err != nil {
		fail("%v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		fail("Failed to create %s: %v", *out, err)
	}
	loan := formula.EMIInput{Principal: req.Principal, AnnualRate: req.AnnualRate, Months: req.Months}
	if err := export.AmortizationXLSX(f, loan); err != nil {
		f.Close()
		_ = os.Remove(*out)
		fail("Export failed: %v", err)
	}
	if err := f.Close(); err != nil {
		fail("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func runLookup(args []string) {
	if len(args) < 1 {
		fail("Usage: hitung lookup <pin|area|ifsc> [flags] <query>")
	}
	kind := args[0]
	fs := flag.NewFlagSet("lookup "+kind, flag.ExitOnError)
	common := addCommonFlags(fs)
	_ = fs.Parse(reorderArgs(args[1:]))
	query := buildSearchQuery(fs.Args())
	if query == "" {
		fail("Usage: hitung lookup %s [flags] <query>", kind)
	}
	e := common.env()
	defer e.logger.Sync()

	client := newLookupClient(e.cfg, e.logger)
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch kind {
	case "pin", "area":
		lookupFn := client.PINLookup
		if kind == "area" {
			lookupFn = client.AreaLookup
		}
		offices, err := lookupFn(ctx, query)
		if err != nil {
			fail("%s", lookupError(err))
		}
		check(cli.WritePostOffices(os.Stdout, models.PostOfficesResponse{Query: query, Count: len(offices), PostOffices: offices}, e.format))
	case "ifsc":
		bank, err := client.IFSCLookup(ctx, query)
		if err != nil {
			fail("%s", lookupError(err))
		}
		check(cli.WriteBank(os.Stdout, bank, e.format))
	default:
		fail("Unknown lookup %q; use pin, area or ifsc", kind)
	}
}

// lookupError is the user-facing message for a failed lookup.
func lookupError(err error) string {
	switch {
	case errors.Is(err, lookup.ErrInvalidInput):
		return err.Error()
	case errors.Is(err, lookup.ErrNotFound):
		return "Not found"
	default:
		return "Failed to fetch data"
	}
}

func runQR(args []string) {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	common := addCommonFlags(fs)
	size := fs.Int("size", lookup.DefaultQRSize, "image size in pixels")
	out := fs.String("out", "qr.png", "output file")
	urlOnly := fs.Bool("url", false, "print the image URL instead of downloading")
	_ = fs.Parse(reorderArgs(args))
	data := buildSearchQuery(fs.Args())
	e := common.env()
	defer e.logger.Sync()

	client := newLookupClient(e.cfg, e.logger)
	if *urlOnly {
		u, err := client.QRURL(data, *size)
		if err != nil {
			fail("%s", lookupError(err))
		}
		fmt.Println(u)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	png, err := client.FetchQR(ctx, data, *size)
	if err != nil {
		fail("%s", lookupError(err))
	}
	if err := os.WriteFile(*out, png, 0644); err != nil {
		fail("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", *out, len(png))
}

func runUnits(args []string) {
	fs := flag.NewFlagSet("units", flag.ExitOnError)
	common := addCommonFlags(fs)
	_ = fs.Parse(args)
	e := common.env()
	check(cli.WriteUnits(os.Stdout, units.Categories(), e.format))
}

func runPages(args []string) {
	if len(args) == 0 {
		list, err := pages.List()
		if err != nil {
			fail("%v", err)
		}
		for _, p := range list {
			fmt.Printf("%-12s %s\n", p.Slug, p.Title)
		}
		return
	}
	page, err := pages.Render(args[0])
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(page.HTML)
}

func runConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	write := fs.String("write", "", "write the effective config to this path")
	_ = fs.Parse(args)

	cfg, resolved, err := loadConfig(*configPath)
	if err != nil {
		fail("Failed to load config: %v", err)
	}
	if *write != "" {
		if err := config.Save(*write, cfg); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %s\n", *write)
		return
	}
	if resolved == "" {
		resolved = "built-in defaults"
	}
	fmt.Printf("# %s\n", resolved)
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	check(enc.Encode(cfg))
	check(enc.Close())
}
