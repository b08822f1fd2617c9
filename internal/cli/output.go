// Package cli provides output helpers for the hitung command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hyperjump/hitung/internal/catalog"
	"github.com/hyperjump/hitung/internal/lookup"
	"github.com/hyperjump/hitung/internal/models"
	"github.com/hyperjump/hitung/internal/units"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *catalog.Response, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	mode := ""
	if response.AutoFuzzy {
		mode = " (fuzzy)"
	}
	fmt.Fprintf(w, "\nFound %d results%s in %dms\n\n", response.Total, mode, response.QueryTime)
	for i, it := range response.Results {
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, it.Title, it.Category)
		fmt.Fprintf(w, "   %s\n", Truncate(it.Description, 80))
		fmt.Fprintf(w, "   %s\n", it.Route)
	}
	if len(response.Suggestions) > 0 {
		fmt.Fprintf(w, "\nDid you mean: %s?\n", strings.Join(response.Suggestions, ", "))
	}
	return nil
}

// WriteConversion writes one unit conversion.
func WriteConversion(w io.Writer, res models.ConvertResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}
	_, err := fmt.Fprintf(w, "%s %s = %s %s\n", units.Format(res.Value), res.From, res.Formatted, res.To)
	return err
}

// WriteUnits lists every unit category and its units.
func WriteUnits(w io.Writer, cats []units.Category, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, cats)
	}
	for _, c := range cats {
		fmt.Fprintf(w, "%s (%s, base %s)\n", c.Name, c.ID, c.Base)
		for _, u := range c.Units {
			fmt.Fprintf(w, "  %-12s %s\n", u.Code, u.Name)
		}
	}
	return nil
}

// WritePostOffices writes the offices of a PIN or area lookup.
func WritePostOffices(w io.Writer, res models.PostOfficesResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}
	fmt.Fprintf(w, "%d post offices for %q\n", res.Count, res.Query)
	for _, po := range res.PostOffices {
		line := fmt.Sprintf("  %s, %s, %s", po.Name, po.District, po.State)
		if po.Pincode != "" {
			line += " " + po.Pincode
		}
		if po.BranchType != "" {
			line += " (" + po.BranchType + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// WriteBank writes an IFSC lookup result.
func WriteBank(w io.Writer, b lookup.Bank, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, b)
	}
	fmt.Fprintf(w, "%s, %s\n", b.Bank, b.Branch)
	fmt.Fprintf(w, "  IFSC:    %s\n", b.IFSC)
	if b.Address != "" {
		fmt.Fprintf(w, "  Address: %s\n", b.Address)
	}
	fmt.Fprintf(w, "  City:    %s, %s\n", b.City, b.State)
	var modes []string
	for name, ok := range map[string]bool{"IMPS": b.IMPS, "NEFT": b.NEFT, "RTGS": b.RTGS, "UPI": b.UPI} {
		if ok {
			modes = append(modes, name)
		}
	}
	sort.Strings(modes)
	if len(modes) > 0 {
		fmt.Fprintf(w, "  Modes:   %s\n", strings.Join(modes, ", "))
	}
	return nil
}

// WriteResult writes a calculator result. Text output lists the result's
// JSON fields one per line in key order.
func WriteResult(w io.Writer, calculator string, result any, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, models.CalculateResponse{Calculator: calculator, Result: result})
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Not an object (random numbers, a fraction list): print as is.
		_, err = fmt.Fprintf(w, "%s: %s\n", calculator, raw)
		return err
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(w, calculator)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-20s %s\n", k+":", strings.Trim(string(fields[k]), `"`))
	}
	return nil
}

// Truncate shortens s to maxLen runes and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
