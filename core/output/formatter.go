// Package output renders estimate results for people and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable table
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the estimate to w
	Render(w io.Writer, result *types.EstimateResult) error
}

// New returns the formatter for a format name
func New(format Format) (Formatter, error) {
	switch format {
	case FormatText:
		return TextFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// JSONFormatter renders the result as indented JSON
type JSONFormatter struct{}

// Format returns the format type
func (JSONFormatter) Format() Format { return FormatJSON }

// Render writes the estimate as JSON
func (JSONFormatter) Render(w io.Writer, result *types.EstimateResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// TextFormatter renders the result as a table with notes
type TextFormatter struct{}

// Format returns the format type
func (TextFormatter) Format() Format { return FormatText }

// Render writes the estimate as a human-readable table
func (TextFormatter) Render(w io.Writer, result *types.EstimateResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "S.No\tComponent\tDescription\tCost (%s)\tSource\n", result.Currency)
	for _, item := range result.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			item.Sequence, item.Component, item.Description, item.Cost, item.CostSource)
	}
	fmt.Fprintf(tw, "\tTotal\t\t%d\t\n", result.Total)
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, note := range result.Notes {
		if _, err := fmt.Fprintln(w, note); err != nil {
			return err
		}
	}
	return nil
}
