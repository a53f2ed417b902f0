// Package cmd - estimate command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/estimate"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/normalize"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/output"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/config"
)

var outputFormat string

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [request.json]",
	Short: "Produce a repair estimate for a damage request",
	Long: `Reconcile detected damage phrases against the knowledge base and
produce an itemized estimate.

The request file carries the vehicle and the detected damage:

  {
    "brand": "Toyota",
    "model": "Innova",
    "region": "Mumbai",
    "visible_damage": ["front bumper", {"panel": "bonnet"}],
    "damageSummary": "dented front end"
  }

Damage entries may be plain strings or objects labelled by panel, part,
area, desc or severity. The command runs with the offline collaborators,
so components the knowledge base cannot price stay unpriced.`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
}

// estimateRequest is the request file shape. Location is accepted as an
// alias for region for payloads produced by the damage analyzer.
type estimateRequest struct {
	Brand         string        `json:"brand"`
	Model         string        `json:"model"`
	Region        string        `json:"region"`
	Location      string        `json:"location"`
	VisibleDamage []interface{} `json:"visible_damage"`
	DamageSummary string        `json:"damageSummary"`
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	var req estimateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse request: %w", err)
	}

	formatter, err := output.New(output.Format(outputFormat))
	if err != nil {
		return err
	}

	index := loadIndex(ctx)
	normalizer := normalize.NewDefault()
	pipeline := estimate.NewPipeline(index, normalizer, estimate.OfflineCollaborators(normalizer), estimate.Options{
		CurrencySymbol:  config.Get().Estimate.CurrencySymbol,
		LabourComponent: config.Get().Estimate.LabourComponent,
	})

	result := pipeline.Estimate(ctx, estimate.Request{
		Brand:         orUnknown(req.Brand),
		Model:         orUnknown(req.Model),
		Region:        orUnknown(firstNonEmpty(req.Region, req.Location)),
		DamagePhrases: estimate.PhrasesOrFallback(estimate.Flatten(req.VisibleDamage), req.DamageSummary),
	})

	return formatter.Render(os.Stdout, result)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
