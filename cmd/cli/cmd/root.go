// Package cmd provides the CLI commands for the repair estimator.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varshaad-neenopal/automotive-damage-processing/core/kb"
	"github.com/varshaad-neenopal/automotive-damage-processing/db/ingestion"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/config"
	"github.com/varshaad-neenopal/automotive-damage-processing/internal/logging"
)

var (
	cfgFile string
	verbose bool
	kbPath  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "repair-estimator",
	Short: "Estimate vehicle repair costs from detected damage",
	Long: `repair-estimator reconciles detected vehicle damage phrases against a
knowledge base of brand/model/region repair costs and produces an
itemized, explainable estimate.

Examples:
  repair-estimator estimate request.json
  repair-estimator estimate --kb car_bills.csv --format json request.json
  repair-estimator kb stats --kb car_bills.csv`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.repair-estimator.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&kbPath, "kb", "", "knowledge base CSV path (overrides config source)")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// rowSource picks the KB row source: --kb flag first, then config
func rowSource(ctx context.Context) (kb.RowSource, error) {
	if kbPath != "" {
		return ingestion.FileSource{Path: kbPath}, nil
	}

	kbCfg := config.Get().KnowledgeBase
	switch kbCfg.Source {
	case "file":
		return ingestion.FileSource{Path: kbCfg.Path}, nil
	case "s3":
		return ingestion.NewS3Source(ctx, kbCfg.Bucket, kbCfg.Key, kbCfg.Region)
	default:
		return nil, fmt.Errorf("unknown knowledge base source: %s", kbCfg.Source)
	}
}

// loadIndex builds the KB index. A source failure leaves the index
// empty-but-valid and estimation still proceeds.
func loadIndex(ctx context.Context) *kb.Index {
	index := kb.NewDefaultIndex()

	src, err := rowSource(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; continuing with empty knowledge base\n", err)
		return index
	}
	if err := index.LoadFrom(ctx, src); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; continuing with empty knowledge base\n", err)
	}
	return index
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("repair-estimator version 0.1.0")
	},
}
