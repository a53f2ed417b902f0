// Package cmd - kb commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// kbCmd groups knowledge base inspection commands
var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect the repair cost knowledge base",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// kbStatsCmd prints index statistics after a load
var kbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Load the knowledge base and print index statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		index := loadIndex(context.Background())
		snap := index.Snapshot()
		fmt.Printf("Rows loaded:    %d\n", snap.RowCount())
		fmt.Printf("Distinct keys:  %d\n", snap.Len())
		fmt.Printf("Vehicle groups: %d\n", snap.Triples())
		fmt.Printf("Loaded at:      %s\n", snap.CreatedAt().Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

var (
	componentsBrand  string
	componentsModel  string
	componentsRegion string
)

// kbComponentsCmd lists known components for a vehicle group
var kbComponentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List known components for a brand/model/region",
	RunE: func(cmd *cobra.Command, args []string) error {
		index := loadIndex(context.Background())
		candidates := index.CandidatesFor(componentsBrand, componentsModel, componentsRegion)
		if len(candidates) == 0 {
			fmt.Println("No components known for this brand/model/region.")
			return nil
		}
		for _, c := range candidates {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	kbComponentsCmd.Flags().StringVar(&componentsBrand, "brand", "", "vehicle brand")
	kbComponentsCmd.Flags().StringVar(&componentsModel, "model", "", "vehicle model")
	kbComponentsCmd.Flags().StringVar(&componentsRegion, "region", "", "pricing region")
	kbComponentsCmd.MarkFlagRequired("brand")
	kbComponentsCmd.MarkFlagRequired("model")
	kbComponentsCmd.MarkFlagRequired("region")

	kbCmd.AddCommand(kbStatsCmd)
	kbCmd.AddCommand(kbComponentsCmd)
}
