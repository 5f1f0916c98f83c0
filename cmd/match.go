package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freightops/loadmatch/config"
	"github.com/freightops/loadmatch/core/matching"
	"github.com/freightops/loadmatch/infra/logger"
	"github.com/freightops/loadmatch/infra/store"
	"github.com/freightops/loadmatch/pkg/export"
)

var (
	matchLimit  int
	matchFormat string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a demo carrier pool against a fixture load",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().IntVar(&matchLimit, "limit", 15, "maximum matches to print")
	matchCmd.Flags().StringVar(&matchFormat, "format", "json", "output format (json or csv)")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New("match-command")
	st := store.NewMemoryStore()
	load := seedFixtures(st)

	engine, err := matching.NewEngine(st, st, matching.HardEligibilityFilter{},
		cfg.Matching, logg, nil)
	if err != nil {
		return fmt.Errorf("matching engine: %w", err)
	}

	result, err := engine.Match(context.Background(), load, matchLimit)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}

	switch matchFormat {
	case "csv":
		return export.WriteCSV(os.Stdout, result.Matches)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		return fmt.Errorf("unknown format %q", matchFormat)
	}
}
