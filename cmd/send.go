package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freightops/loadmatch/config"
	"github.com/freightops/loadmatch/core/matching"
	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/core/outreach"
	"github.com/freightops/loadmatch/infra/logger"
	"github.com/freightops/loadmatch/infra/store"
	"github.com/freightops/loadmatch/infra/transport"
)

var sendChannel string

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Dry-run an outreach dispatch against fixture data",
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendChannel, "channel", "email", "outreach channel (email or sms)")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ch, err := model.ParseChannel(sendChannel)
	if err != nil {
		return err
	}

	logg := logger.New("send-command")
	st := store.NewMemoryStore()
	load := seedFixtures(st)

	engine, err := matching.NewEngine(st, st, matching.HardEligibilityFilter{},
		cfg.Matching, logg, nil)
	if err != nil {
		return fmt.Errorf("matching engine: %w", err)
	}
	selector, err := outreach.NewSelector(engine)
	if err != nil {
		return fmt.Errorf("selector: %w", err)
	}
	// The demo never reaches a real provider.
	outreachCfg := cfg.Outreach
	outreachCfg.DryRun = true
	dispatcher, err := outreach.NewDispatcher(outreachCfg, st, selector, st,
		transport.NewMockTransport(), nil, nil, nil, logg)
	if err != nil {
		return fmt.Errorf("dispatcher: %w", err)
	}

	resp, err := dispatcher.Dispatch(context.Background(), outreach.Request{
		LoadID:              load.ID,
		Channel:             ch,
		RecipientCarrierIDs: []int64{1, 2},
		Confirm:             true,
		CreatedBy:           "cli",
	})
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
