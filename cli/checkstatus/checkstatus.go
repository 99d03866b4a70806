package clicheckstatus

import (
	"context"
	"fmt"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	stCore "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/fetchers"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/statustracker"
	"github.com/briandowns/spinner"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var paramsData = &checkStatusParams{}

func GetCheckStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-status",
		Short: "fetches the current status of a bridge or swap once",
		Long: `Fetches the current status of a bridge or swap without tracking it.

Examples:
  check-status --src-chain-id 1 --dest-chain-id 42161 --bridge across --src-tx-hash 0x7c5e...5331
  check-status --kind swap --src-chain-id 1 --provider oneClick --deposit-address 0x1234...abcd`,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return paramsData.validateFlags()
		},
		Run: runCommand,
	}

	paramsData.setFlags(cmd)

	return cmd
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := common.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	request, err := paramsData.toStatusRequest()
	if err != nil {
		outputter.SetError(err)

		return
	}

	config, err := common.LoadConfig[stCore.AppConfig](paramsData.config, "statustracker")
	if err != nil {
		outputter.SetError(err)

		return
	}

	config.FillOut()

	if err := statustracker.LoadSecrets(config); err != nil {
		outputter.SetError(err)

		return
	}

	if err := config.Validate(); err != nil {
		outputter.SetError(err)

		return
	}

	fetcher := fetchers.NewStatusFetcher(config.Fetchers, hclog.NewNullLogger())

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(outputter))
	s.Suffix = " Checking status..."
	s.Start()

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Duration(paramsData.timeoutSec)*time.Second)
	defer cancelCtx()

	envelope, err := fetcher.FetchStatus(ctx, request)

	s.Stop()

	if err != nil {
		outputter.SetError(fmt.Errorf("failed to fetch status. err: %w", err))

		return
	}

	outputter.SetCommandResult(&checkStatusCmdResult{
		Kind:     request.Kind,
		Envelope: envelope,
	})
}
