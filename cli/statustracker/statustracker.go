package clistatustracker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	stCore "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/statustracker"
	"github.com/Ethernal-Tech/cardano-infrastructure/logger"
	"github.com/spf13/cobra"
)

var initParamsData = &initParams{}

func GetRunStatusTrackerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run-status-tracker",
		Short:   "runs bridge and swap status tracker",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	initParamsData.setFlags(cmd)

	return cmd
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return initParamsData.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := common.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	_, _ = outputter.Write([]byte("Starting status tracker...\n"))

	config, err := common.LoadConfig[stCore.AppConfig](initParamsData.config, "statustracker")
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

	if err := common.CreateDirectoryIfNotExists(config.Settings.DbsPath); err != nil {
		outputter.SetError(err)

		return
	}

	logger, err := logger.NewLogger(config.Settings.Logger)
	if err != nil {
		outputter.SetError(err)

		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("PANIC", "err", r)
			outputter.SetError(fmt.Errorf("%v", r))
		}
	}()

	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	components, err := statustracker.NewStatusTrackerComponents(ctx, config, initParamsData.runAPI, logger)
	if err != nil {
		logger.Error("status tracker components creation failed", "err", err)
		outputter.SetError(err)

		return
	}

	defer func() {
		cancelCtx()

		if err := components.Dispose(); err != nil {
			logger.Error("error while disposing status tracker components", "err", err)
		}
	}()

	if err := components.Start(); err != nil {
		logger.Error("status tracker components start failed", "err", err)
		outputter.SetError(err)

		return
	}

	_, _ = outputter.Write([]byte("Status tracker has been started\n"))

	signalChannel := make(chan os.Signal, 1)
	// Notify the signalChannel when the interrupt signal is received (Ctrl+C)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	select {
	case <-signalChannel:
	case err = <-components.ErrorCh():
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(&CmdResult{})
}
