package cli

import (
	"fmt"
	"os"

	clicheckstatus "github.com/Ethernal-Tech/bridge-status-tracker/cli/checkstatus"
	clihistory "github.com/Ethernal-Tech/bridge-status-tracker/cli/history"
	clistatustracker "github.com/Ethernal-Tech/bridge-status-tracker/cli/statustracker"
	cliversion "github.com/Ethernal-Tech/bridge-status-tracker/cli/version"
	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/spf13/cobra"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Short: "cli commands for bridge status tracker",
		},
	}

	rootCommand.baseCmd.PersistentFlags().Bool(common.JSONOutputFlag, false, "get all outputs in json format")

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		clistatustracker.GetRunStatusTrackerCommand(),
		clihistory.GetHistoryCommand(),
		clicheckstatus.GetCheckStatusCommand(),
		cliversion.GetVersionCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
