package clihistory

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	stCore "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	databaseaccess "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/database_access"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/statustracker"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/tracker"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var paramsData = &historyParams{}

func GetHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "lists tracked bridge and swap items",
		Long: `Lists tracked items of an account from the status tracker database.
The database is locked while run-status-tracker is running, use the history api instead.`,
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

	result, err := execute(paramsData)
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(result)
}

func execute(params *historyParams) (*historyCmdResult, error) {
	config, err := common.LoadConfig[stCore.AppConfig](params.config, "statustracker")
	if err != nil {
		return nil, err
	}

	db, err := databaseaccess.NewDatabase(
		filepath.Join(config.Settings.DbsPath, statustracker.MainComponentName+".db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open status tracker database: %w", err)
	}

	defer db.Close()

	store := tracker.NewHistoryStore(db, hclog.NewNullLogger())
	if err := store.Load(); err != nil {
		return nil, err
	}

	if params.itemID != "" {
		record, exists := store.Get(params.itemID)
		if !exists {
			return nil, fmt.Errorf("item %s is not tracked", params.itemID)
		}

		return newHistoryCmdResult("", map[string]common.HistoryRecord{record.ItemID: record}), nil
	}

	account := params.account
	if account == "" {
		account = config.Identity.SelectedAccount
	}

	if account == "" {
		return nil, errors.New("account is not specified and no account is selected in config")
	}

	account = common.NormalizeAccount(account)

	return newHistoryCmdResult(account, store.GetForAccount(account)), nil
}
