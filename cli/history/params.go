package clihistory

import (
	"errors"

	"github.com/spf13/cobra"
)

const (
	configFlag  = "config"
	accountFlag = "account"
	itemIDFlag  = "item-id"

	configFlagDesc  = "path to config json file"
	accountFlagDesc = "account whose history is listed, defaults to the selected account from config"
	itemIDFlagDesc  = "show only the item with this id"
)

type historyParams struct {
	config  string
	account string
	itemID  string
}

func (ip *historyParams) validateFlags() error {
	if ip.account != "" && ip.itemID != "" {
		return errors.New("only one of --account and --item-id can be specified")
	}

	return nil
}

func (ip *historyParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&ip.config,
		configFlag,
		"",
		configFlagDesc,
	)

	cmd.Flags().StringVar(
		&ip.account,
		accountFlag,
		"",
		accountFlagDesc,
	)

	cmd.Flags().StringVar(
		&ip.itemID,
		itemIDFlag,
		"",
		itemIDFlagDesc,
	)
}
