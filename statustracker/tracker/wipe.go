package tracker

import (
	"errors"
	"fmt"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
)

// ErrInvalidWipeRequest marks wipe failures caused by the caller's input
var ErrInvalidWipeRequest = errors.New("invalid wipe request")

var (
	errAccountRequired    = fmt.Errorf("%w: account is required", ErrInvalidWipeRequest)
	errUnknownTargetChain = fmt.Errorf("%w: target chain id can not be resolved", ErrInvalidWipeRequest)
)

// Wipe removes tracked records. With IgnoreNetwork every record of every account is removed,
// otherwise only the account's records whose source chain is the target chain.
// Live polls of removed records are stopped before the records are deleted.
func (t *StatusTrackerImpl) Wipe(account string, options core.WipeOptions) (int, error) {
	var (
		targetChainID string
		err           error
	)

	if !options.IgnoreNetwork {
		if account == "" && t.identity != nil {
			account = t.identity.GetSelectedAccountAddress()
		}

		if account == "" {
			return 0, errAccountRequired
		}

		targetChainID, err = t.resolveTargetChainID(options.TargetChainID)
		if err != nil {
			return 0, err
		}
	}

	itemIDs := selectWipeTargets(t.store.All(), account, targetChainID, options.IgnoreNetwork)
	if len(itemIDs) == 0 {
		return 0, nil
	}

	for _, itemID := range itemIDs {
		t.scheduler.StopItem(itemID)
	}

	if err := t.store.Remove(itemIDs...); err != nil {
		restarted := t.restartPolls(itemIDs)

		t.logger.Error("Failed to wipe history", "removed", 0, "restartedPolls", restarted, "err", err)

		return 0, fmt.Errorf("failed to wipe history. err: %w", err)
	}

	telemetry.UpdateWipedRecordsCounter(len(itemIDs))

	t.logger.Info("History wiped", "account", account, "chainID", targetChainID,
		"ignoreNetwork", options.IgnoreNetwork, "removed", len(itemIDs))

	return len(itemIDs), nil
}

// restartPolls starts polling again for the items that are still stored and non terminal
func (t *StatusTrackerImpl) restartPolls(itemIDs []string) int {
	restarted := 0

	for _, itemID := range itemIDs {
		record, exists := t.store.Get(itemID)
		if !exists || record.IsTerminal() {
			continue
		}

		if t.scheduler.StartItem(itemID) {
			restarted++
		}
	}

	return restarted
}

// resolveTargetChainID returns the hex chain id of target or, if empty, of the selected network
func (t *StatusTrackerImpl) resolveTargetChainID(target string) (string, error) {
	if target == "" && t.identity != nil {
		if networkClientID := t.identity.GetSelectedNetworkClientID(); networkClientID != "" {
			networkClient, err := t.identity.GetNetworkClientByID(networkClientID)
			if err != nil {
				t.logger.Warn("Failed to get selected network client",
					"networkClientID", networkClientID, "err", err)
			} else {
				target = networkClient.Configuration.ChainID
			}
		}

		if target == "" {
			target = t.identity.GetCurrentChainID()
		}
	}

	if target == "" {
		return "", errUnknownTargetChain
	}

	chainID, err := common.NormalizeHexChainID(target)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errUnknownTargetChain, err)
	}

	return chainID, nil
}

func selectWipeTargets(
	records []common.HistoryRecord, account string, targetChainID string, ignoreNetwork bool,
) []string {
	result := map[string]common.HistoryRecord{}

	for _, record := range records {
		if ignoreNetwork ||
			(common.IsSameAccount(record.Account, account) && record.Quote.SrcChainID.ToHex() == targetChainID) {
			result[record.ItemID] = record
		}
	}

	return sortedItemIDs(result)
}
