package clicheckstatus

import (
	"errors"
	"fmt"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	stCore "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/spf13/cobra"
)

const (
	configFlag         = "config"
	kindFlag           = "kind"
	srcChainIDFlag     = "src-chain-id"
	destChainIDFlag    = "dest-chain-id"
	srcTxHashFlag      = "src-tx-hash"
	bridgeFlag         = "bridge"
	bridgeIDFlag       = "bridge-id"
	refuelFlag         = "refuel"
	requestIDFlag      = "request-id"
	providerFlag       = "provider"
	depositAddressFlag = "deposit-address"
	timeoutFlag        = "timeout"

	configFlagDesc         = "path to config json file"
	kindFlagDesc           = "item kind: bridge or swap"
	srcChainIDFlagDesc     = "source chain id (decimal, hex or caip)"
	destChainIDFlagDesc    = "destination chain id (decimal, hex or caip)"
	srcTxHashFlagDesc      = "source transaction hash"
	bridgeFlagDesc         = "bridge used by the quote"
	bridgeIDFlagDesc       = "aggregator id of the quote"
	refuelFlagDesc         = "quote includes refuel"
	requestIDFlagDesc      = "quote request id"
	providerFlagDesc       = "swap provider, for example oneClick"
	depositAddressFlagDesc = "deposit address of a provider swap"
	timeoutFlagDesc        = "timeout in seconds"

	defaultTimeoutSec = 30
)

type checkStatusParams struct {
	config         string
	kind           string
	srcChainID     string
	destChainID    string
	srcTxHash      string
	bridge         string
	bridgeID       string
	refuel         bool
	requestID      string
	provider       string
	depositAddress string
	timeoutSec     uint
}

func (ip *checkStatusParams) validateFlags() error {
	switch common.ItemKind(ip.kind) {
	case common.ItemKindBridge:
		if ip.provider != "" || ip.depositAddress != "" {
			return errors.New("--provider and --deposit-address are only valid for swaps")
		}
	case common.ItemKindSwap:
	default:
		return fmt.Errorf("invalid --%s: %s", kindFlag, ip.kind)
	}

	if _, err := common.ParseChainID(ip.srcChainID); err != nil {
		return fmt.Errorf("invalid --%s: %w", srcChainIDFlag, err)
	}

	if ip.destChainID != "" {
		if _, err := common.ParseChainID(ip.destChainID); err != nil {
			return fmt.Errorf("invalid --%s: %w", destChainIDFlag, err)
		}
	}

	if ip.srcTxHash == "" && ip.depositAddress == "" {
		return fmt.Errorf("--%s or --%s must be specified", srcTxHashFlag, depositAddressFlag)
	}

	if ip.timeoutSec == 0 {
		return fmt.Errorf("--%s must be greater than zero", timeoutFlag)
	}

	return nil
}

func (ip *checkStatusParams) toStatusRequest() (stCore.StatusRequest, error) {
	srcChainID, err := common.ParseChainID(ip.srcChainID)
	if err != nil {
		return stCore.StatusRequest{}, err
	}

	var destChainID common.ChainID

	if ip.destChainID != "" {
		if destChainID, err = common.ParseChainID(ip.destChainID); err != nil {
			return stCore.StatusRequest{}, err
		}
	}

	request := stCore.StatusRequest{
		Kind:        common.ItemKind(ip.kind),
		BridgeID:    ip.bridgeID,
		Bridge:      ip.bridge,
		SrcChainID:  srcChainID,
		DestChainID: destChainID,
		Quote: common.Quote{
			RequestID:   ip.requestID,
			BridgeID:    ip.bridgeID,
			SrcChainID:  srcChainID,
			DestChainID: destChainID,
		},
		Refuel:         ip.refuel,
		Provider:       ip.provider,
		DepositAddress: ip.depositAddress,
	}

	if ip.srcTxHash != "" {
		if request.SrcTxHash, err = common.NormalizeTxHash(srcChainID, ip.srcTxHash); err != nil {
			return stCore.StatusRequest{}, err
		}
	}

	return request, nil
}

func (ip *checkStatusParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ip.config, configFlag, "", configFlagDesc)
	cmd.Flags().StringVar(&ip.kind, kindFlag, string(common.ItemKindBridge), kindFlagDesc)
	cmd.Flags().StringVar(&ip.srcChainID, srcChainIDFlag, "", srcChainIDFlagDesc)
	cmd.Flags().StringVar(&ip.destChainID, destChainIDFlag, "", destChainIDFlagDesc)
	cmd.Flags().StringVar(&ip.srcTxHash, srcTxHashFlag, "", srcTxHashFlagDesc)
	cmd.Flags().StringVar(&ip.bridge, bridgeFlag, "", bridgeFlagDesc)
	cmd.Flags().StringVar(&ip.bridgeID, bridgeIDFlag, "", bridgeIDFlagDesc)
	cmd.Flags().BoolVar(&ip.refuel, refuelFlag, false, refuelFlagDesc)
	cmd.Flags().StringVar(&ip.requestID, requestIDFlag, "", requestIDFlagDesc)
	cmd.Flags().StringVar(&ip.provider, providerFlag, "", providerFlagDesc)
	cmd.Flags().StringVar(&ip.depositAddress, depositAddressFlag, "", depositAddressFlagDesc)
	cmd.Flags().UintVar(&ip.timeoutSec, timeoutFlag, defaultTimeoutSec, timeoutFlagDesc)

	cmd.MarkFlagsMutuallyExclusive(bridgeFlag, providerFlag)
}
