package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/hashicorp/go-hclog"
)

const oneClickProviderName = "one_click"

// one click execution statuses
const (
	oneClickStatusSuccess           = "SUCCESS"
	oneClickStatusFailed            = "FAILED"
	oneClickStatusRefunded          = "REFUNDED"
	oneClickStatusPendingDeposit    = "PENDING_DEPOSIT"
	oneClickStatusKnownDepositTx    = "KNOWN_DEPOSIT_TX"
	oneClickStatusProcessing        = "PROCESSING"
	oneClickStatusIncompleteDeposit = "INCOMPLETE_DEPOSIT"
)

type oneClickExecutionStatus struct {
	Status              string
	OriginTxHashes      []string
	DestinationTxHashes []string
	AmountOut           string
}

type oneClickStatusAPI interface {
	GetExecutionStatus(ctx context.Context, depositAddress string) (*oneClickExecutionStatus, error)
}

// OneClickFetcher reads swap statuses by deposit address from the one click API
type OneClickFetcher struct {
	api    oneClickStatusAPI
	logger hclog.Logger
}

var _ core.StatusFetcher = (*OneClickFetcher)(nil)

func NewOneClickFetcher(config core.OneClickConfig, logger hclog.Logger) *OneClickFetcher {
	return &OneClickFetcher{
		api:    newOneClickSDKClient(config, logger),
		logger: logger,
	}
}

func (f *OneClickFetcher) FetchStatus(ctx context.Context, request core.StatusRequest) (*common.StatusEnvelope, error) {
	if request.DepositAddress == "" {
		return nil, fmt.Errorf("deposit address is required")
	}

	startTime := time.Now()
	defer telemetry.UpdateStatusFetchDuration(oneClickProviderName, startTime)

	status, err := f.api.GetExecutionStatus(ctx, request.DepositAddress)
	if err != nil {
		return nil, err
	}

	statusValue, err := mapOneClickStatus(status.Status)
	if err != nil {
		return nil, err
	}

	envelope := &common.StatusEnvelope{
		Status: statusValue,
		SrcChain: common.ChainStatus{
			ChainID: request.SrcChainID,
			TxHash:  firstNonEmpty(status.OriginTxHashes),
		},
	}

	if destTxHash := firstNonEmpty(status.DestinationTxHashes); destTxHash != "" || statusValue.IsTerminal() {
		envelope.DestChain = &common.ChainStatus{
			ChainID: request.DestChainID,
			TxHash:  destTxHash,
			Amount:  status.AmountOut,
		}
	}

	return envelope, nil
}

func mapOneClickStatus(status string) (common.StatusValue, error) {
	switch strings.ToUpper(status) {
	case oneClickStatusSuccess:
		return common.StatusComplete, nil
	case oneClickStatusFailed, oneClickStatusRefunded:
		return common.StatusFailed, nil
	case oneClickStatusPendingDeposit, oneClickStatusKnownDepositTx,
		oneClickStatusProcessing, oneClickStatusIncompleteDeposit:
		return common.StatusPending, nil
	default:
		return "", fmt.Errorf("%w: unknown one click status %q", errMalformedResponse, status)
	}
}

func firstNonEmpty(values []string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}

type oneClickSDKClient struct {
	client   *oneclick.APIClient
	jwtToken string
}

func newOneClickSDKClient(config core.OneClickConfig, logger hclog.Logger) *oneClickSDKClient {
	sdkConfig := oneclick.NewConfiguration()
	sdkConfig.HTTPClient = newRetryableClient(config.TimeoutMs, logger).StandardClient()

	if config.BaseURL != "" {
		sdkConfig.Servers = oneclick.ServerConfigurations{{URL: strings.TrimSuffix(config.BaseURL, "/")}}
	}

	return &oneClickSDKClient{
		client:   oneclick.NewAPIClient(sdkConfig),
		jwtToken: config.JWTToken,
	}
}

func (c *oneClickSDKClient) GetExecutionStatus(
	ctx context.Context, depositAddress string,
) (*oneClickExecutionStatus, error) {
	if c.jwtToken != "" {
		ctx = context.WithValue(ctx, oneclick.ContextAccessToken, c.jwtToken)
	}

	resp, httpResp, err := c.client.OneClickAPI.GetExecutionStatus(ctx).DepositAddress(depositAddress).Execute()
	if httpResp != nil {
		defer httpResp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get one click status. err: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("one click API returned status code %d", httpResp.StatusCode)
	}

	swapDetails := resp.GetSwapDetails()
	status := &oneClickExecutionStatus{
		Status: resp.GetStatus(),
	}

	for _, tx := range swapDetails.GetOriginChainTxHashes() {
		status.OriginTxHashes = append(status.OriginTxHashes, tx.GetHash())
	}

	for _, tx := range swapDetails.GetDestinationChainTxHashes() {
		status.DestinationTxHashes = append(status.DestinationTxHashes, tx.GetHash())
	}

	if swapDetails.HasAmountOutFormatted() {
		status.AmountOut = swapDetails.GetAmountOutFormatted()
	}

	return status, nil
}
