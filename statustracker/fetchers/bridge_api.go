package fetchers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	bridgeAPIStatusPath     = "/getTxStatus"
	bridgeAPIClientIDHeader = "X-Client-Id"
	bridgeAPIProviderName   = "bridge_api"

	defaultHTTPRetryMax     = 2
	defaultHTTPRetryWaitMin = 200 * time.Millisecond
	defaultHTTPRetryWaitMax = 2 * time.Second
	maxResponseBodySize     = 1 << 20
)

var errMalformedResponse = errors.New("malformed status response")

type bridgeAPIChainStatus struct {
	ChainID common.ChainID `json:"chainId"`
	TxHash  string         `json:"txHash"`
	Amount  string         `json:"amount"`
}

type bridgeAPIStatusResponse struct {
	Status    common.StatusValue    `json:"status"`
	Bridge    string                `json:"bridge"`
	SrcChain  *bridgeAPIChainStatus `json:"srcChain"`
	DestChain *bridgeAPIChainStatus `json:"destChain"`
}

// BridgeAPIFetcher reads bridge and swap statuses from the bridge status service
type BridgeAPIFetcher struct {
	baseURL  string
	clientID string
	client   *retryablehttp.Client
	logger   hclog.Logger
}

var _ core.StatusFetcher = (*BridgeAPIFetcher)(nil)

func NewBridgeAPIFetcher(config core.BridgeAPIConfig, logger hclog.Logger) *BridgeAPIFetcher {
	return &BridgeAPIFetcher{
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
		clientID: config.ClientID,
		client:   newRetryableClient(config.TimeoutMs, logger),
		logger:   logger,
	}
}

func (f *BridgeAPIFetcher) FetchStatus(ctx context.Context, request core.StatusRequest) (*common.StatusEnvelope, error) {
	if request.SrcTxHash == "" {
		return nil, fmt.Errorf("source tx hash is required")
	}

	startTime := time.Now()
	defer telemetry.UpdateStatusFetchDuration(bridgeAPIProviderName, startTime)

	httpRequest, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, f.baseURL+bridgeAPIStatusPath+"?"+statusQuery(request).Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request. err: %w", err)
	}

	httpRequest.Header.Set("Accept", "application/json")

	if f.clientID != "" {
		httpRequest.Header.Set(bridgeAPIClientIDHeader, f.clientID)
	}

	resp, err := f.client.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to get status. err: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read status response. err: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status service returned status code %d: %s", resp.StatusCode, string(body))
	}

	return parseStatusResponse(body)
}

func statusQuery(request core.StatusRequest) url.Values {
	query := url.Values{}
	query.Set("bridgeId", request.BridgeID)
	query.Set("srcTxHash", request.SrcTxHash)
	query.Set("bridge", request.Bridge)
	query.Set("srcChainId", request.SrcChainID.String())
	query.Set("destChainId", request.DestChainID.String())
	query.Set("refuel", strconv.FormatBool(request.Refuel))

	if request.Quote.RequestID != "" {
		query.Set("requestId", request.Quote.RequestID)
	}

	return query
}

func parseStatusResponse(body []byte) (*common.StatusEnvelope, error) {
	var response bridgeAPIStatusResponse

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedResponse, err)
	}

	if !response.Status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", errMalformedResponse, response.Status)
	}

	if response.SrcChain == nil || response.SrcChain.ChainID == 0 {
		return nil, fmt.Errorf("%w: source chain is missing", errMalformedResponse)
	}

	envelope := &common.StatusEnvelope{
		Status: response.Status,
		SrcChain: common.ChainStatus{
			ChainID: response.SrcChain.ChainID,
			TxHash:  response.SrcChain.TxHash,
			Amount:  response.SrcChain.Amount,
		},
	}

	if response.DestChain != nil {
		if response.DestChain.ChainID == 0 {
			return nil, fmt.Errorf("%w: destination chain id is missing", errMalformedResponse)
		}

		envelope.DestChain = &common.ChainStatus{
			ChainID: response.DestChain.ChainID,
			TxHash:  response.DestChain.TxHash,
			Amount:  response.DestChain.Amount,
		}
	}

	return envelope, nil
}

func newRetryableClient(timeoutMs uint64, logger hclog.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = time.Duration(timeoutMs) * time.Millisecond
	client.RetryMax = defaultHTTPRetryMax
	client.RetryWaitMin = defaultHTTPRetryWaitMin
	client.RetryWaitMax = defaultHTTPRetryWaitMax
	client.Logger = logger

	return client
}
