package fetchers

import (
	"context"
	"errors"
	"testing"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

type oneClickStatusAPIFunc func(ctx context.Context, depositAddress string) (*oneClickExecutionStatus, error)

func (f oneClickStatusAPIFunc) GetExecutionStatus(
	ctx context.Context, depositAddress string,
) (*oneClickExecutionStatus, error) {
	return f(ctx, depositAddress)
}

func TestOneClickFetcher(t *testing.T) {
	ctx := context.Background()
	request := core.StatusRequest{
		Kind:           common.ItemKindSwap,
		SrcChainID:     common.ChainIDEthereum,
		DestChainID:    common.ChainIDSolana,
		Provider:       common.SwapProviderOneClick,
		DepositAddress: "0xdeposit",
	}

	newFetcher := func(status *oneClickExecutionStatus, err error) *OneClickFetcher {
		return &OneClickFetcher{
			api: oneClickStatusAPIFunc(func(ctx context.Context, depositAddress string) (*oneClickExecutionStatus, error) {
				require.Equal(t, "0xdeposit", depositAddress)

				return status, err
			}),
			logger: hclog.NewNullLogger(),
		}
	}

	t.Run("success", func(t *testing.T) {
		fetcher := newFetcher(&oneClickExecutionStatus{
			Status:              "SUCCESS",
			OriginTxHashes:      []string{"", "0xorigin"},
			DestinationTxHashes: []string{"destsig"},
			AmountOut:           "12.5",
		}, nil)

		envelope, err := fetcher.FetchStatus(ctx, request)
		require.NoError(t, err)
		require.Equal(t, &common.StatusEnvelope{
			Status:    common.StatusComplete,
			SrcChain:  common.ChainStatus{ChainID: common.ChainIDEthereum, TxHash: "0xorigin"},
			DestChain: &common.ChainStatus{ChainID: common.ChainIDSolana, TxHash: "destsig", Amount: "12.5"},
		}, envelope)
	})

	t.Run("pending", func(t *testing.T) {
		fetcher := newFetcher(&oneClickExecutionStatus{Status: "PROCESSING"}, nil)

		envelope, err := fetcher.FetchStatus(ctx, request)
		require.NoError(t, err)
		require.Equal(t, common.StatusPending, envelope.Status)
		require.Nil(t, envelope.DestChain)
	})

	t.Run("refunded", func(t *testing.T) {
		fetcher := newFetcher(&oneClickExecutionStatus{Status: "REFUNDED"}, nil)

		envelope, err := fetcher.FetchStatus(ctx, request)
		require.NoError(t, err)
		require.Equal(t, common.StatusFailed, envelope.Status)
		require.NotNil(t, envelope.DestChain)
	})

	t.Run("api error", func(t *testing.T) {
		fetcher := newFetcher(nil, errors.New("unauthorized"))

		_, err := fetcher.FetchStatus(ctx, request)
		require.ErrorContains(t, err, "unauthorized")
	})

	t.Run("unknown status", func(t *testing.T) {
		fetcher := newFetcher(&oneClickExecutionStatus{Status: "TELEPORTED"}, nil)

		_, err := fetcher.FetchStatus(ctx, request)
		require.ErrorIs(t, err, errMalformedResponse)
	})

	t.Run("missing deposit address", func(t *testing.T) {
		fetcher := newFetcher(nil, nil)

		_, err := fetcher.FetchStatus(ctx, core.StatusRequest{Kind: common.ItemKindSwap})
		require.Error(t, err)
	})
}

func TestMapOneClickStatus(t *testing.T) {
	cases := map[string]common.StatusValue{
		"SUCCESS":            common.StatusComplete,
		"success":            common.StatusComplete,
		"FAILED":             common.StatusFailed,
		"REFUNDED":           common.StatusFailed,
		"PENDING_DEPOSIT":    common.StatusPending,
		"KNOWN_DEPOSIT_TX":   common.StatusPending,
		"PROCESSING":         common.StatusPending,
		"INCOMPLETE_DEPOSIT": common.StatusPending,
	}

	for input, expected := range cases {
		status, err := mapOneClickStatus(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, status, input)
	}

	_, err := mapOneClickStatus("")
	require.Error(t, err)
}
