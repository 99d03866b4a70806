package fetchers

import (
	"context"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

// RoutingFetcher sends one click swaps to the one click fetcher and everything else to the default fetcher
type RoutingFetcher struct {
	defaultFetcher core.StatusFetcher
	swapFetchers   map[string]core.StatusFetcher
}

var _ core.StatusFetcher = (*RoutingFetcher)(nil)

func NewRoutingFetcher(defaultFetcher core.StatusFetcher, swapFetchers map[string]core.StatusFetcher) *RoutingFetcher {
	if swapFetchers == nil {
		swapFetchers = map[string]core.StatusFetcher{}
	}

	return &RoutingFetcher{
		defaultFetcher: defaultFetcher,
		swapFetchers:   swapFetchers,
	}
}

func NewStatusFetcher(config core.FetchersConfig, logger hclog.Logger) *RoutingFetcher {
	swapFetchers := map[string]core.StatusFetcher{}

	if config.OneClick.Enabled {
		swapFetchers[common.SwapProviderOneClick] = NewOneClickFetcher(config.OneClick, logger.Named("one_click"))
	}

	return NewRoutingFetcher(NewBridgeAPIFetcher(config.BridgeAPI, logger.Named("bridge_api")), swapFetchers)
}

func (f *RoutingFetcher) FetchStatus(ctx context.Context, request core.StatusRequest) (*common.StatusEnvelope, error) {
	return f.resolve(request).FetchStatus(ctx, request)
}

func (f *RoutingFetcher) resolve(request core.StatusRequest) core.StatusFetcher {
	if request.Kind == common.ItemKindSwap && request.DepositAddress != "" {
		if fetcher, exists := f.swapFetchers[request.Provider]; exists {
			return fetcher
		}
	}

	return f.defaultFetcher
}
