package identity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
)

// IdentityProviderImpl serves the selected account and network from configuration.
// The selection can be changed at runtime through the API.
type IdentityProviderImpl struct {
	lock                    sync.RWMutex
	selectedAccount         string
	selectedNetworkClientID string
	networkClients          map[string]core.NetworkClientConfiguration
}

var _ core.IdentitySelector = (*IdentityProviderImpl)(nil)

func NewIdentityProvider(config core.IdentityConfig) *IdentityProviderImpl {
	networkClients := make(map[string]core.NetworkClientConfiguration, len(config.NetworkClients))
	for id, networkClient := range config.NetworkClients {
		// config keys are lower cased when loaded
		networkClients[strings.ToLower(id)] = networkClient
	}

	return &IdentityProviderImpl{
		selectedAccount:         common.NormalizeAccount(config.SelectedAccount),
		selectedNetworkClientID: strings.ToLower(config.SelectedNetworkClientID),
		networkClients:          networkClients,
	}
}

func (p *IdentityProviderImpl) GetSelectedAccountAddress() string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.selectedAccount
}

// GetCurrentChainID returns the hex chain id of the selected network client or an empty string
func (p *IdentityProviderImpl) GetCurrentChainID() string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	networkClient, exists := p.networkClients[p.selectedNetworkClientID]
	if !exists {
		return ""
	}

	chainID, err := common.NormalizeHexChainID(networkClient.ChainID)
	if err != nil {
		return ""
	}

	return chainID
}

func (p *IdentityProviderImpl) GetSelectedNetworkClientID() string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.selectedNetworkClientID
}

func (p *IdentityProviderImpl) GetNetworkClientByID(networkClientID string) (core.NetworkClient, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	id := strings.ToLower(networkClientID)

	networkClient, exists := p.networkClients[id]
	if !exists {
		return core.NetworkClient{}, fmt.Errorf("network client %s not found", networkClientID)
	}

	return core.NetworkClient{
		ID:            id,
		Configuration: networkClient,
	}, nil
}

func (p *IdentityProviderImpl) SelectAccount(account string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.selectedAccount = common.NormalizeAccount(account)
}

func (p *IdentityProviderImpl) SelectNetworkClient(networkClientID string) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	id := strings.ToLower(networkClientID)

	if _, exists := p.networkClients[id]; !exists {
		return fmt.Errorf("network client %s not found", networkClientID)
	}

	p.selectedNetworkClientID = id

	return nil
}
