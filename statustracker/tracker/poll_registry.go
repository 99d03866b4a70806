package tracker

import (
	"sync"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// PollRegistryImpl owns the live poll tokens. It does not deduplicate by item id,
// callers check HasToken before Start.
type PollRegistryImpl struct {
	lock   sync.RWMutex
	tokens map[string]*core.PollToken
	logger hclog.Logger
}

var _ core.PollRegistry = (*PollRegistryImpl)(nil)

func NewPollRegistry(logger hclog.Logger) *PollRegistryImpl {
	return &PollRegistryImpl{
		tokens: map[string]*core.PollToken{},
		logger: logger,
	}
}

func (r *PollRegistryImpl) Start(itemID string, pollFn core.PollFn, interval time.Duration) *core.PollToken {
	token := core.NewPollToken(uuid.NewString(), itemID, pollFn, interval)

	r.lock.Lock()
	r.tokens[token.ID] = token
	r.lock.Unlock()

	r.logger.Debug("Poll started", "itemID", itemID, "token", token.ID)

	return token
}

func (r *PollRegistryImpl) Stop(token *core.PollToken) {
	if token == nil {
		return
	}

	token.MarkStopped()

	r.lock.Lock()
	delete(r.tokens, token.ID)
	r.lock.Unlock()

	r.logger.Debug("Poll stopped", "itemID", token.ItemID, "token", token.ID)
}

func (r *PollRegistryImpl) HasToken(itemID string) bool {
	return r.GetToken(itemID) != nil
}

func (r *PollRegistryImpl) GetToken(itemID string) *core.PollToken {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, token := range r.tokens {
		if token.ItemID == itemID && !token.IsStopped() {
			return token
		}
	}

	return nil
}

func (r *PollRegistryImpl) Tokens() []*core.PollToken {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]*core.PollToken, 0, len(r.tokens))

	for _, token := range r.tokens {
		if !token.IsStopped() {
			result = append(result, token)
		}
	}

	return result
}
