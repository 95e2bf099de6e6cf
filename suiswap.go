// Package suiswap assembles the exchange pool module for in-process use: the
// keeper wired to an in-memory store, a recording event service, and the
// bank, epoch, and farm collaborators from the runtime package. Chain
// embeddings construct keeper.NewKeeper directly with their own services; the
// Engine exists for tools, simulations, and tests that want a working pool
// system without a node around it.
package suiswap

import (
	"cosmossdk.io/log"

	"github.com/vividnetwork/suiswap-contract/keeper"
	"github.com/vividnetwork/suiswap-contract/runtime"
	"github.com/vividnetwork/suiswap-contract/types"
)

// Engine is a self-contained pool system: the keeper plus the in-memory
// services it runs against. The service handles are exported so callers can
// fund accounts, advance epochs, and inspect emitted events.
type Engine struct {
	Keeper *keeper.Keeper
	Bank   *runtime.Bank
	Farm   *runtime.Farm
	Events *runtime.EventService
	Epochs types.EpochKeeper
}

// NewEngine builds an Engine around the given epoch source. Pass
// runtime.NewManualEpochs to drive time by hand or runtime.DayEpochs for
// wall-clock epochs.
func NewEngine(logger log.Logger, authority string, epochs types.EpochKeeper) *Engine {
	bank := runtime.NewBank()
	farm := runtime.NewFarm()
	events := runtime.NewEventService()
	k := keeper.NewKeeper(
		runtime.NewKVStoreService(),
		events,
		logger,
		authority,
		bank,
		epochs,
		farm,
	)
	return &Engine{
		Keeper: k,
		Bank:   bank,
		Farm:   farm,
		Events: events,
		Epochs: epochs,
	}
}
