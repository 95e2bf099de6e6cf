package keeper

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"

	"github.com/vividnetwork/suiswap-contract/types"
)

type Keeper struct {
	schema       collections.Schema
	eventService event.Service
	logger       log.Logger
	authority    string

	BankKeeper  types.BankKeeper
	EpochKeeper types.EpochKeeper
	FarmKeeper  types.FarmKeeper

	Params       collections.Item[types.Params]
	Pools        collections.Map[uint64, types.Pool]
	PoolID       collections.Sequence
	PoolByDenoms collections.Map[string, uint64]
}

func NewKeeper(
	storeService store.KVStoreService,
	eventService event.Service,
	logger log.Logger,
	authority string,
	bankKeeper types.BankKeeper,
	epochKeeper types.EpochKeeper,
	farmKeeper types.FarmKeeper,
) *Keeper {
	builder := collections.NewSchemaBuilder(storeService)

	keeper := &Keeper{
		eventService: eventService,
		logger:       logger.With("module", "x/"+types.ModuleName),
		authority:    authority,
		BankKeeper:   bankKeeper,
		EpochKeeper:  epochKeeper,
		FarmKeeper:   farmKeeper,
		Params:       collections.NewItem(builder, types.ParamsKeyPrefix, types.ParamsName, types.JSONValue[types.Params](types.ParamsName)),
		Pools:        collections.NewMap(builder, types.PoolsKeyPrefix, types.PoolsName, collections.Uint64Key, types.JSONValue[types.Pool](types.PoolsName)),
		PoolID:       collections.NewSequence(builder, types.PoolIDSequenceKeyPrefix, types.PoolIDSequenceName),
		PoolByDenoms: collections.NewMap(builder, types.PoolByDenomsKeyPrefix, types.PoolByDenomsName, collections.StringKey, collections.Uint64Value),
	}

	schema, err := builder.Build()
	if err != nil {
		panic(err)
	}

	keeper.schema = schema
	return keeper
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// getLogger returns a logger with pool module context.
func (k Keeper) getLogger() log.Logger {
	return k.logger
}

// emitEvent emits the provided typed event, logging instead of failing if emission errors.
func (k Keeper) emitEvent(ctx context.Context, ev types.Event) {
	if err := k.eventService.EventManager(ctx).EmitKV(ev.EventType(), ev.Attributes()...); err != nil {
		k.getLogger().Error("error emitting event", "event", ev.EventType(), "error", err)
	}
}
