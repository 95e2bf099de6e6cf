package types

import (
	"strconv"

	"cosmossdk.io/core/event"
	sdkmath "cosmossdk.io/math"
)

// Event type names for every state-changing operation.
const (
	EventTypeRegistryCreated      = ModuleName + ".registry_created"
	EventTypePoolCreated          = ModuleName + ".pool_created"
	EventTypeSwap                 = ModuleName + ".swap"
	EventTypeLiquidityAdded       = ModuleName + ".liquidity_added"
	EventTypeLiquidityRemoved     = ModuleName + ".liquidity_removed"
	EventTypeHolderRewardClaimed  = ModuleName + ".holder_reward_claimed"
	EventTypeRewardWindowRolled   = ModuleName + ".reward_window_rolled"
	EventTypeFeeChanged           = ModuleName + ".fee_changed"
	EventTypeFreezeBitsSet        = ModuleName + ".freeze_bits_set"
	EventTypeAdminBalanceRedeemed = ModuleName + ".admin_balance_redeemed"
	EventTypeMiningSpeedSet       = ModuleName + ".mining_speed_set"
)

// Event is a structured record emitted for external indexing. Events are
// never consumed internally.
type Event interface {
	EventType() string
	Attributes() []event.Attribute
}

func attr(key, value string) event.Attribute {
	return event.Attribute{Key: key, Value: value}
}

func uintAttr(key string, value uint64) event.Attribute {
	return attr(key, strconv.FormatUint(value, 10))
}

func intAttr(key string, value sdkmath.Int) event.Attribute {
	return attr(key, value.String())
}

// EventRegistryCreated records the one-time registry initialization.
type EventRegistryCreated struct {
	Authority string
	Nepoch    uint64
}

// NewEventRegistryCreated creates a new EventRegistryCreated event.
func NewEventRegistryCreated(authority string, nepoch uint64) *EventRegistryCreated {
	return &EventRegistryCreated{Authority: authority, Nepoch: nepoch}
}

func (e *EventRegistryCreated) EventType() string { return EventTypeRegistryCreated }

func (e *EventRegistryCreated) Attributes() []event.Attribute {
	return []event.Attribute{
		attr("authority", e.Authority),
		uintAttr("holder_reward_nepoch", e.Nepoch),
	}
}

// EventPoolCreated records a new pool.
type EventPoolCreated struct {
	PoolId   uint64
	Creator  string
	PoolType PoolType
	DenomX   string
	DenomY   string
}

// NewEventPoolCreated creates a new EventPoolCreated event.
func NewEventPoolCreated(pool Pool, creator string) *EventPoolCreated {
	return &EventPoolCreated{
		PoolId:   pool.Id,
		Creator:  creator,
		PoolType: pool.PoolType,
		DenomX:   pool.DenomX,
		DenomY:   pool.DenomY,
	}
}

func (e *EventPoolCreated) EventType() string { return EventTypePoolCreated }

func (e *EventPoolCreated) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("creator", e.Creator),
		attr("pool_type", string(e.PoolType)),
		attr("denom_x", e.DenomX),
		attr("denom_y", e.DenomY),
	}
}

// EventSwap records a settled trade.
type EventSwap struct {
	PoolId    uint64
	Trader    string
	DenomIn   string
	DenomOut  string
	AmountIn  sdkmath.Int
	AmountOut sdkmath.Int
	AdminFee  sdkmath.Int
	ThFee     sdkmath.Int
	LpFee     sdkmath.Int
}

// NewEventSwap creates a new EventSwap event.
func NewEventSwap(poolID uint64, trader, denomIn, denomOut string, amountIn, amountOut, adminFee, thFee, lpFee sdkmath.Int) *EventSwap {
	return &EventSwap{
		PoolId:    poolID,
		Trader:    trader,
		DenomIn:   denomIn,
		DenomOut:  denomOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
		AdminFee:  adminFee,
		ThFee:     thFee,
		LpFee:     lpFee,
	}
}

func (e *EventSwap) EventType() string { return EventTypeSwap }

func (e *EventSwap) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("trader", e.Trader),
		attr("denom_in", e.DenomIn),
		attr("denom_out", e.DenomOut),
		intAttr("amount_in", e.AmountIn),
		intAttr("amount_out", e.AmountOut),
		intAttr("admin_fee", e.AdminFee),
		intAttr("th_fee", e.ThFee),
		intAttr("lp_fee", e.LpFee),
	}
}

// EventLiquidityAdded records a deposit and the shares it minted.
type EventLiquidityAdded struct {
	PoolId       uint64
	Provider     string
	AmountX      sdkmath.Int
	AmountY      sdkmath.Int
	SharesMinted sdkmath.Int
	LockEpochs   uint64
}

// NewEventLiquidityAdded creates a new EventLiquidityAdded event.
func NewEventLiquidityAdded(poolID uint64, provider string, amountX, amountY, sharesMinted sdkmath.Int, lockEpochs uint64) *EventLiquidityAdded {
	return &EventLiquidityAdded{
		PoolId:       poolID,
		Provider:     provider,
		AmountX:      amountX,
		AmountY:      amountY,
		SharesMinted: sharesMinted,
		LockEpochs:   lockEpochs,
	}
}

func (e *EventLiquidityAdded) EventType() string { return EventTypeLiquidityAdded }

func (e *EventLiquidityAdded) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("provider", e.Provider),
		intAttr("amount_x", e.AmountX),
		intAttr("amount_y", e.AmountY),
		intAttr("shares_minted", e.SharesMinted),
		uintAttr("lock_epochs", e.LockEpochs),
	}
}

// EventLiquidityRemoved records a withdrawal, its payouts, and any mining
// reward disbursed alongside.
type EventLiquidityRemoved struct {
	PoolId       uint64
	Owner        string
	SharesBurned sdkmath.Int
	AmountX      sdkmath.Int
	AmountY      sdkmath.Int
	MiningReward sdkmath.Int
	Forced       bool
}

// NewEventLiquidityRemoved creates a new EventLiquidityRemoved event.
func NewEventLiquidityRemoved(poolID uint64, owner string, sharesBurned, amountX, amountY, miningReward sdkmath.Int, forced bool) *EventLiquidityRemoved {
	return &EventLiquidityRemoved{
		PoolId:       poolID,
		Owner:        owner,
		SharesBurned: sharesBurned,
		AmountX:      amountX,
		AmountY:      amountY,
		MiningReward: miningReward,
		Forced:       forced,
	}
}

func (e *EventLiquidityRemoved) EventType() string { return EventTypeLiquidityRemoved }

func (e *EventLiquidityRemoved) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("owner", e.Owner),
		intAttr("shares_burned", e.SharesBurned),
		intAttr("amount_x", e.AmountX),
		intAttr("amount_y", e.AmountY),
		intAttr("mining_reward", e.MiningReward),
		attr("forced", strconv.FormatBool(e.Forced)),
	}
}

// EventHolderRewardClaimed records a holder reward payout.
type EventHolderRewardClaimed struct {
	PoolId  uint64
	Claimer string
	StakeId uint64
	AmountX sdkmath.Int
	AmountY sdkmath.Int
	Epoch   uint64
}

// NewEventHolderRewardClaimed creates a new EventHolderRewardClaimed event.
func NewEventHolderRewardClaimed(poolID uint64, claimer string, stakeID uint64, amountX, amountY sdkmath.Int, epoch uint64) *EventHolderRewardClaimed {
	return &EventHolderRewardClaimed{
		PoolId:  poolID,
		Claimer: claimer,
		StakeId: stakeID,
		AmountX: amountX,
		AmountY: amountY,
		Epoch:   epoch,
	}
}

func (e *EventHolderRewardClaimed) EventType() string { return EventTypeHolderRewardClaimed }

func (e *EventHolderRewardClaimed) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("claimer", e.Claimer),
		uintAttr("stake_id", e.StakeId),
		intAttr("amount_x", e.AmountX),
		intAttr("amount_y", e.AmountY),
		uintAttr("epoch", e.Epoch),
	}
}

// EventRewardWindowRolled records a holder reward window advancing.
type EventRewardWindowRolled struct {
	PoolId     uint64
	StartEpoch uint64
	EndEpoch   uint64
	XSupply    sdkmath.Int
	YSupply    sdkmath.Int
	ForfeitedX sdkmath.Int
	ForfeitedY sdkmath.Int
}

// NewEventRewardWindowRolled creates a new EventRewardWindowRolled event.
func NewEventRewardWindowRolled(poolID uint64, startEpoch, endEpoch uint64, xSupply, ySupply, forfeitedX, forfeitedY sdkmath.Int) *EventRewardWindowRolled {
	return &EventRewardWindowRolled{
		PoolId:     poolID,
		StartEpoch: startEpoch,
		EndEpoch:   endEpoch,
		XSupply:    xSupply,
		YSupply:    ySupply,
		ForfeitedX: forfeitedX,
		ForfeitedY: forfeitedY,
	}
}

func (e *EventRewardWindowRolled) EventType() string { return EventTypeRewardWindowRolled }

func (e *EventRewardWindowRolled) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		uintAttr("start_epoch", e.StartEpoch),
		uintAttr("end_epoch", e.EndEpoch),
		intAttr("x_supply", e.XSupply),
		intAttr("y_supply", e.YSupply),
		intAttr("forfeited_x", e.ForfeitedX),
		intAttr("forfeited_y", e.ForfeitedY),
	}
}

// EventFeeChanged records a fee configuration change.
type EventFeeChanged struct {
	PoolId         uint64
	Authority      string
	FeeDirection   FeeDirection
	AdminFeeBps    uint64
	LpFeeBps       uint64
	ThFeeBps       uint64
	WithdrawFeeBps uint64
}

// NewEventFeeChanged creates a new EventFeeChanged event.
func NewEventFeeChanged(pool Pool, authority string) *EventFeeChanged {
	return &EventFeeChanged{
		PoolId:         pool.Id,
		Authority:      authority,
		FeeDirection:   pool.FeeDirection,
		AdminFeeBps:    pool.AdminFeeBps,
		LpFeeBps:       pool.LpFeeBps,
		ThFeeBps:       pool.ThFeeBps,
		WithdrawFeeBps: pool.WithdrawFeeBps,
	}
}

func (e *EventFeeChanged) EventType() string { return EventTypeFeeChanged }

func (e *EventFeeChanged) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("authority", e.Authority),
		attr("fee_direction", string(e.FeeDirection)),
		uintAttr("admin_fee_bps", e.AdminFeeBps),
		uintAttr("lp_fee_bps", e.LpFeeBps),
		uintAttr("th_fee_bps", e.ThFeeBps),
		uintAttr("withdraw_fee_bps", e.WithdrawFeeBps),
	}
}

// EventFreezeBitsSet records a freeze mask change.
type EventFreezeBitsSet struct {
	PoolId     uint64
	Authority  string
	FreezeBits uint32
}

// NewEventFreezeBitsSet creates a new EventFreezeBitsSet event.
func NewEventFreezeBitsSet(poolID uint64, authority string, freezeBits uint32) *EventFreezeBitsSet {
	return &EventFreezeBitsSet{PoolId: poolID, Authority: authority, FreezeBits: freezeBits}
}

func (e *EventFreezeBitsSet) EventType() string { return EventTypeFreezeBitsSet }

func (e *EventFreezeBitsSet) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("authority", e.Authority),
		uintAttr("freeze_bits", uint64(e.FreezeBits)),
	}
}

// EventAdminBalanceRedeemed records an admin fee withdrawal.
type EventAdminBalanceRedeemed struct {
	PoolId    uint64
	Authority string
	Recipient string
	AmountX   sdkmath.Int
	AmountY   sdkmath.Int
}

// NewEventAdminBalanceRedeemed creates a new EventAdminBalanceRedeemed event.
func NewEventAdminBalanceRedeemed(poolID uint64, authority, recipient string, amountX, amountY sdkmath.Int) *EventAdminBalanceRedeemed {
	return &EventAdminBalanceRedeemed{
		PoolId:    poolID,
		Authority: authority,
		Recipient: recipient,
		AmountX:   amountX,
		AmountY:   amountY,
	}
}

func (e *EventAdminBalanceRedeemed) EventType() string { return EventTypeAdminBalanceRedeemed }

func (e *EventAdminBalanceRedeemed) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("authority", e.Authority),
		attr("recipient", e.Recipient),
		intAttr("amount_x", e.AmountX),
		intAttr("amount_y", e.AmountY),
	}
}

// EventMiningSpeedSet records a mining configuration change.
type EventMiningSpeedSet struct {
	PoolId      uint64
	Authority   string
	Treasury    string
	RewardDenom string
	Speed       uint64
}

// NewEventMiningSpeedSet creates a new EventMiningSpeedSet event.
func NewEventMiningSpeedSet(poolID uint64, authority, treasury, rewardDenom string, speed uint64) *EventMiningSpeedSet {
	return &EventMiningSpeedSet{
		PoolId:      poolID,
		Authority:   authority,
		Treasury:    treasury,
		RewardDenom: rewardDenom,
		Speed:       speed,
	}
}

func (e *EventMiningSpeedSet) EventType() string { return EventTypeMiningSpeedSet }

func (e *EventMiningSpeedSet) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", e.PoolId),
		attr("authority", e.Authority),
		attr("treasury", e.Treasury),
		attr("reward_denom", e.RewardDenom),
		uintAttr("speed", e.Speed),
	}
}
