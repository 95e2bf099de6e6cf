package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/keeper"
	"github.com/vividnetwork/suiswap-contract/runtime"
	"github.com/vividnetwork/suiswap-contract/types"
	"github.com/vividnetwork/suiswap-contract/utils"
)

// Operation weights mirror expected traffic: swaps dominate, liquidity churn
// is regular, admin actions are rare.
const (
	DefaultWeightSwap            = 35
	DefaultWeightAddLiquidity    = 15
	DefaultWeightRemoveLiquidity = 10
	DefaultWeightSingleSideExit  = 4
	DefaultWeightClaimReward     = 8
	DefaultWeightRolloverWindow  = 4
	DefaultWeightAdvanceEpoch    = 8
	DefaultWeightCreatePool      = 4
	DefaultWeightChangeFee       = 3
	DefaultWeightFreezeToggle    = 3
	DefaultWeightMiningSpeed     = 3
	DefaultWeightRedeemAdmin     = 3
)

const (
	MaxSwapAmount         = 100_000
	MinDepositAmount      = 1_000
	MaxDepositAmount      = 1_000_000
	MaxEpochStep          = 5
	ChanceOfTightSlippage = 8 // 1 in X
	ChanceOfLockedDeposit = 4 // 1 in X
	ChanceOfStakedReceipt = 2 // 1 in X
	ChanceOfForcedExit    = 6 // 1 in X
	ChanceOfPartialExit   = 2 // 1 in X
	ChanceOfMiningShutoff = 3 // 1 in X
	TreasuryBalance       = 1_000_000_000_000
)

// Environment bundles a keeper with the in-memory services backing it.
type Environment struct {
	Keeper *keeper.Keeper
	Store  *runtime.MemKVStoreService
	Events *runtime.EventService
	Bank   *runtime.Bank
	Epochs *runtime.ManualEpochs
	Farm   *runtime.Farm

	Authority utils.Address
}

// NewEnvironment builds a keeper over fresh in-memory services and imports
// the given genesis state with the clock at the given epoch.
func NewEnvironment(r *rand.Rand, genState *types.GenesisState, epoch uint64) *Environment {
	env := &Environment{
		Store:     runtime.NewKVStoreService(),
		Events:    runtime.NewEventService(),
		Bank:      runtime.NewBank(),
		Epochs:    runtime.NewManualEpochs(epoch),
		Farm:      runtime.NewFarm(),
		Authority: RandomAddress(r),
	}
	env.Keeper = keeper.NewKeeper(env.Store, env.Events, log.NewNopLogger(), env.Authority.Bech32, env.Bank, env.Epochs, env.Farm)
	env.Keeper.InitGenesis(context.Background(), genState)
	return env
}

// FundPoolBooks credits every pool account with exactly what its books owe,
// the position a live chain's bank genesis would leave it in.
func (e *Environment) FundPoolBooks(ctx context.Context) error {
	pools, err := e.Keeper.GetPools(ctx)
	if err != nil {
		return err
	}
	for _, pool := range pools {
		owedX := pool.ReserveX.Add(pool.AdminX).Add(pool.ThX).Add(pool.ThReward.X)
		owedY := pool.ReserveY.Add(pool.AdminY).Add(pool.ThY).Add(pool.ThReward.Y)
		e.Bank.Fund(pool.GetAddress(), sdk.NewCoin(pool.DenomX, owedX), sdk.NewCoin(pool.DenomY, owedY))
	}
	return nil
}

type heldReceipt struct {
	owner   utils.Address
	receipt types.ShareReceipt
}

type poolStake struct {
	poolID uint64
	stake  types.StakeRecord
}

// Simulator drives random weighted operations against a keeper, standing in
// for traders, liquidity providers, the farm, and the authority at once.
type Simulator struct {
	env *Environment

	// treasury backs mining emission configured during the run. Pools imported
	// with an unfunded treasury exercise the disbursement skip path instead.
	treasury utils.Address

	receipts    []heldReceipt
	stakes      []poolStake
	totals      map[uint64]types.FarmTotals
	nextStakeID uint64
	nextPair    uint64
}

type weightedOp struct {
	name   string
	weight int
	run    func(ctx context.Context, r *rand.Rand) error
}

// NewSimulator prepares a simulator over the environment, funding a shared
// mining treasury.
func NewSimulator(r *rand.Rand, env *Environment) *Simulator {
	treasury := RandomAddress(r)
	env.Bank.Fund(treasury.Bytes, sdk.NewInt64Coin("reward", TreasuryBalance))

	return &Simulator{
		env:         env,
		treasury:    treasury,
		totals:      make(map[uint64]types.FarmTotals),
		nextStakeID: 1,
	}
}

// Step draws one weighted operation and applies it, returning the operation
// name. Expected business rejections, a frozen pool, a drained balance, a
// missed slippage bound, count as no-ops; any other failure is returned.
func (s *Simulator) Step(ctx context.Context, r *rand.Rand) (string, error) {
	ops := s.operations()
	total := 0
	for _, op := range ops {
		total += op.weight
	}

	roll := r.Intn(total)
	for _, op := range ops {
		if roll < op.weight {
			err := op.run(ctx, r)
			if err != nil && !benignRejection(err) {
				return op.name, err
			}
			return op.name, nil
		}
		roll -= op.weight
	}
	return "", fmt.Errorf("operation roll out of range")
}

// CheckInvariants verifies every pool still validates and that each pool
// account holds exactly what the pool's books owe per denom.
func (s *Simulator) CheckInvariants(ctx context.Context) error {
	pools, err := s.env.Keeper.GetPools(ctx)
	if err != nil {
		return err
	}
	for _, pool := range pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d no longer validates: %w", pool.Id, err)
		}
		addr := pool.GetAddress()
		owedX := pool.ReserveX.Add(pool.AdminX).Add(pool.ThX).Add(pool.ThReward.X)
		owedY := pool.ReserveY.Add(pool.AdminY).Add(pool.ThY).Add(pool.ThReward.Y)
		if held := s.env.Bank.GetBalance(ctx, addr, pool.DenomX).Amount; !held.Equal(owedX) {
			return fmt.Errorf("pool %d insolvent in %s: books owe %s, account holds %s", pool.Id, pool.DenomX, owedX, held)
		}
		if held := s.env.Bank.GetBalance(ctx, addr, pool.DenomY).Amount; !held.Equal(owedY) {
			return fmt.Errorf("pool %d insolvent in %s: books owe %s, account holds %s", pool.Id, pool.DenomY, owedY, held)
		}
	}
	return nil
}

func benignRejection(err error) bool {
	for _, expected := range []error{
		types.ErrInvalidParameter,
		types.ErrInsufficientBalance,
		types.ErrSlippageExceeded,
		types.ErrOperationFrozen,
		types.ErrDuplicatePool,
	} {
		if errors.Is(err, expected) {
			return true
		}
	}
	return false
}

func (s *Simulator) operations() []weightedOp {
	return []weightedOp{
		{"swap", DefaultWeightSwap, s.opSwap},
		{"add_liquidity", DefaultWeightAddLiquidity, s.opAddLiquidity},
		{"remove_liquidity", DefaultWeightRemoveLiquidity, s.opRemoveLiquidity},
		{"single_side_exit", DefaultWeightSingleSideExit, s.opSingleSideExit},
		{"claim_reward", DefaultWeightClaimReward, s.opClaimReward},
		{"rollover_window", DefaultWeightRolloverWindow, s.opRolloverWindow},
		{"advance_epoch", DefaultWeightAdvanceEpoch, s.opAdvanceEpoch},
		{"create_pool", DefaultWeightCreatePool, s.opCreatePool},
		{"change_fee", DefaultWeightChangeFee, s.opChangeFee},
		{"freeze_toggle", DefaultWeightFreezeToggle, s.opFreezeToggle},
		{"mining_speed", DefaultWeightMiningSpeed, s.opMiningSpeed},
		{"redeem_admin", DefaultWeightRedeemAdmin, s.opRedeemAdmin},
	}
}

func (s *Simulator) randomPool(ctx context.Context, r *rand.Rand) (types.Pool, bool, error) {
	pools, err := s.env.Keeper.GetPools(ctx)
	if err != nil || len(pools) == 0 {
		return types.Pool{}, false, err
	}
	return pools[r.Intn(len(pools))], true, nil
}

func randomSide(r *rand.Rand) types.Side {
	if r.Intn(2) == 0 {
		return types.SideX
	}
	return types.SideY
}

func (s *Simulator) opSwap(ctx context.Context, r *rand.Rand) error {
	pool, ok, err := s.randomPool(ctx, r)
	if !ok {
		return err
	}

	side := randomSide(r)
	amount := sdkmath.NewInt(r.Int63n(MaxSwapAmount) + 1)
	trader := RandomAddress(r)
	s.env.Bank.Fund(trader.Bytes, sdk.NewCoin(pool.Denom(side), amount))

	minOut := sdkmath.ZeroInt()
	if r.Intn(ChanceOfTightSlippage) == 0 {
		minOut = amount.MulRaw(2)
	}

	_, err = s.env.Keeper.Swap(ctx, trader.Bech32, pool.Id, side, amount, minOut)
	return err
}

func (s *Simulator) opAddLiquidity(ctx context.Context, r *rand.Rand) error {
	pool, ok, err := s.randomPool(ctx, r)
	if !ok {
		return err
	}

	amountX := randAmount(r, MinDepositAmount, MaxDepositAmount)
	amountY := randAmount(r, MinDepositAmount, MaxDepositAmount)
	provider := RandomAddress(r)
	s.env.Bank.Fund(provider.Bytes, sdk.NewCoin(pool.DenomX, amountX), sdk.NewCoin(pool.DenomY, amountY))

	lockEpochs := uint64(0)
	params, err := s.env.Keeper.GetParams(ctx)
	if err != nil {
		return err
	}
	if len(params.BoostSchedule) > 0 && r.Intn(ChanceOfLockedDeposit) == 0 {
		lockEpochs = params.BoostSchedule[r.Intn(len(params.BoostSchedule))].LockEpochs
	}

	receipt, err := s.env.Keeper.AddLiquidity(ctx, provider.Bech32, pool.Id, amountX, amountY, lockEpochs, r.Intn(2) == 0)
	if err != nil {
		return err
	}

	s.receipts = append(s.receipts, heldReceipt{owner: provider, receipt: *receipt})
	if r.Intn(ChanceOfStakedReceipt) == 0 {
		s.stakeReceipt(pool.Id, *receipt)
	}
	return nil
}

// stakeReceipt registers a freshly minted receipt with the simulated farm,
// growing the totals the keeper snapshots at the next window rollover.
func (s *Simulator) stakeReceipt(poolID uint64, receipt types.ShareReceipt) {
	boost := receipt.Value.MulRaw(int64(receipt.BoostMultiplier)).QuoRaw(int64(types.DefaultBoostMultiplier))
	stake := types.StakeRecord{
		Id:         s.nextStakeID,
		Boost:      boost,
		StartEpoch: receipt.StartEpoch,
		EndEpoch:   receipt.EndEpoch,
	}
	s.nextStakeID++
	s.stakes = append(s.stakes, poolStake{poolID: poolID, stake: stake})

	totals := s.totalsFor(poolID)
	totals.StakeAmount = totals.StakeAmount.Add(receipt.Value)
	totals.StakeBoost = totals.StakeBoost.Add(boost)
	s.totals[poolID] = totals
}

func (s *Simulator) totalsFor(poolID uint64) types.FarmTotals {
	if totals, ok := s.totals[poolID]; ok {
		return totals
	}
	return types.NewFarmTotals(sdkmath.ZeroInt(), sdkmath.ZeroInt())
}

func (s *Simulator) opRemoveLiquidity(ctx context.Context, r *rand.Rand) error {
	if len(s.receipts) == 0 {
		return nil
	}
	idx := r.Intn(len(s.receipts))
	held := s.receipts[idx]

	amount := held.receipt.Value
	if r.Intn(ChanceOfPartialExit) == 0 && amount.GT(sdkmath.OneInt()) {
		amount = sdkmath.NewInt(r.Int63n(amount.Int64()) + 1)
	}

	var result keeper.RemoveLiquidityResult
	var err error
	if r.Intn(ChanceOfForcedExit) == 0 {
		result, err = s.env.Keeper.RemoveLiquidityForced(ctx, held.owner.Bech32, held.receipt, amount)
	} else {
		result, err = s.env.Keeper.RemoveLiquidity(ctx, held.owner.Bech32, held.receipt, amount)
	}
	if err != nil {
		return err
	}

	s.replaceReceipt(idx, result.Receipt)
	return nil
}

func (s *Simulator) opSingleSideExit(ctx context.Context, r *rand.Rand) error {
	if len(s.receipts) == 0 {
		return nil
	}
	idx := r.Intn(len(s.receipts))
	held := s.receipts[idx]

	amount := held.receipt.Value
	if r.Intn(ChanceOfPartialExit) == 0 && amount.GT(sdkmath.OneInt()) {
		amount = sdkmath.NewInt(r.Int63n(amount.Int64()) + 1)
	}

	result, err := s.env.Keeper.RemoveLiquiditySingleSide(ctx, held.owner.Bech32, held.receipt, amount, randomSide(r))
	if err != nil {
		return err
	}

	s.replaceReceipt(idx, result.Receipt)
	return nil
}

func (s *Simulator) replaceReceipt(idx int, survivor *types.ShareReceipt) {
	if survivor != nil {
		s.receipts[idx].receipt = *survivor
		return
	}
	s.receipts[idx] = s.receipts[len(s.receipts)-1]
	s.receipts = s.receipts[:len(s.receipts)-1]
}

func (s *Simulator) opClaimReward(ctx context.Context, r *rand.Rand) error {
	if len(s.stakes) == 0 {
		return nil
	}
	entry := s.stakes[r.Intn(len(s.stakes))]
	claimer := RandomAddress(r)

	_, _, err := s.env.Keeper.ClaimHolderReward(ctx, claimer.Bech32, entry.poolID, s.totalsFor(entry.poolID), entry.stake)
	return err
}

func (s *Simulator) opRolloverWindow(ctx context.Context, r *rand.Rand) error {
	pool, ok, err := s.randomPool(ctx, r)
	if !ok {
		return err
	}
	return s.env.Keeper.UpdateHolderRewardWindow(ctx, pool.Id, s.totalsFor(pool.Id))
}

func (s *Simulator) opAdvanceEpoch(_ context.Context, r *rand.Rand) error {
	s.env.Epochs.Advance(uint64(r.Intn(MaxEpochStep)) + 1)
	return nil
}

func (s *Simulator) opCreatePool(ctx context.Context, r *rand.Rand) error {
	creator := RandomAddress(r)
	denomX := fmt.Sprintf("sim%dx", s.nextPair)
	denomY := fmt.Sprintf("sim%dy", s.nextPair)
	s.nextPair++

	_, err := s.env.Keeper.CreatePoolPermissionless(ctx, creator.Bech32, denomX, denomY)
	return err
}

func (s *Simulator) opChangeFee(ctx context.Context, r *rand.Rand) error {
	pool, ok, err := s.randomPool(ctx, r)
	if !ok {
		return err
	}

	direction := types.FeeCollectX
	if r.Intn(2) == 0 {
		direction = types.FeeCollectY
	}
	return s.env.Keeper.ChangeFee(ctx, s.env.Authority.Bech32, pool.Id, direction,
		uint64(r.Intn(MaxFeeBps)), uint64(r.Intn(MaxFeeBps)), uint64(r.Intn(MaxFeeBps)), uint64(r.Intn(MaxWithdrawFeeBps)))
}

func (s *Simulator) opFreezeToggle(ctx context.Context, r *rand.Rand) error {
	pool, ok, err := s.randomPool(ctx, r)
	if !ok {
		return err
	}
	bits := uint32(r.Intn(int(types.FreezeAllBits) + 1))
	return s.env.Keeper.SetFreezeBits(ctx, s.env.Authority.Bech32, pool.Id, bits)
}

func (s *Simulator) opMiningSpeed(ctx context.Context, r *rand.Rand) error {
	pool, ok, err := s.randomPool(ctx, r)
	if !ok {
		return err
	}
	if r.Intn(ChanceOfMiningShutoff) == 0 {
		return s.env.Keeper.SetMiningSpeed(ctx, s.env.Authority.Bech32, pool.Id, "", "", 0)
	}
	speed := uint64(r.Intn(MaxMiningSpeed)) + 1
	return s.env.Keeper.SetMiningSpeed(ctx, s.env.Authority.Bech32, pool.Id, s.treasury.Bech32, "reward", speed)
}

func (s *Simulator) opRedeemAdmin(ctx context.Context, r *rand.Rand) error {
	pool, ok, err := s.randomPool(ctx, r)
	if !ok {
		return err
	}
	recipient := RandomAddress(r)
	_, _, err = s.env.Keeper.RedeemAdminBalance(ctx, s.env.Authority.Bech32, pool.Id, recipient.Bech32)
	return err
}
