package keeper_test

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/types"
	"github.com/vividnetwork/suiswap-contract/utils"
)

// holderFeePool creates a pool collecting a 1% holder fee on the x side and
// seeds it with liquidity.
func (s *TestSuite) holderFeePool() types.Pool {
	attrs := zeroFeeAttrs("xcoin", "ycoin")
	attrs.ThFeeBps = 100
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 1_000_000, 1_000_000)
	return pool
}

// swapForHolderFee trades 100k x into the pool, collecting exactly 1000 x of
// holder fees.
func (s *TestSuite) swapForHolderFee(poolID uint64) {
	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 100_000))
	_, err := s.k.Swap(s.ctx, trader.Bech32, poolID, types.SideX, sdkmath.NewInt(100_000), sdkmath.ZeroInt())
	s.Require().NoError(err)
}

func (s *TestSuite) TestUpdateHolderRewardWindow_NoopWithinWindow() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)

	err := s.k.UpdateHolderRewardWindow(s.ctx, pool.Id, types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000)))
	s.Require().NoError(err)

	// Epoch 10 is still inside the [7, 13] window: nothing promotes.
	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(1_000).String(), stored.ThX.String())
	s.Require().True(stored.ThReward.X.IsZero())
	s.Require().Equal(uint64(7), stored.ThReward.StartEpoch)
	s.Require().Empty(s.events.EventsOfType(types.EventTypeRewardWindowRolled))
}

func (s *TestSuite) TestUpdateHolderRewardWindow_PromotesCollectedFees() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)

	s.epochs.Set(14)
	err := s.k.UpdateHolderRewardWindow(s.ctx, pool.Id, types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000)))
	s.Require().NoError(err)

	stored := s.getPool(pool.Id)
	s.Require().True(stored.ThX.IsZero(), "collected fees should move into the reward window")
	s.Require().Equal(sdkmath.NewInt(1_000).String(), stored.ThReward.X.String())
	s.Require().Equal(sdkmath.NewInt(1_000).String(), stored.ThReward.XSupply.String())
	s.Require().True(stored.ThReward.Y.IsZero())
	s.Require().Equal(sdkmath.NewInt(2_000).String(), stored.ThReward.TotalStakeBoost.String())
	s.Require().Equal(uint64(14), stored.ThReward.StartEpoch)
	s.Require().Equal(uint64(20), stored.ThReward.EndEpoch)
	s.Require().True(stored.AdminX.IsZero(), "an empty previous window forfeits nothing")

	ev := s.lastEventOfType(types.EventTypeRewardWindowRolled)
	s.Require().Equal("1000", s.eventAttr(ev, "x_supply"))
	s.Require().Equal("0", s.eventAttr(ev, "forfeited_x"))

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestUpdateHolderRewardWindow_ForfeitsUnclaimed() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)

	s.epochs.Set(14)
	totals := types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000))
	s.Require().NoError(s.k.UpdateHolderRewardWindow(s.ctx, pool.Id, totals))

	// More fees accrue during the window; nobody claims the 1000 sitting in
	// it. The next rollover hands the unclaimed balance to the admin.
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(21)
	s.Require().NoError(s.k.UpdateHolderRewardWindow(s.ctx, pool.Id, totals))

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(1_000).String(), stored.AdminX.String(), "unclaimed rewards should forfeit to the admin balance")
	s.Require().Equal(sdkmath.NewInt(1_000).String(), stored.ThReward.X.String())
	s.Require().Equal(uint64(21), stored.ThReward.StartEpoch)
	s.Require().Equal(uint64(27), stored.ThReward.EndEpoch)

	ev := s.lastEventOfType(types.EventTypeRewardWindowRolled)
	s.Require().Equal("1000", s.eventAttr(ev, "forfeited_x"))

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestClaimHolderReward_Success() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(14)

	claimer := s.fundedAccount()
	stake := types.StakeRecord{Id: 7, Boost: sdkmath.NewInt(500), StartEpoch: 1, EndEpoch: 1_000}
	totals := types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000))

	// The claim itself rolls the window forward, then pays the stake's
	// 500/2000 share of the 1000 x supply.
	paidX, paidY, err := s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, totals, stake)
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(250).String(), paidX.String())
	s.Require().True(paidY.IsZero())
	s.assertBalance(claimer.Bytes, "xcoin", 250)

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(750).String(), stored.ThReward.X.String())
	s.Require().Equal(sdkmath.NewInt(1_000).String(), stored.ThReward.XSupply.String(), "the window-start supply stays fixed while claims drain the balance")

	epoch, found, err := s.farm.GetClaimMarker(s.ctx, stake.Id, pool.Id)
	s.Require().NoError(err)
	s.Require().True(found, "a claim should leave a marker")
	s.Require().Equal(uint64(14), epoch)

	ev := s.lastEventOfType(types.EventTypeHolderRewardClaimed)
	s.Require().Equal("250", s.eventAttr(ev, "amount_x"))
	s.Require().Equal("14", s.eventAttr(ev, "epoch"))

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestClaimHolderReward_OncePerWindow() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(14)

	claimer := s.fundedAccount()
	stake := types.StakeRecord{Id: 7, Boost: sdkmath.NewInt(500), StartEpoch: 1, EndEpoch: 1_000}
	totals := types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000))

	_, _, err := s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, totals, stake)
	s.Require().NoError(err)

	_, _, err = s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, totals, stake)
	s.Require().ErrorIs(err, types.ErrInvalidParameter)
	s.Require().ErrorContains(err, "already claimed")
}

func (s *TestSuite) TestClaimHolderReward_AcrossWindows() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(14)

	claimer := s.fundedAccount()
	stake := types.StakeRecord{Id: 7, Boost: sdkmath.NewInt(500), StartEpoch: 1, EndEpoch: 1_000}

	paidX, _, err := s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000)), stake)
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(250).String(), paidX.String())

	// A fresh window with fresh fees: the 750 left unclaimed forfeits, and the
	// same stake claims again, now against a smaller total boost.
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(21)
	paidX, _, err = s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(1_000)), stake)
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(500).String(), paidX.String())
	s.assertBalance(claimer.Bytes, "xcoin", 750)

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(750).String(), stored.AdminX.String(), "the previous window's remainder should have forfeited")

	epoch, found, err := s.farm.GetClaimMarker(s.ctx, stake.Id, pool.Id)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(uint64(21), epoch, "the marker should move to the new claim epoch")

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestClaimHolderReward_FreshStakeWaitsForNextWindow() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(14)

	claimer := s.fundedAccount()
	totals := types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(1_000))

	// A stake that started at the window's own start epoch has no marker yet;
	// its start epoch stands in for one, which bars it from this window.
	stake := types.StakeRecord{Id: 9, Boost: sdkmath.NewInt(500), StartEpoch: 14, EndEpoch: 1_000}
	_, _, err := s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, totals, stake)
	s.Require().ErrorContains(err, "already claimed")

	_, found, err := s.farm.GetClaimMarker(s.ctx, stake.Id, pool.Id)
	s.Require().NoError(err)
	s.Require().False(found, "a rejected claim should not leave a marker")

	// The rejected claim persisted nothing, so both fee batches are still
	// waiting when the next window rolls. Now the stake participates like any
	// other and takes its half of the 2000 supply.
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(21)
	paidX, _, err := s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, totals, stake)
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(1_000).String(), paidX.String())
}

func (s *TestSuite) TestClaimHolderReward_ZeroTotalBoost() {
	pool := s.holderFeePool()
	s.swapForHolderFee(pool.Id)
	s.epochs.Set(14)

	claimer := s.fundedAccount()
	stake := types.StakeRecord{Id: 7, Boost: sdkmath.NewInt(500), StartEpoch: 1, EndEpoch: 1_000}

	// A window snapshotted with no participating boost pays nothing, but the
	// claim is still recorded for the window.
	paidX, paidY, err := s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, types.NewFarmTotals(sdkmath.ZeroInt(), sdkmath.ZeroInt()), stake)
	s.Require().NoError(err)
	s.Require().True(paidX.IsZero())
	s.Require().True(paidY.IsZero())
	s.assertBalance(claimer.Bytes, "xcoin", 0)

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(1_000).String(), stored.ThReward.X.String(), "nothing should drain from the window")

	_, _, err = s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, types.NewFarmTotals(sdkmath.ZeroInt(), sdkmath.ZeroInt()), stake)
	s.Require().ErrorContains(err, "already claimed")
}

func (s *TestSuite) TestClaimHolderReward_AutoBuybackRejected() {
	attrs := zeroFeeAttrs("xcoin", "ycoin")
	attrs.HolderRewardType = types.RewardAutoBuyback
	attrs.ThFeeBps = 100
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 1_000_000, 1_000_000)

	claimer := s.fundedAccount()
	stake := types.StakeRecord{Id: 7, Boost: sdkmath.NewInt(500), StartEpoch: 1, EndEpoch: 1_000}
	_, _, err := s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000)), stake)
	s.Require().ErrorIs(err, types.ErrInvalidParameter)
	s.Require().ErrorContains(err, "does not distribute holder rewards as balances")
}

func (s *TestSuite) TestClaimHolderReward_InputValidation() {
	pool := s.holderFeePool()
	claimer := utils.TestAddress()
	goodStake := types.StakeRecord{Id: 7, Boost: sdkmath.NewInt(500), StartEpoch: 1, EndEpoch: 1_000}
	goodTotals := types.NewFarmTotals(sdkmath.NewInt(1_000), sdkmath.NewInt(2_000))

	_, _, err := s.k.ClaimHolderReward(s.ctx, "not-an-address", pool.Id, goodTotals, goodStake)
	s.Require().ErrorContains(err, "invalid claimer address")

	_, _, err = s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, types.FarmTotals{}, goodStake)
	s.Require().ErrorContains(err, "farm totals must be set")

	_, _, err = s.k.ClaimHolderReward(s.ctx, claimer.Bech32, pool.Id, goodTotals, types.StakeRecord{Id: 7})
	s.Require().ErrorContains(err, "stake boost must be a non-negative amount")

	_, _, err = s.k.ClaimHolderReward(s.ctx, claimer.Bech32, 42, goodTotals, goodStake)
	s.Require().ErrorContains(err, "pool 42 not found")
}

func (s *TestSuite) TestMiningAccrual_SkipsEpochsWithoutWeight() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	treasury := s.fundedAccount(sdk.NewInt64Coin("reward", 10_000))
	s.Require().NoError(s.k.SetMiningSpeed(s.ctx, s.authority.Bech32, pool.Id, treasury.Bech32, "reward", 1_000))

	// Two epochs pass with no liquidity. The fee change touches the pool, so
	// the accrual clock advances, but no rewards mint against zero weight.
	s.epochs.Set(12)
	s.Require().NoError(s.k.ChangeFee(s.ctx, s.authority.Bech32, pool.Id, types.FeeCollectX, 0, 0, 0, 0))
	stored := s.getPool(pool.Id)
	s.Require().True(stored.Mining.Ampt.Sum.IsZero(), "empty epochs should mint nothing")
	s.Require().Equal(uint64(12), stored.Mining.LastEpoch)

	provider, receipt := s.bootstrapPool(pool, 1_000_000, 1_000_000)

	// Three funded epochs later the sole provider collects exactly three
	// epochs of emission.
	s.epochs.Set(15)
	result, err := s.k.RemoveLiquidity(s.ctx, provider.Bech32, *receipt, receipt.Value)
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(3_000).String(), result.MiningReward.String())
	s.assertBalance(provider.Bytes, "reward", 3_000)
	s.assertBalance(treasury.Bytes, "reward", 7_000)
}
