package keeper_test

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/shopspring/decimal"

	"github.com/vividnetwork/suiswap-contract/types"
)

func (s *TestSuite) TestSwap_ConstantProduct() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 10_000, 10_000)

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 100))
	out, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(100), sdkmath.NewInt(99))
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(99).String(), out.String())

	s.assertBalance(trader.Bytes, "xcoin", 0)
	s.assertBalance(trader.Bytes, "ycoin", 99)

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(10_100).String(), stored.ReserveX.String())
	s.Require().Equal(sdkmath.NewInt(9_901).String(), stored.ReserveY.String())
	s.Require().Equal(sdkmath.NewInt(100).String(), stored.TradedX.String())
	s.Require().Equal(sdkmath.NewInt(99).String(), stored.TradedY.String())
	s.Require().Equal(sdkmath.NewInt(100).String(), stored.TradeVolumeX.String())

	ev := s.lastEventOfType(types.EventTypeSwap)
	s.Require().Equal("100", s.eventAttr(ev, "amount_in"))
	s.Require().Equal("99", s.eventAttr(ev, "amount_out"))
	s.Require().Equal("xcoin", s.eventAttr(ev, "denom_in"))
	s.Require().Equal("ycoin", s.eventAttr(ev, "denom_out"))

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestSwap_SlippageExceeded() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 10_000, 10_000)

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 100))
	_, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(100), sdkmath.NewInt(100))
	s.Require().ErrorIs(err, types.ErrSlippageExceeded)

	// Nothing moved.
	s.assertBalance(trader.Bytes, "xcoin", 100)
	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(10_000).String(), stored.ReserveX.String())
	s.Require().Equal(sdkmath.NewInt(10_000).String(), stored.ReserveY.String())
}

func (s *TestSuite) TestSwap_FeeOnInput() {
	attrs := zeroFeeAttrs("xcoin", "ycoin")
	attrs.AdminFeeBps = 100
	attrs.ThFeeBps = 50
	attrs.LpFeeBps = 50
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 100_000, 100_000)

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 10_000))
	out, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(10_000), sdkmath.ZeroInt())
	s.Require().NoError(err)

	// Cuts off the input: admin 100, holders 50, providers 50; the remaining
	// 9800 prices to 8925. The provider cut stays in the reserve.
	s.Require().Equal(sdkmath.NewInt(8_925).String(), out.String())

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(109_850).String(), stored.ReserveX.String())
	s.Require().Equal(sdkmath.NewInt(91_075).String(), stored.ReserveY.String())
	s.Require().Equal(sdkmath.NewInt(100).String(), stored.AdminX.String())
	s.Require().Equal(sdkmath.NewInt(50).String(), stored.ThX.String())
	s.Require().True(stored.AdminY.IsZero(), "fees on the input side leave the output pots alone")

	ev := s.lastEventOfType(types.EventTypeSwap)
	s.Require().Equal("100", s.eventAttr(ev, "admin_fee"))
	s.Require().Equal("50", s.eventAttr(ev, "th_fee"))
	s.Require().Equal("50", s.eventAttr(ev, "lp_fee"))

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestSwap_FeeOnOutput() {
	attrs := zeroFeeAttrs("xcoin", "ycoin")
	attrs.AdminFeeBps = 100
	attrs.ThFeeBps = 50
	attrs.LpFeeBps = 50
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 100_000, 100_000)

	// Fees collect on X, so a Y-side input is priced in full and the cuts come
	// off the gross X output: 9090 gross, cuts 90/45/45, trader gets 8910.
	trader := s.fundedAccount(sdk.NewInt64Coin("ycoin", 10_000))
	out, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideY, sdkmath.NewInt(10_000), sdkmath.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(8_910).String(), out.String())

	s.assertBalance(trader.Bytes, "xcoin", 8_910)
	s.assertBalance(trader.Bytes, "ycoin", 0)

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(110_000).String(), stored.ReserveY.String())
	s.Require().Equal(sdkmath.NewInt(90_955).String(), stored.ReserveX.String())
	s.Require().Equal(sdkmath.NewInt(90).String(), stored.AdminX.String())
	s.Require().Equal(sdkmath.NewInt(45).String(), stored.ThX.String())
	s.Require().Equal(sdkmath.NewInt(8_910).String(), stored.TradedX.String())
	s.Require().Equal(sdkmath.NewInt(10_000).String(), stored.TradedY.String())

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestSwap_Frozen() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 10_000, 10_000)
	s.Require().NoError(s.k.SetFreezeBits(s.ctx, s.authority.Bech32, pool.Id, types.FreezeSwapBit))

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 100))
	_, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(100), sdkmath.ZeroInt())
	s.Require().ErrorIs(err, types.ErrOperationFrozen)

	// The pool owner trades through the freeze.
	s.bank.Fund(s.authority.Bytes, sdk.NewInt64Coin("xcoin", 100))
	out, err := s.k.Swap(s.ctx, s.authority.Bech32, pool.Id, types.SideX, sdkmath.NewInt(100), sdkmath.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(99).String(), out.String())
}

func (s *TestSuite) TestSwap_InputValidation() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 10_000, 10_000)
	trader := s.fundedAccount()

	tests := []struct {
		name        string
		trader      string
		poolID      uint64
		amountIn    sdkmath.Int
		minOut      sdkmath.Int
		expectedErr string
	}{
		{
			name:        "invalid trader address",
			trader:      "not-an-address",
			poolID:      pool.Id,
			amountIn:    sdkmath.NewInt(100),
			minOut:      sdkmath.ZeroInt(),
			expectedErr: "invalid trader address",
		},
		{
			name:        "zero input",
			trader:      trader.Bech32,
			poolID:      pool.Id,
			amountIn:    sdkmath.ZeroInt(),
			minOut:      sdkmath.ZeroInt(),
			expectedErr: "swap input must be positive",
		},
		{
			name:        "input above the amount domain",
			trader:      trader.Bech32,
			poolID:      pool.Id,
			amountIn:    sdkmath.NewIntWithDecimal(1, 30),
			minOut:      sdkmath.ZeroInt(),
			expectedErr: "swap input exceeds the amount domain",
		},
		{
			name:        "negative minimum output",
			trader:      trader.Bech32,
			poolID:      pool.Id,
			amountIn:    sdkmath.NewInt(100),
			minOut:      sdkmath.NewInt(-1),
			expectedErr: "minimum output must be non-negative",
		},
		{
			name:        "unknown pool",
			trader:      trader.Bech32,
			poolID:      42,
			amountIn:    sdkmath.NewInt(100),
			minOut:      sdkmath.ZeroInt(),
			expectedErr: "pool 42 not found",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.k.Swap(s.ctx, tc.trader, tc.poolID, types.SideX, tc.amountIn, tc.minOut)
			s.Require().ErrorContains(err, tc.expectedErr)
		})
	}
}

func (s *TestSuite) TestSwap_DustInput() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 1_000_000, 1_000_000)

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 1))
	_, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.OneInt(), sdkmath.ZeroInt())
	s.Require().ErrorIs(err, types.ErrInvalidParameter)
	s.Require().ErrorContains(err, "too small to price")
}

func (s *TestSuite) TestSwap_AutoBuyback() {
	attrs := zeroFeeAttrs("xcoin", "ycoin")
	attrs.HolderRewardType = types.RewardAutoBuyback
	attrs.ThFeeBps = 100
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 100_000, 100_000)

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 10_000))
	out, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(10_000), sdkmath.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(9_008).String(), out.String())

	// The 100 unit holder cut was swapped into the reserve right away and its
	// Y-side proceeds accrued to the opposite holder pot.
	stored := s.getPool(pool.Id)
	s.Require().True(stored.ThX.IsZero(), "collected holder fees should be converted immediately")
	s.Require().Equal(sdkmath.NewInt(82).String(), stored.ThY.String())
	s.Require().Equal(sdkmath.NewInt(110_000).String(), stored.ReserveX.String())
	s.Require().Equal(sdkmath.NewInt(90_910).String(), stored.ReserveY.String())

	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestSwap_BasisOffset() {
	attrs := zeroFeeAttrs("xcoin", "ycoin")
	attrs.BasisX = sdkmath.NewInt(100_000)
	attrs.BasisY = sdkmath.NewInt(100_000)
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 10_000, 10_000)

	// The virtual depth cannot cover real payouts: an output priced beyond the
	// raw reserve is rejected before any transfer.
	whale := s.fundedAccount(sdk.NewInt64Coin("xcoin", 200_000))
	_, err := s.k.Swap(s.ctx, whale.Bech32, pool.Id, types.SideX, sdkmath.NewInt(200_000), sdkmath.ZeroInt())
	s.Require().ErrorIs(err, types.ErrInsufficientBalance)

	// A covered trade prices on reserve plus basis, so the quote is deeper
	// than the raw 10k/10k book would give (990 instead of 909).
	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 1_000))
	out, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(1_000), sdkmath.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(990).String(), out.String())

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(11_000).String(), stored.ReserveX.String())
	s.Require().Equal(sdkmath.NewInt(9_010).String(), stored.ReserveY.String())
	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestSwap_RotatesTradeEpoch() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 10_000, 10_000)
	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 300))

	_, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(100), sdkmath.ZeroInt())
	s.Require().NoError(err)

	s.epochs.Advance(1)
	_, err = s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(100), sdkmath.ZeroInt())
	s.Require().NoError(err)

	stored := s.getPool(pool.Id)
	s.Require().Equal(uint64(startEpoch+1), stored.TradeEpoch)
	s.Require().Equal(sdkmath.NewInt(100).String(), stored.LastTradeVolumeX.String())
	s.Require().Equal(sdkmath.NewInt(99).String(), stored.LastTradeVolumeY.String())
	s.Require().Equal(sdkmath.NewInt(100).String(), stored.TradeVolumeX.String())
	s.Require().Equal(sdkmath.NewInt(97).String(), stored.TradeVolumeY.String())
	s.Require().Equal(sdkmath.NewInt(200).String(), stored.TradedX.String())
	s.Require().Equal(sdkmath.NewInt(196).String(), stored.TradedY.String())

	// A gap of more than one epoch means the previous epoch saw no trades, so
	// the last bucket clears instead of inheriting stale volume.
	s.epochs.Advance(3)
	_, err = s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(100), sdkmath.ZeroInt())
	s.Require().NoError(err)

	stored = s.getPool(pool.Id)
	s.Require().Equal(uint64(startEpoch+4), stored.TradeEpoch)
	s.Require().True(stored.LastTradeVolumeX.IsZero(), "gap should clear the last volume bucket")
	s.Require().Equal(sdkmath.NewInt(100).String(), stored.TradeVolumeX.String())
}

func (s *TestSuite) TestSwap_StablePool() {
	attrs := zeroFeeAttrs("usda", "usdb")
	attrs.PoolType = types.PoolTypeStableSwap
	attrs.Amp = 100
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 100_000, 100_000)

	trader := s.fundedAccount(sdk.NewInt64Coin("usda", 1_000))
	out, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(1_000), sdkmath.ZeroInt())
	s.Require().NoError(err)

	// Near the peg a high amplification pool fills close to one-for-one,
	// always strictly below it.
	s.Require().True(out.GTE(sdkmath.NewInt(990)), "amplified near-peg output %s should stay close to the input", out)
	s.Require().True(out.LT(sdkmath.NewInt(1_000)), "output %s should never reach the input", out)

	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(101_000).String(), stored.ReserveX.String())
	s.Require().Equal(sdkmath.NewInt(100_000).Sub(out).String(), stored.ReserveY.String())
	s.assertPoolSolvent(pool.Id)
}

func (s *TestSuite) TestEstimateSwapOut_MatchesSwap() {
	attrs := zeroFeeAttrs("xcoin", "ycoin")
	attrs.AdminFeeBps = 100
	attrs.ThFeeBps = 50
	attrs.LpFeeBps = 50
	pool := s.createPool(attrs)
	s.bootstrapPool(pool, 100_000, 100_000)

	estimate, err := s.k.EstimateSwapOut(s.ctx, pool.Id, types.SideX, sdkmath.NewInt(10_000))
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(8_925).String(), estimate.String())

	// Estimating commits nothing.
	stored := s.getPool(pool.Id)
	s.Require().Equal(sdkmath.NewInt(100_000).String(), stored.ReserveX.String())
	s.Require().Empty(s.events.EventsOfType(types.EventTypeSwap), "estimates should not emit swap events")

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 10_000))
	out, err := s.k.Swap(s.ctx, trader.Bech32, pool.Id, types.SideX, sdkmath.NewInt(10_000), sdkmath.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(estimate.String(), out.String(), "the estimate should match the executed swap")
}

func (s *TestSuite) TestSpotPrice() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 20_000, 10_000)

	price, err := s.k.SpotPrice(s.ctx, pool.Id, types.SideX)
	s.Require().NoError(err)
	s.Require().True(price.Equal(decimal.RequireFromString("0.5")), "one x should quote half a y, got %s", price)

	price, err = s.k.SpotPrice(s.ctx, pool.Id, types.SideY)
	s.Require().NoError(err)
	s.Require().True(price.Equal(decimal.RequireFromString("2")), "one y should quote two x, got %s", price)

	empty := s.createPool(zeroFeeAttrs("acoin", "bcoin"))
	_, err = s.k.SpotPrice(s.ctx, empty.Id, types.SideX)
	s.Require().ErrorIs(err, types.ErrInsufficientBalance)
	s.Require().ErrorContains(err, "no liquidity to quote")
}
