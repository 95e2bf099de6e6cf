package keeper_test

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/types"
)

func (s *TestSuite) TestMigratePoolVersionDefaults() {
	stale := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(stale, 10_000, 10_000)
	current := s.createPool(zeroFeeAttrs("ucoin", "vcoin"))

	// Rewrite the first pool the way an early release stored it, without a
	// version stamp. The raw write path skips validation.
	unstamped := s.getPool(stale.Id)
	unstamped.Version = 0
	s.Require().NoError(s.k.Pools.Set(s.ctx, unstamped.Id, unstamped))

	trader := s.fundedAccount(sdk.NewInt64Coin("xcoin", 100))
	_, err := s.k.Swap(s.ctx, trader.Bech32, stale.Id, types.SideX, sdkmath.NewInt(100), sdkmath.ZeroInt())
	s.Require().ErrorIs(err, types.ErrVersionMismatch)

	s.Require().NoError(s.k.MigratePoolVersionDefaults(s.ctx))

	migrated := s.getPool(stale.Id)
	s.Require().Equal(types.CurrentPoolVersion, migrated.Version)
	s.Require().Equal(unstamped.ReserveX.String(), migrated.ReserveX.String(), "migration should not touch balances")

	untouched := s.getPool(current.Id)
	s.Require().Equal(types.CurrentPoolVersion, untouched.Version)

	out, err := s.k.Swap(s.ctx, trader.Bech32, stale.Id, types.SideX, sdkmath.NewInt(100), sdkmath.ZeroInt())
	s.Require().NoError(err, "the migrated pool should be operable again")
	s.Require().Equal(sdkmath.NewInt(99).String(), out.String())
}

func (s *TestSuite) TestMigratePoolVersionDefaults_Idempotent() {
	pool := s.createPool(zeroFeeAttrs("xcoin", "ycoin"))
	s.bootstrapPool(pool, 10_000, 10_000)

	s.Require().NoError(s.k.MigratePoolVersionDefaults(s.ctx))
	first := s.getPool(pool.Id)

	s.Require().NoError(s.k.MigratePoolVersionDefaults(s.ctx))
	second := s.getPool(pool.Id)

	s.Require().Equal(first.Version, second.Version)
	s.Require().Equal(first.ReserveX.String(), second.ReserveX.String())
	s.Require().Equal(first.Mining.LastEpoch, second.Mining.LastEpoch)
}
