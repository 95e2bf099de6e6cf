package runtime

import (
	"context"
	"fmt"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/types"
)

// Bank is an in-memory asset ledger implementing the custody interface the
// keeper consumes. Balances exist only for funded addresses; transfers fail
// on insufficient funds and are otherwise atomic.
type Bank struct {
	mu       sync.Mutex
	balances map[string]sdk.Coins
}

var _ types.BankKeeper = (*Bank)(nil)

// NewBank returns an empty ledger.
func NewBank() *Bank {
	return &Bank{balances: make(map[string]sdk.Coins)}
}

// Fund credits coins to an address out of thin air. It is the ledger's mint
// hook for genesis and tests.
func (b *Bank) Fund(addr sdk.AccAddress, coins ...sdk.Coin) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr.String()] = b.balances[addr.String()].Add(coins...)
}

// SendCoins moves coins between addresses.
func (b *Bank) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if err := amt.Validate(); err != nil {
		return fmt.Errorf("invalid coins %s: %w", amt, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	from := b.balances[fromAddr.String()]
	remaining, negative := from.SafeSub(amt...)
	if negative {
		return fmt.Errorf("insufficient funds: %s holds %s, needs %s", fromAddr, from, amt)
	}
	b.balances[fromAddr.String()] = remaining
	b.balances[toAddr.String()] = b.balances[toAddr.String()].Add(amt...)
	return nil
}

// GetBalance returns the balance of one denom for an address.
func (b *Bank) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sdk.NewCoin(denom, b.balances[addr.String()].AmountOf(denom))
}

// GetAllBalances returns every balance held by an address.
func (b *Bank) GetAllBalances(_ context.Context, addr sdk.AccAddress) sdk.Coins {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[addr.String()]
}
