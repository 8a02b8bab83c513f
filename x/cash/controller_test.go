package cash

import (
	"testing"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/contractstest"
	"github.com/djrtwo/simple-contracts/contractstest/assert"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/store"
)

func TestController(t *testing.T) {
	db := store.NewMemDB()
	ctrl := NewController(NewBucket())

	alice := contractstest.NewCondition().Address()
	bob := contractstest.NewCondition().Address()

	bal, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(bal))

	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(10, 0, "ETH")))
	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(1, 0, "BTC")))
	assert.IsErr(t, errors.ErrAmount, ctrl.CoinMint(db, alice, coin.NewCoin(0, 0, "ETH")))
	assert.IsErr(t, errors.ErrCurrency, ctrl.CoinMint(db, alice, coin.NewCoin(1, 0, "eth")))

	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(4, 500000000, "ETH")))
	assertBalance(t, ctrl, db, alice, coin.NewCoin(1, 0, "BTC"), coin.NewCoin(5, 500000000, "ETH"))
	assertBalance(t, ctrl, db, bob, coin.NewCoin(4, 500000000, "ETH"))

	assert.IsErr(t, errors.ErrInsufficientAmount, ctrl.MoveCoins(db, bob, alice, coin.NewCoin(5, 0, "ETH")))
	assert.IsErr(t, errors.ErrInsufficientAmount, ctrl.MoveCoins(db, bob, alice, coin.NewCoin(1, 0, "BTC")))
	assert.IsErr(t, errors.ErrAmount, ctrl.MoveCoins(db, bob, alice, coin.NewCoin(-1, 0, "ETH")))

	// Moving everything leaves an empty wallet.
	assert.Nil(t, ctrl.MoveCoins(db, bob, alice, coin.NewCoin(4, 500000000, "ETH")))
	assertBalance(t, ctrl, db, bob)
	assertBalance(t, ctrl, db, alice, coin.NewCoin(1, 0, "BTC"), coin.NewCoin(10, 0, "ETH"))
}

func TestMoveCoinsHelper(t *testing.T) {
	db := store.NewMemDB()
	ctrl := NewController(NewBucket())
	alice := contractstest.NewCondition().Address()
	bob := contractstest.NewCondition().Address()

	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(3, 0, "ETH")))
	assert.Nil(t, ctrl.CoinMint(db, alice, coin.NewCoin(2, 0, "BTC")))

	all, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Nil(t, MoveCoins(db, ctrl, alice, bob, all.Clone()))
	assertBalance(t, ctrl, db, alice)
	assertBalance(t, ctrl, db, bob, coin.NewCoin(2, 0, "BTC"), coin.NewCoin(3, 0, "ETH"))

	// Nothing to move is not an error.
	assert.Nil(t, MoveCoins(db, ctrl, alice, bob, nil))
}

func assertBalance(t testing.TB, ctrl Controller, db contracts.ReadOnlyKVStore, addr contracts.Address, want ...coin.Coin) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	wantCoins, err := coin.CombineCoins(want...)
	assert.Nil(t, err)
	if !wantCoins.Equals(got) {
		t.Fatalf("%s: want %s, got %s", addr, wantCoins, got)
	}
}
