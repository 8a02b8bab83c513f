package cash

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/errors"
)

const optKey = "cash"

// GenesisAccount is a single entry of the "cash" genesis section.
type GenesisAccount struct {
	Address contracts.Address `json:"address"`
	Coins   coin.Coins        `json:"coins"`
}

// Initializer loads the initial balances from the genesis file.
type Initializer struct{}

var _ contracts.Initializer = Initializer{}

// FromGenesis mints the coins of every genesis account.
func (Initializer) FromGenesis(opts contracts.Options, kv contracts.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		coins, err := coin.NormalizeCoins(acct.Coins)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		for _, c := range coins {
			if err := ctrl.CoinMint(kv, acct.Address, *c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}
