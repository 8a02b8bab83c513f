package escrow

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/x/cash"
)

const optKey = "escrow"

// GenesisAgreement is a single entry of the "escrow" genesis section.
type GenesisAgreement struct {
	Sender     contracts.Address  `json:"sender"`
	Recipient  contracts.Address  `json:"recipient"`
	Arbitrator contracts.Address  `json:"arbitrator"`
	Expiration contracts.UnixTime `json:"expiration"`
	Amount     coin.Coins         `json:"amount"`
	Memo       string             `json:"memo"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct {
	Minter cash.CoinMinter
}

var _ contracts.Initializer = (*Initializer)(nil)

// FromGenesis stores every genesis agreement and mints its amount directly
// into the agreement account.
func (i *Initializer) FromGenesis(opts contracts.Options, db contracts.KVStore) error {
	var entries []GenesisAgreement
	if err := opts.ReadOptions(optKey, &entries); err != nil {
		return err
	}

	bucket := NewBucket()
	for j, e := range entries {
		amount, err := coin.NormalizeCoins(e.Amount)
		if err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		if err := validateAmount(amount); err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}

		id, err := bucket.Sequence().NextVal(db)
		if err != nil {
			return errors.Wrap(err, "cannot acquire escrow id")
		}
		agreement := NewAgreement(id, e.Sender, e.Recipient, e.Arbitrator, e.Expiration, e.Memo)
		if _, err := bucket.Put(db, id, agreement); err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		for _, c := range amount {
			if err := i.Minter.CoinMint(db, agreement.Address, *c); err != nil {
				return errors.Wrapf(err, "escrow %d: cannot issue coins", j)
			}
		}
	}
	return nil
}
