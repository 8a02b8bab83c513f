package cash

import (
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/orm"
)

// Balancer reads the balance of an address.
type Balancer interface {
	// Balance returns the coins held by the address. An unknown address
	// holds nothing.
	Balance(contracts.ReadOnlyKVStore, contracts.Address) (coin.Coins, error)
}

// CoinMover moves coins between addresses.
type CoinMover interface {
	MoveCoins(db contracts.KVStore, src, dest contracts.Address, amount coin.Coin) error
}

// CoinMinter creates coins.
type CoinMinter interface {
	CoinMint(db contracts.KVStore, dest contracts.Address, amount coin.Coin) error
}

// Controller is the functionality of this package exposed to other
// extensions.
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController is the default Controller, backed by the wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db contracts.ReadOnlyKVStore, addr contracts.Address) (coin.Coins, error) {
	var set Set
	switch err := c.bucket.One(db, addr, &set); {
	case err == nil:
		return set.Coins, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// MoveCoins moves a positive amount from src to dest. The source must hold
// at least that much.
func (c BaseController) MoveCoins(db contracts.KVStore, src, dest contracts.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	have, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if !have.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %s, needs %s", src, have, amount)
	}

	if err := c.add(db, src, amount.Negative()); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := c.add(db, dest, amount); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}

// CoinMint adds a positive amount to the destination address.
func (c BaseController) CoinMint(db contracts.KVStore, dest contracts.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	return c.add(db, dest, amount)
}

func (c BaseController) add(db contracts.KVStore, addr contracts.Address, amount coin.Coin) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	set := Set{Metadata: &contracts.Metadata{Schema: 1}}
	if err := c.bucket.One(db, addr, &set); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "cannot load wallet")
	}
	coins, err := set.Coins.Clone().Add(amount)
	if err != nil {
		return err
	}
	set.Coins = coins
	_, err = c.bucket.Put(db, addr, &set)
	return err
}

// MoveCoins moves every coin of the amount using given mover. Nothing is
// moved for an empty amount.
func MoveCoins(db contracts.KVStore, mover CoinMover, src, dest contracts.Address, amount coin.Coins) error {
	for _, c := range amount {
		if err := mover.MoveCoins(db, src, dest, *c); err != nil {
			return errors.Wrapf(err, "cannot move %s", c)
		}
	}
	return nil
}
