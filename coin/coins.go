package coin

import (
	"sort"
	"strings"

	"github.com/djrtwo/simple-contracts/errors"
)

// Coins is a set of coins, at most one per currency. Most operations
// require the normalized form: sorted by ticker, without zero values.
type Coins []*Coin

// CombineCoins creates a normalized Coins containing all given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var err error
	coins := make(Coins, 0, len(cs))
	for _, c := range cs {
		coins, err = coins.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	return coins, nil
}

// Clone returns a copy that can be safely modified
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add returns the set increased by c. The receiver may be modified, so
// always use the returned value.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	has, i := cs.findCoin(c.ID())
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(cs[:i], cs[i+1:]...), nil
		}
		cs[i] = &sum
		return cs, nil
	}

	res := append(cs, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.ID())
	if has == nil {
		return false
	}
	return has.IsGTE(c)
}

// findCoin returns the coin with given ticker and its index. If there is no
// such coin, nil is returned together with the index the coin should be
// inserted at.
func (cs Coins) findCoin(id string) (*Coin, int) {
	for i, c := range cs {
		switch strings.Compare(id, c.ID()) {
		case -1:
			return nil, i
		case 0:
			return c, i
		}
	}
	return nil, len(cs)
}

// IsEmpty returns if nothing is in the Coins
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsPositive returns true if there is at least one coin and all coins are
// positive.
func (cs Coins) IsPositive() bool {
	return !cs.IsEmpty() && cs.IsNonNegative()
}

// IsNonNegative returns true if no coin is negative. An empty set is
// non-negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both Coins contain same coins
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of unique currencies in the Coins
func (cs Coins) Count() int {
	return len(cs)
}

// Validate requires that all coins are valid, sorted by ticker, unique and
// not zero.
func (cs Coins) Validate() error {
	var err error
	last := ""
	for _, c := range cs {
		if c == nil {
			err = errors.Append(err, errors.Wrap(errors.ErrEmpty, "nil coin"))
			continue
		}
		err = errors.Append(err, errors.Wrap(c.Validate(), "coin"))
		if c.IsZero() {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "zero coins"))
		}
		if c.Ticker <= last && last != "" {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "not sorted"))
		}
		last = c.Ticker
	}
	return err
}

// String returns a comma separated list of human readable coins.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// NormalizeCoins merges coins of the same currency, drops zero values and
// sorts the result by ticker. A normalized input is returned as it is.
func NormalizeCoins(cs Coins) (Coins, error) {
	if isNormalized(cs) {
		if len(cs) == 0 {
			return nil, nil
		}
		return cs, nil
	}

	set := make(map[string]Coin)
	for _, c := range cs {
		if c == nil {
			continue
		}
		sum, err := set[c.Ticker].Add(*c)
		if err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
		set[c.Ticker] = sum
	}
	coins := make(Coins, 0, len(set))
	for _, c := range set {
		if c.IsZero() {
			continue
		}
		cpy := c
		coins = append(coins, &cpy)
	}
	if len(coins) == 0 {
		return nil, nil
	}
	sort.Slice(coins, func(i, j int) bool {
		return coins[i].Ticker < coins[j].Ticker
	})
	return coins, nil
}

func isNormalized(cs Coins) bool {
	var prev *Coin
	for _, c := range cs {
		if IsEmpty(c) {
			return false
		}
		if prev != nil && prev.Ticker >= c.Ticker {
			return false
		}
		prev = c
	}
	return true
}
