package contracts

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/djrtwo/simple-contracts/errors"
)

// AddressLength is the size of every address.
const AddressLength = 20

// Address identifies an account. It is the truncated sha256 digest of a
// Condition, so it cannot be reversed into the condition.
type Address []byte

// NewAddress hashes data into an address. Nil data gives a nil address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// Clone returns an independent copy of this address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// Validate returns ErrInput unless the address has AddressLength bytes.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address of %d bytes", len(a))
	}
	return nil
}

// String returns the address as uppercase hex.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// MarshalJSON encodes the address as an uppercase hex string instead of
// the base64 default of a byte slice.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts any format ParseAddress does.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address from text. A "<format>:" prefix selects
// the decoding:
//
//   hex     the default, used when there is no prefix
//   cond    a condition in its String form, hashed into its address
//   bech32  any human readable part is accepted
//
// An empty value is a nil address.
func ParseAddress(s string) (Address, error) {
	format, enc := "hex", s
	if i := strings.Index(s, ":"); i >= 0 {
		format, enc = s[:i], s[i+1:]
	}
	if enc == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.ErrInput.Newf("hex: %s", err)
		}
		addr = raw
	case "cond":
		c, err := parseCondition(enc)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	case "bech32":
		_, data, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.ErrInput.Newf("bech32: %s", err)
		}
		if addr, err = bech32.ConvertBits(data, 5, 8, false); err != nil {
			return nil, errors.ErrInput.Newf("bech32 payload: %s", err)
		}
	default:
		return nil, errors.ErrType.Newf("unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
