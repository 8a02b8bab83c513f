package contractstest

import (
	"context"
	"encoding/binary"

	contracts "github.com/djrtwo/simple-contracts"
)

// SequenceID returns the 8 byte big endian encoding of n, the format of
// sequence generated keys.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// Ctx returns a context with the chain id, height and block time set.
func Ctx(chainID string, height int64, blockTime contracts.UnixTime) contracts.Context {
	ctx := contracts.WithChainID(context.Background(), chainID)
	ctx = contracts.WithHeight(ctx, height)
	return contracts.WithBlockTime(ctx, blockTime.Time())
}
