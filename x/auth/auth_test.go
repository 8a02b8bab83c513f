package auth_test

import (
	"context"
	"testing"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/contractstest"
	"github.com/djrtwo/simple-contracts/contractstest/assert"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/store"
	"github.com/djrtwo/simple-contracts/x"
	"github.com/djrtwo/simple-contracts/x/auth"
)

const chainID = "test-chain"

func TestDecoratorSetsSigners(t *testing.T) {
	key := contractstest.NewKey()
	other := contractstest.NewKey()
	db := store.NewMemDB()
	ctx := contracts.WithChainID(context.Background(), chainID)

	var seen []contracts.Condition
	h := &contractstest.Handler{
		OnDeliver: func(ctx contracts.Context, _ contracts.KVStore) error {
			seen = auth.Authenticate{}.GetConditions(ctx)
			return nil
		},
	}
	handler := contractstest.Decorate(h, auth.NewDecorator())

	tx := &contractstest.Tx{Msg: &contractstest.Msg{RoutePath: "test", Serialized: []byte("data")}}
	assert.Nil(t, tx.Sign(key, chainID, 0))
	assert.Nil(t, tx.Sign(other, chainID, 0))

	_, err := handler.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, []contracts.Condition{contractstest.KeyCondition(key), contractstest.KeyCondition(other)}, seen)

	// The same signatures cannot be used twice.
	_, err = handler.Deliver(ctx, db, tx)
	assert.IsErr(t, auth.ErrInvalidSequence, err)

	next := &contractstest.Tx{Msg: tx.Msg}
	assert.Nil(t, next.Sign(key, chainID, 1))
	_, err = handler.Deliver(ctx, db, next)
	assert.Nil(t, err)
	assert.Equal(t, []contracts.Condition{contractstest.KeyCondition(key)}, seen)
}

func TestDecoratorRejects(t *testing.T) {
	key := contractstest.NewKey()
	msg := &contractstest.Msg{RoutePath: "test", Serialized: []byte("data")}

	cases := map[string]struct {
		tx        func() *contractstest.Tx
		wantErr   *errors.Error
	}{
		"missing signature": {
			tx:      func() *contractstest.Tx { return &contractstest.Tx{Msg: msg} },
			wantErr: errors.ErrUnauthorized,
		},
		"signed for another chain": {
			tx: func() *contractstest.Tx {
				tx := &contractstest.Tx{Msg: msg}
				assert.Nil(t, tx.Sign(key, "another-chain", 0))
				return tx
			},
			wantErr: errors.ErrUnauthorized,
		},
		"future sequence": {
			tx: func() *contractstest.Tx {
				tx := &contractstest.Tx{Msg: msg}
				assert.Nil(t, tx.Sign(key, chainID, 5))
				return tx
			},
			wantErr: auth.ErrInvalidSequence,
		},
		"tampered signature": {
			tx: func() *contractstest.Tx {
				tx := &contractstest.Tx{Msg: msg}
				assert.Nil(t, tx.Sign(key, chainID, 0))
				tx.Signatures[0].Signature[0] ^= 0xFF
				return tx
			},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.NewMemDB()
			ctx := contracts.WithChainID(context.Background(), chainID)
			handler := contractstest.Decorate(&contractstest.Handler{}, auth.NewDecorator())
			tx := tc.tx()

			_, err := handler.Check(ctx, db, tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = handler.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	a := auth.Authenticate{}
	var _ x.Authenticator = a

	ctx := context.Background()
	cond := contractstest.NewCondition()
	assert.Equal(t, false, a.HasAddress(ctx, cond.Address()))
	assert.Equal(t, 0, len(a.GetConditions(ctx)))
}

func TestSignerSequence(t *testing.T) {
	s := auth.Signer{
		Metadata: &contracts.Metadata{Schema: 1},
		PubKey:   make([]byte, 32),
	}
	assert.Nil(t, s.Validate())
	assert.IsErr(t, auth.ErrInvalidSequence, s.CheckAndIncrementSequence(1))
	assert.Nil(t, s.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), s.Sequence)

	s.PubKey = nil
	assert.IsErr(t, errors.ErrInput, s.Validate())
}
