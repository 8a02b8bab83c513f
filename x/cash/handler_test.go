package cash

import (
	"context"
	"encoding/json"
	"testing"

	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/coin"
	"github.com/djrtwo/simple-contracts/contractstest"
	"github.com/djrtwo/simple-contracts/contractstest/assert"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/djrtwo/simple-contracts/store"
)

func TestSendHandler(t *testing.T) {
	alice := contractstest.NewCondition()
	bob := contractstest.NewCondition()

	cases := map[string]struct {
		signer    contracts.Condition
		msg       *SendMsg
		wantErr   *errors.Error
		wantAlice []coin.Coin
		wantBob   []coin.Coin
	}{
		"send": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &contracts.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(3, 0, "ETH"),
			},
			wantAlice: []coin.Coin{coin.NewCoin(7, 0, "ETH")},
			wantBob:   []coin.Coin{coin.NewCoin(3, 0, "ETH")},
		},
		"source did not sign": {
			signer: bob,
			msg: &SendMsg{
				Metadata:    &contracts.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(3, 0, "ETH"),
			},
			wantErr:   errors.ErrUnauthorized,
			wantAlice: []coin.Coin{coin.NewCoin(10, 0, "ETH")},
		},
		"too much": {
			signer: alice,
			msg: &SendMsg{
				Metadata:    &contracts.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(11, 0, "ETH"),
			},
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: []coin.Coin{coin.NewCoin(10, 0, "ETH")},
		},
		"invalid message": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(1, 0, "ETH"),
			},
			wantErr:   errors.ErrMetadata,
			wantAlice: []coin.Coin{coin.NewCoin(10, 0, "ETH")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.NewMemDB()
			ctrl := NewController(NewBucket())
			assert.Nil(t, ctrl.CoinMint(db, alice.Address(), coin.NewCoin(10, 0, "ETH")))

			h := NewSendHandler(&contractstest.Auth{Signer: tc.signer}, ctrl)
			tx := &contractstest.Tx{Msg: tc.msg}

			_, err := h.Check(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)

			assertBalance(t, ctrl, db, alice.Address(), tc.wantAlice...)
			assertBalance(t, ctrl, db, bob.Address(), tc.wantBob...)
		})
	}
}

func TestGenesisInitializer(t *testing.T) {
	genesis := `{
		"cash": [
			{"address": "hex:0102030405060708090A0B0C0D0E0F1011121314", "coins": ["10 ETH", "2.5 BTC", "1 ETH"]}
		]
	}`
	var opts contracts.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.NewMemDB()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	addr, err := contracts.ParseAddress("hex:0102030405060708090A0B0C0D0E0F1011121314")
	assert.Nil(t, err)
	assertBalance(t, NewController(NewBucket()), db, addr,
		coin.NewCoin(2, 500000000, "BTC"), coin.NewCoin(11, 0, "ETH"))

	bad := contracts.Options{"cash": []byte(`[{"address": "", "coins": ["1 ETH"]}]`)}
	assert.IsErr(t, errors.ErrInput, Initializer{}.FromGenesis(bad, store.NewMemDB()))
}
