package coin

import (
	"encoding/json"
	"testing"

	"github.com/djrtwo/simple-contracts/contractstest/assert"
	"github.com/djrtwo/simple-contracts/errors"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, 1234, "ABC"),
			b:       NewCoin(19, 999999999, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(0, -2, "FOO"),
			b:       NewCoin(0, 1, "FOO"),
			wantRes: -1,
		},
		"both negative": {
			a:       NewCoin(-4, -2456, "BAR"),
			b:       NewCoin(-4, -4567, "BAR"),
			wantRes: 1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.a.Compare(tc.b))
		})
	}
}

func TestCoinNegative(t *testing.T) {
	a := NewCoin(456, 985, "ABC")
	n := a.Negative()

	assert.Equal(t, a.Ticker, n.Ticker)
	assert.Equal(t, a.Whole, -n.Whole)
	assert.Equal(t, a.Fractional, -n.Fractional)
	if !a.Equals(n.Negative()) {
		t.Fatal("double negation malformed the coin")
	}
}

func TestCoinSign(t *testing.T) {
	cases := map[string]struct {
		c           Coin
		zero        bool
		positive    bool
		nonNegative bool
	}{
		"zero":                {c: NewCoin(0, 0, "FOO"), zero: true, nonNegative: true},
		"positive fractional": {c: NewCoin(0, 1, "FOO"), positive: true, nonNegative: true},
		"positive whole":      {c: NewCoin(3, 0, "FOO"), positive: true, nonNegative: true},
		"negative fractional": {c: NewCoin(0, -1, "FOO")},
		"negative whole":      {c: NewCoin(-2, 0, "FOO")},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.zero, tc.c.IsZero())
			assert.Equal(t, tc.positive, tc.c.IsPositive())
			assert.Equal(t, tc.nonNegative, tc.c.IsNonNegative())
		})
	}
}

func TestCoinValidationAndNormalization(t *testing.T) {
	cases := map[string]struct {
		coin                 Coin
		wantValErr           *errors.Error
		wantNormalized       Coin
		wantNormalizationErr *errors.Error
	}{
		"valid coin with a negative fractional": {
			coin:           NewCoin(0, -100, "DIN"),
			wantNormalized: NewCoin(0, -100, "DIN"),
		},
		"integer and fraction with different sign": {
			coin:           NewCoin(4, -123456789, "FOO"),
			wantValErr:     errors.ErrState,
			wantNormalized: NewCoin(3, 876543211, "FOO"),
		},
		"invalid ticker": {
			coin:           NewCoin(1, 2, "eth2"),
			wantValErr:     errors.ErrCurrency,
			wantNormalized: NewCoin(1, 2, "eth2"),
		},
		"fractional rollover": {
			coin:           NewCoin(2, -1500500500, "ABC"),
			wantValErr:     errors.ErrOverflow,
			wantNormalized: NewCoin(0, 499499500, "ABC"),
		},
		"from negative to positive rollover": {
			coin:           NewCoin(-1, 1777888111, "ABC"),
			wantValErr:     errors.ErrOverflow,
			wantNormalized: NewCoin(0, 777888111, "ABC"),
		},
		"overflow": {
			coin:                 NewCoin(MaxInt, FracUnit+4, "DIN"),
			wantValErr:           errors.ErrOverflow,
			wantNormalizationErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coin.Validate(); !tc.wantValErr.Is(err) {
				t.Fatalf("unexpected coin validation error: %s", err)
			}
			normalized, err := tc.coin.normalize()
			if !tc.wantNormalizationErr.Is(err) {
				t.Fatalf("unexpected normalization error: %s", err)
			}
			if tc.wantNormalizationErr != nil {
				return
			}
			if !tc.wantNormalized.Equals(normalized) {
				t.Fatalf("unexpected normalized coin value: %#v", normalized)
			}
		})
	}
}

func TestAddCoin(t *testing.T) {
	base := NewCoin(17, 2345566, "DEF")
	cases := map[string]struct {
		a, b    Coin
		wantRes Coin
		wantErr *errors.Error
	}{
		"plus and minus equals 0": {
			a:       base,
			b:       base.Negative(),
			wantRes: NewCoin(0, 0, "DEF"),
		},
		"wrong types": {
			a:       NewCoin(1, 2, "FOO"),
			b:       NewCoin(2, 3, "BAR"),
			wantErr: errors.ErrCurrency,
		},
		"normal math": {
			a:       NewCoin(7, 5000, "ABC"),
			b:       NewCoin(-4, -12000, "ABC"),
			wantRes: NewCoin(2, 999993000, "ABC"),
		},
		"overflow": {
			a:       NewCoin(500500500123456, 0, "SEE"),
			b:       NewCoin(500500500123456, 0, "SEE"),
			wantErr: errors.ErrOverflow,
		},
		"adding to zero coin": {
			a:       NewCoin(0, 0, ""),
			b:       NewCoin(1, 0, "DOGE"),
			wantRes: NewCoin(1, 0, "DOGE"),
		},
		"adding a non zero coin without a ticker": {
			a:       NewCoin(1, 0, "DOGE"),
			b:       NewCoin(1, 0, ""),
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res, err := tc.a.Add(tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %v", err)
			}
			if tc.wantErr == nil && !tc.wantRes.Equals(res) {
				t.Fatalf("unexpected result: %v", res)
			}
		})
	}
}

func TestCoinGTE(t *testing.T) {
	a := NewCoin(3, 5, "ETH")
	assert.Equal(t, true, a.IsGTE(NewCoin(3, 5, "ETH")))
	assert.Equal(t, true, a.IsGTE(NewCoin(3, 4, "ETH")))
	assert.Equal(t, false, a.IsGTE(NewCoin(3, 6, "ETH")))
	assert.Equal(t, false, a.IsGTE(NewCoin(1, 0, "BTC")))
}

func TestCoinDeserialization(t *testing.T) {
	cases := map[string]struct {
		serialized string
		wantErr    bool
		wantCoin   Coin
	}{
		"object format": {
			serialized: `{"whole": 1, "fractional": 2, "ticker": "ETH"}`,
			wantCoin:   NewCoin(1, 2, "ETH"),
		},
		"object format, only ticker": {
			serialized: `{"ticker": "ETH"}`,
			wantCoin:   NewCoin(0, 0, "ETH"),
		},
		"human readable, whole": {
			serialized: `"1ETH"`,
			wantCoin:   NewCoin(1, 0, "ETH"),
		},
		"human readable, space separated": {
			serialized: `"1    ETH"`,
			wantCoin:   NewCoin(1, 0, "ETH"),
		},
		"human readable, whole and fractional": {
			serialized: `"1.000000002 ETH"`,
			wantCoin:   NewCoin(1, 2, "ETH"),
		},
		"human readable, short fractional": {
			serialized: `"2.5 ETH"`,
			wantCoin:   NewCoin(2, 500000000, "ETH"),
		},
		"human readable, negative": {
			serialized: `"-4.000000002 ETH"`,
			wantCoin:   NewCoin(4, 2, "ETH").Negative(),
		},
		"human readable, fractional too precise": {
			serialized: `"1.0000000002 ETH"`,
			wantErr:    true,
		},
		"human readable, missing ticker": {
			serialized: `"1"`,
			wantErr:    true,
		},
		"human readable, ticker too long": {
			serialized: `"1 ABCDE"`,
			wantErr:    true,
		},
		"human readable, double negative": {
			serialized: `"--1 ETH"`,
			wantErr:    true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Coin
			if err := json.Unmarshal([]byte(tc.serialized), &got); err != nil {
				if !tc.wantErr {
					t.Fatalf("cannot unmarshal: %s", err)
				}
				return
			}
			if tc.wantErr {
				t.Fatalf("want error, got %#v", got)
			}
			if !tc.wantCoin.Equals(got) {
				t.Fatalf("unexpected coin result: %#v", got)
			}
		})
	}
}

func TestCoinString(t *testing.T) {
	cases := map[string]struct {
		c    Coin
		want string
	}{
		"zero coin":          {c: Coin{}, want: "0"},
		"zero with a ticker": {c: Coin{Ticker: "FOO"}, want: "0 FOO"},
		"one ETH":            {c: NewCoin(1, 0, "ETH"), want: "1 ETH"},
		"minus fifty":        {c: NewCoin(-50, 0, "ETH"), want: "-50 ETH"},
		"a penny":            {c: NewCoin(0, FracUnit/100, "ETH"), want: "0.01 ETH"},
		"minus half":         {c: NewCoin(0, -FracUnit/2, "ETH"), want: "-0.5 ETH"},
		"biggest coin":       {c: NewCoin(MaxInt, MaxFrac, "ETH"), want: "999999999999999.999999999 ETH"},
		"not normalized":     {c: NewCoin(2, 3*FracUnit/2, "FOO"), want: "3.5 FOO"},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.c.String(); got != tc.want {
				t.Fatalf("unexpected string representation: %q", got)
			}
			if tc.c.Ticker == "" {
				return
			}
			back, err := ParseHumanFormat(tc.want)
			assert.Nil(t, err)
			n, _ := tc.c.normalize()
			if !n.Equals(back) {
				t.Fatalf("%q parsed to %#v", tc.want, back)
			}
		})
	}
}
