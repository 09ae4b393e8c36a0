package domain

import (
	"math"
	"testing"
)

func TestMovementApply(t *testing.T) {
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2, DivYield: 0.01}
	cases := []struct {
		name       string
		expiry     float64
		move       Movement
		wantExpiry float64
	}{
		{"partial elapse", 1.0, Movement{Stock: 120, Time: 0.5}, 0.5},
		{"elapse past expiry truncates", 1.0, Movement{Stock: 80, Time: 1.5}, 0},
		{"exact expiry", 0.25, Movement{Stock: 100, Time: 0.25}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotEnv, gotCon := tc.move.Apply(env, Contract{Strike: 90, Expiry: tc.expiry})
			if gotEnv.Stock != tc.move.Stock {
				t.Fatalf("stock = %v, want %v", gotEnv.Stock, tc.move.Stock)
			}
			if gotEnv.RiskFree != env.RiskFree || gotEnv.Vol != env.Vol || gotEnv.DivYield != env.DivYield {
				t.Fatalf("apply must not touch other fields: %+v", gotEnv)
			}
			if gotCon.Strike != 90 {
				t.Fatalf("strike changed: %v", gotCon.Strike)
			}
			if !almostEqual(gotCon.Expiry, tc.wantExpiry, 1e-15) {
				t.Fatalf("expiry = %v, want %v", gotCon.Expiry, tc.wantExpiry)
			}
		})
	}
}

func TestParseOptionType(t *testing.T) {
	cases := map[string]OptionType{"call": OptionTypeCall, " PUT ": OptionTypePut, "Call": OptionTypeCall}
	for in, want := range cases {
		got, ok := ParseOptionType(in)
		if !ok || got != want {
			t.Fatalf("ParseOptionType(%q) = %q,%v want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseOptionType("swap"); ok {
		t.Fatal("unexpected ok for unknown type")
	}
}

func TestROI_PlainRatio(t *testing.T) {
	m := NewROIModel(Call{})
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2}
	c := Contract{Strike: 105, Expiry: 1}
	move := Movement{Stock: 110, Time: 0.5}

	entry, exit := m.BuySellPrices(env, env, c, move)
	if !almostEqual(entry, (Call{}).Price(env, c), 0) {
		t.Fatalf("entry should be priced at start: %v", entry)
	}
	exitEnv := Environment{Stock: 110, RiskFree: 0.05, Vol: 0.2}
	if !almostEqual(exit, (Call{}).Price(exitEnv, Contract{Strike: 105, Expiry: 0.5}), 1e-12) {
		t.Fatalf("exit should be priced after the movement: %v", exit)
	}
	if got := m.ROI(env, env, c, move); !almostEqual(got, exit/entry, 1e-12) {
		t.Fatalf("roi = %v, want %v", got, exit/entry)
	}
}

func TestROI_EntryFloor(t *testing.T) {
	// 深度虚值看涨，入场价远低于阈值
	m := NewROIModel(Call{})
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2}
	c := Contract{Strike: 1000, Expiry: 0.1}
	move := Movement{Stock: 1500, Time: 0.05}

	entry, exit := m.BuySellPrices(env, env, c, move)
	if entry >= ROIFloorThreshold {
		t.Fatalf("setup: entry should be below the floor, got %v", entry)
	}
	got := m.ROI(env, env, c, move)
	if !almostEqual(got, exit/ROIFloorThreshold, 1e-6) {
		t.Fatalf("roi = %v, want %v", got, exit/ROIFloorThreshold)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("floored roi must be finite, got %v", got)
	}
}

func TestROI_ExitSnapsToZero(t *testing.T) {
	m := NewROIModel(Call{})
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2}
	c := Contract{Strike: 1000, Expiry: 0.1}
	move := Movement{Stock: 100, Time: 0.05}

	if got := m.ROI(env, env, c, move); got != 0 {
		t.Fatalf("roi = %v, want exactly 0", got)
	}
}

func TestROIWrtStrike_MatchesFiniteDifference(t *testing.T) {
	const h = 1e-4
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2, DivYield: 0.01}
	cases := []struct {
		pricer Pricer
		c      Contract
		move   Movement
	}{
		{Call{}, Contract{Strike: 105, Expiry: 1}, Movement{Stock: 110, Time: 0.5}},
		{Call{}, Contract{Strike: 95, Expiry: 0.75}, Movement{Stock: 104, Time: 0.25}},
		{Put{}, Contract{Strike: 95, Expiry: 1}, Movement{Stock: 90, Time: 0.5}},
	}
	for _, tc := range cases {
		m := NewROIModel(tc.pricer)
		up := m.ROI(env, env, Contract{Strike: tc.c.Strike + h, Expiry: tc.c.Expiry}, tc.move)
		down := m.ROI(env, env, Contract{Strike: tc.c.Strike - h, Expiry: tc.c.Expiry}, tc.move)
		fd := (up - down) / (2 * h)
		if got := m.ROIWrtStrike(env, env, tc.c, tc.move); !almostEqual(got, fd, 1e-5) {
			t.Fatalf("%s K=%v: got=%v fd=%v", tc.pricer.Kind(), tc.c.Strike, got, fd)
		}
	}
}

func TestCallROIWrtTime_MatchesFiniteDifference(t *testing.T) {
	const h = 1e-5
	m := NewROIModel(Call{})
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2}
	c := Contract{Strike: 105, Expiry: 1}
	move := Movement{Stock: 110, Time: 0.5}

	up := m.ROI(env, env, Contract{Strike: c.Strike, Expiry: c.Expiry + h}, move)
	down := m.ROI(env, env, Contract{Strike: c.Strike, Expiry: c.Expiry - h}, move)
	fd := (up - down) / (2 * h)
	if got := m.ROIWrtTime(env, env, c, move); !almostEqual(got, fd, 1e-5) {
		t.Fatalf("got=%v fd=%v", got, fd)
	}
}

func TestROIPractical(t *testing.T) {
	m := NewROIModel(Call{})
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2}
	c := Contract{Strike: 105, Expiry: 1}
	move := Movement{Stock: 110, Time: 0.5}

	buy, sell := m.BuySellPricesPractical(env, env, c, move)
	entry, exit := m.BuySellPrices(env, env, c, move)
	if !buy.Equal(RoundAsBuyPrice(entry)) || !sell.Equal(RoundAsSellPrice(exit)) {
		t.Fatalf("practical prices mismatch: buy=%s sell=%s", buy, sell)
	}
	want := sell.Div(buy).InexactFloat64()
	if got := m.ROIPractical(env, env, c, move); got != want {
		t.Fatalf("practical roi = %v, want %v", got, want)
	}
	if got := m.ROIPractical(env, env, c, move); math.Abs(got-m.ROI(env, env, c, move)) > 0.01 {
		t.Fatalf("practical roi %v too far from theoretical %v", got, m.ROI(env, env, c, move))
	}
}

func TestROIPractical_WorthlessContract(t *testing.T) {
	m := NewROIModel(Call{})
	env := Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2}
	c := Contract{Strike: 1000, Expiry: 0.1}
	move := Movement{Stock: 100, Time: 0.05}

	buy, sell := m.BuySellPricesPractical(env, env, c, move)
	if buy.StringFixed(2) != "0.01" || sell.StringFixed(2) != "0.00" {
		t.Fatalf("buy=%s sell=%s", buy, sell)
	}
	if got := m.ROIPractical(env, env, c, move); got != 0 {
		t.Fatalf("practical roi = %v, want 0", got)
	}
}
