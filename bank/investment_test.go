package bank

import (
	"math"
	"testing"
	"time"
)

func TestContinuousInterest(t *testing.T) {
	// 1000 * (e^(0.05*1) - 1)
	got := ContinuousInterest(1000, 0.05, 1)
	want := 51.2710963760241
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ContinuousInterest = %v, want %v", got, want)
	}

	if got := ContinuousInterest(1000, 0.05, 0); got != 0 {
		t.Errorf("interest at t=0 = %v, want 0", got)
	}
}

func TestCompoundInterest(t *testing.T) {
	// 1000 * ((1 + 0.1/12)^12 - 1), monthly compounding over one period.
	got := CompoundInterest(1000, 0.1, 12, 1)
	want := 1000 * (math.Pow(1+0.1/12, 12) - 1)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CompoundInterest = %v, want %v", got, want)
	}
	if math.Abs(got-104.713067) > 1e-3 {
		t.Errorf("CompoundInterest = %v, want ≈104.713", got)
	}

	// Annual compounding is plain simple growth for one period.
	if got := CompoundInterest(500, 0.2, 1, 1); math.Abs(got-100) > 1e-9 {
		t.Errorf("annual compound = %v, want 100", got)
	}
}

func TestInterestSelectsFormula(t *testing.T) {
	now := time.Now()
	timeScale := 24 * time.Hour
	started := now.Add(-48 * time.Hour).UnixMilli()

	continuous := &Investment{Principle: 1000, Rate: 0.05, Compounding: 0, Started: started}
	compound := &Investment{Principle: 1000, Rate: 0.05, Compounding: 12, Started: started}

	tElapsed := continuous.Elapsed(now).Seconds() / timeScale.Seconds()

	wantCont := ContinuousInterest(1000, 0.05, tElapsed)
	if got := continuous.Interest(now, timeScale); math.Abs(got-wantCont) > 1e-6 {
		t.Errorf("continuous Interest = %v, want %v", got, wantCont)
	}

	wantComp := CompoundInterest(1000, 0.05, 12, tElapsed)
	if got := compound.Interest(now, timeScale); math.Abs(got-wantComp) > 1e-6 {
		t.Errorf("compound Interest = %v, want %v", got, wantComp)
	}
	if wantCont == wantComp {
		t.Error("formulas should differ for these parameters")
	}
}

func TestNewInvestment(t *testing.T) {
	before := time.Now().UnixMilli()
	inv := NewInvestment(250, 0.02, 4)
	after := time.Now().UnixMilli()

	if inv.ID == "" {
		t.Error("investment has no ID")
	}
	if inv.Principle != 250 || inv.Rate != 0.02 || inv.Compounding != 4 {
		t.Errorf("unexpected fields: %+v", inv)
	}
	if inv.Started < before || inv.Started > after {
		t.Errorf("Started = %d, want within [%d, %d]", inv.Started, before, after)
	}
}
