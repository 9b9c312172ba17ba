package feature

import (
	"math"
	"testing"

	"github.com/rushteam/foodrank/core"
)

func TestMinMaxNormalize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{
			name:   "basic range",
			values: []float64{0, 5, 10},
			want:   []float64{0, 0.5, 1},
		},
		{
			name:   "negative values",
			values: []float64{-2, 0, 2},
			want:   []float64{0, 0.5, 1},
		},
		{
			name:   "single value",
			values: []float64{42},
			want:   []float64{0.5},
		},
		{
			name:   "all equal",
			values: []float64{3, 3, 3, 3},
			want:   []float64{0.5, 0.5, 0.5, 0.5},
		},
		{
			name:   "empty",
			values: []float64{},
			want:   []float64{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinMaxNormalize(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("got[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMinMaxNormalize_Bounds(t *testing.T) {
	columns := [][]float64{
		{0.1, 0.2, 0.30000000000000004, 1e-300},
		{1e15, -1e15, 3, 7},
		{4.0, 2.0, 4.0, 3.5, 1.0, 5.0},
		{0, 0, 0, 1e-9},
		{-1e308, 0, 1e308},
		{-math.MaxFloat64, math.MaxFloat64},
	}
	for _, col := range columns {
		for i, v := range MinMaxNormalize(col) {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Errorf("normalize(%v)[%d] = %v out of [0,1]", col, i, v)
			}
		}
	}
}

func TestMinMaxNormalize_HugeRange(t *testing.T) {
	got := MinMaxNormalize([]float64{-1e308, 0, 1e308})
	want := []float64{0, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("normalize[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMinMaxNormalize_DoesNotMutate(t *testing.T) {
	in := []float64{3, 1, 2}
	MinMaxNormalize(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestInvert(t *testing.T) {
	got := Invert([]float64{0, 0.25, 1, 0.5})
	want := []float64{1, 0.75, 0, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Invert[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFill(t *testing.T) {
	values := []core.OptionalFloat{core.Some(10), core.None(), core.Some(30), core.Some(20), core.None()}

	zero, zeroFill := Fill(values, FillZero)
	if zeroFill != 0 || zero[1] != 0 || zero[4] != 0 || zero[0] != 10 {
		t.Errorf("FillZero = %v (fill %v)", zero, zeroFill)
	}

	median, medianFill := Fill(values, FillMedian)
	if medianFill != 20 || median[1] != 20 || median[4] != 20 || median[2] != 30 {
		t.Errorf("FillMedian = %v (fill %v)", median, medianFill)
	}
}

func TestFill_MedianEvenCount(t *testing.T) {
	values := []core.OptionalFloat{core.Some(10), core.Some(40), core.None(), core.Some(20), core.Some(30)}
	filled, fill := Fill(values, FillMedian)
	if fill != 25 || filled[2] != 25 {
		t.Errorf("median fill = %v, want 25", fill)
	}
}

func TestFill_AllMissing(t *testing.T) {
	values := []core.OptionalFloat{core.None(), core.None()}
	for _, p := range []FillPolicy{FillZero, FillMedian} {
		filled, _ := Fill(values, p)
		norm := MinMaxNormalize(filled)
		for i, v := range norm {
			if v != 0.5 {
				t.Errorf("%s: all-missing column normalized[%d] = %v, want 0.5", p, i, v)
			}
		}
	}
}

func TestParseFillPolicy(t *testing.T) {
	for _, p := range []FillPolicy{FillZero, FillMedian} {
		got, err := ParseFillPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseFillPolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseFillPolicy("mean"); err == nil {
		t.Error("ParseFillPolicy(mean) should fail")
	}
}

func TestComputeStatistics(t *testing.T) {
	stats := ComputeStatistics([]float64{4, 1, 3, 2})
	if stats.Count != 4 || stats.Min != 1 || stats.Max != 4 || stats.Sum != 10 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.Mean != 2.5 || stats.Median != 2.5 {
		t.Errorf("mean/median = %v/%v, want 2.5/2.5", stats.Mean, stats.Median)
	}
	if math.Abs(stats.Std-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("std = %v, want population std %v", stats.Std, math.Sqrt(1.25))
	}
	if stats.P25 != 1.75 || stats.P75 != 3.25 {
		t.Errorf("quartiles = %v/%v, want 1.75/3.25", stats.P25, stats.P75)
	}
	if empty := ComputeStatistics(nil); empty.Count != 0 {
		t.Errorf("empty stats: %+v", empty)
	}
	if !math.IsNaN(Median(nil)) {
		t.Error("Median(nil) should be NaN")
	}
}
