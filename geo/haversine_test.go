package geo

import (
	"math"
	"testing"
)

func TestDistance_Identical(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 39.9042, Lon: 116.4074},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 90, Lon: 0},
	}
	for _, p := range points {
		if d := Distance(p.Lon, p.Lat, p.Lon, p.Lat); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{Lat: 51.5074, Lon: -0.1278}, {Lat: 48.8566, Lon: 2.3522}},
		{{Lat: 1.3521, Lon: 103.8198}, {Lat: 3.139, Lon: 101.6869}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: -45, Lon: 170}, {Lat: 45, Lon: -170}},
	}
	for _, p := range pairs {
		ab := Distance(p[0].Lon, p[0].Lat, p[1].Lon, p[1].Lat)
		ba := Distance(p[1].Lon, p[1].Lat, p[0].Lon, p[0].Lat)
		if math.Abs(ab-ba) > 1e-9*math.Max(1, math.Abs(ab)) {
			t.Errorf("asymmetric distance: %v vs %v", ab, ba)
		}
	}
}

func TestDistance_Known(t *testing.T) {
	tests := []struct {
		name     string
		from, to Coordinate
		wantKM   float64
		tol      float64
	}{
		{
			name:   "london to paris",
			from:   Coordinate{Lat: 51.5074, Lon: -0.1278},
			to:     Coordinate{Lat: 48.8566, Lon: 2.3522},
			wantKM: 343.5,
			tol:    1.0,
		},
		{
			name:   "one degree of latitude",
			from:   Coordinate{Lat: 0, Lon: 0},
			to:     Coordinate{Lat: 1, Lon: 0},
			wantKM: EarthRadiusKM * math.Pi / 180,
			tol:    1e-9,
		},
		{
			name:   "antipodal",
			from:   Coordinate{Lat: 0, Lon: 0},
			to:     Coordinate{Lat: 0, Lon: 180},
			wantKM: EarthRadiusKM * math.Pi,
			tol:    1e-6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.from.Lon, tt.from.Lat, tt.to.Lon, tt.to.Lat)
			if math.Abs(got-tt.wantKM) > tt.tol {
				t.Errorf("Distance() = %v, want %v ± %v", got, tt.wantKM, tt.tol)
			}
		})
	}
}

func TestDistance_NaNPropagates(t *testing.T) {
	if d := Distance(math.NaN(), 0, 1, 1); !math.IsNaN(d) {
		t.Errorf("Distance with NaN input = %v, want NaN", d)
	}
}

func TestBetween(t *testing.T) {
	a := Coordinate{Lat: 10, Lon: 10}
	if _, ok := Between(a, Missing()); ok {
		t.Error("Between with missing coordinate should not be ok")
	}
	if _, ok := Between(Coordinate{Lat: 91, Lon: 0}, a); ok {
		t.Error("Between with out-of-range latitude should not be ok")
	}
	km, ok := Between(a, a)
	if !ok || km != 0 {
		t.Errorf("Between(a, a) = %v, %v; want 0, true", km, ok)
	}
}
