package polyline

import (
	"math"
	"strings"
	"testing"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		name     string
		shape    []string
		expected []Coordinate
	}{
		{
			name:  "two points",
			shape: []string{"52.5000305,13.3999632", "52.3999634,13.5000732"},
			expected: []Coordinate{
				{Lat: 52.5000305, Lon: 13.3999632},
				{Lat: 52.3999634, Lon: 13.5000732},
			},
		},
		{
			name:  "negative longitude",
			shape: []string{"38.5,-120.2"},
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name:     "empty",
			shape:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseShape(tt.shape)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d coordinates, got %d", len(tt.expected), len(result))
			}
			for i, coord := range result {
				if coord != tt.expected[i] {
					t.Errorf("coordinate %d: expected %+v, got %+v", i, tt.expected[i], coord)
				}
			}
		})
	}
}

func TestParseShape_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		shape []string
	}{
		{name: "missing comma", shape: []string{"52.5 13.4"}},
		{name: "non-numeric latitude", shape: []string{"north,13.4"}},
		{name: "non-numeric longitude", shape: []string{"52.5,east"}},
		{name: "bad point after good point", shape: []string{"52.5,13.4", "garbage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShape(tt.shape)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "malformed shape point") {
				t.Errorf("unexpected error text: %v", err)
			}
		})
	}
}

func TestDecode_ValidPolyline(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		expected []Coordinate
	}{
		{
			name:    "single point",
			encoded: "_p~iF~ps|U",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name:    "two points",
			encoded: "_p~iF~ps|U_ulLnnqC",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
			},
		},
		{
			name:    "three points - Google example",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Decode(tt.encoded)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d coordinates, got %d", len(tt.expected), len(result))
			}

			for i, coord := range result {
				if !coordsEqual(coord, tt.expected[i], 0.001) {
					t.Errorf("coordinate %d: expected %+v, got %+v", i, tt.expected[i], coord)
				}
			}
		})
	}
}

func TestDecode_EmptyString(t *testing.T) {
	result := Decode("")
	if result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		coords []Coordinate
	}{
		{
			name: "single point",
			coords: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name: "Berlin route shape",
			coords: []Coordinate{
				{Lat: 52.5000305, Lon: 13.3999632},
				{Lat: 52.4961395, Lon: 13.3822842},
				{Lat: 52.3999634, Lon: 13.5000732},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.coords)
			if encoded == "" {
				t.Fatal("expected non-empty encoded string")
			}

			decoded := Decode(encoded)
			if len(decoded) != len(tt.coords) {
				t.Fatalf("round-trip: expected %d coordinates, got %d", len(tt.coords), len(decoded))
			}

			for i, coord := range decoded {
				// Precision of 5 decimal places = 0.00001
				if !coordsEqual(coord, tt.coords[i], 0.00001) {
					t.Errorf("round-trip coordinate %d: expected %+v, got %+v", i, tt.coords[i], coord)
				}
			}
		})
	}
}

func TestEncode_EmptyCoordinates(t *testing.T) {
	if result := Encode(nil); result != "" {
		t.Errorf("expected empty string for nil coordinates, got %q", result)
	}
	if result := Encode([]Coordinate{}); result != "" {
		t.Errorf("expected empty string for empty coordinates, got %q", result)
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		name           string
		coords         []Coordinate
		expectedMeters float64
		tolerance      float64
	}{
		{
			name:           "empty",
			coords:         nil,
			expectedMeters: 0,
			tolerance:      0,
		},
		{
			name:           "single point",
			coords:         []Coordinate{{Lat: 52.0, Lon: 13.0}},
			expectedMeters: 0,
			tolerance:      0,
		},
		{
			name: "central Berlin to Adlershof - roughly 13km",
			coords: []Coordinate{
				{Lat: 52.5, Lon: 13.4},
				{Lat: 52.4, Lon: 13.5},
			},
			expectedMeters: 13100,
			tolerance:      1000,
		},
		{
			name: "1 degree latitude at equator - roughly 111km",
			coords: []Coordinate{
				{Lat: 0.0, Lon: 0.0},
				{Lat: 1.0, Lon: 0.0},
			},
			expectedMeters: 111000,
			tolerance:      1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Length(tt.coords)
			diff := math.Abs(result - tt.expectedMeters)
			if diff > tt.tolerance {
				t.Errorf("expected ~%.0fm (±%.0f), got %.0fm", tt.expectedMeters, tt.tolerance, result)
			}
		})
	}
}

func TestSample(t *testing.T) {
	// Straight shape heading north, roughly 1.1km per segment.
	coords := []Coordinate{
		{Lat: 52.0, Lon: 13.0},
		{Lat: 52.01, Lon: 13.0},
		{Lat: 52.02, Lon: 13.0},
		{Lat: 52.03, Lon: 13.0},
	}

	t.Run("sample every 500m", func(t *testing.T) {
		sampled := Sample(coords, 500)
		// Total distance is ~3.3km, so we expect ~7 samples plus endpoints.
		if len(sampled) < 5 {
			t.Errorf("expected at least 5 samples, got %d", len(sampled))
		}
		if !coordsEqual(sampled[0], coords[0], 0.0001) {
			t.Error("first sample should be first coordinate")
		}
		if !coordsEqual(sampled[len(sampled)-1], coords[len(coords)-1], 0.0001) {
			t.Error("last sample should be last coordinate")
		}
	})

	t.Run("interval exceeds shape length", func(t *testing.T) {
		sampled := Sample(coords, 10000)
		if len(sampled) != 2 {
			t.Errorf("expected 2 samples (start and end), got %d", len(sampled))
		}
	})

	t.Run("empty coordinates", func(t *testing.T) {
		if sampled := Sample(nil, 500); sampled != nil {
			t.Error("expected nil for empty coordinates")
		}
	})

	t.Run("zero interval returns all", func(t *testing.T) {
		if sampled := Sample(coords, 0); len(sampled) != len(coords) {
			t.Error("expected all coordinates for zero interval")
		}
	})
}

// coordsEqual checks if two coordinates are equal within a tolerance.
func coordsEqual(a, b Coordinate, tolerance float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tolerance && math.Abs(a.Lon-b.Lon) <= tolerance
}

func BenchmarkParseShape(b *testing.B) {
	shape := []string{
		"52.5000305,13.3999632",
		"52.4961395,13.3822842",
		"52.4633784,13.4217307",
		"52.4311904,13.4671593",
		"52.3999634,13.5000732",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParseShape(shape)
	}
}

func BenchmarkEncode(b *testing.B) {
	coords := []Coordinate{
		{Lat: 52.5000305, Lon: 13.3999632},
		{Lat: 52.4961395, Lon: 13.3822842},
		{Lat: 52.3999634, Lon: 13.5000732},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Encode(coords)
	}
}
