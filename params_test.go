package herego

import (
	"strings"
	"testing"
)

func TestParams_Encode_InsertionOrder(t *testing.T) {
	p := NewParams()
	p.Set("waypoint0", "52.5,13.4")
	p.Set("waypoint1", "52.4,13.5")
	p.Set("mode", "car;fastest")
	p.Set("app_id", "app_id")
	p.Set("app_code", "app_code")

	got := p.Encode()
	want := "waypoint0=52.5%2C13.4&waypoint1=52.4%2C13.5&mode=car%3Bfastest&app_id=app_id&app_code=app_code"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestParams_Set_OverwriteKeepsPosition(t *testing.T) {
	p := NewParams()
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("a", "3")

	if got := p.Encode(); got != "a=3&b=2" {
		t.Errorf("Encode() = %q, want %q", got, "a=3&b=2")
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestParams_SetBool(t *testing.T) {
	tests := []struct {
		name string
		v    bool
		want string
	}{
		{name: "true serializes to literal true", v: true, want: "true"},
		{name: "false serializes to literal false", v: false, want: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams()
			p.SetBool("combine_change", tt.v)

			got, ok := p.Get("combine_change")
			if !ok {
				t.Fatal("expected combine_change to be set")
			}
			if got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParams_Encode_Empty(t *testing.T) {
	var nilParams *Params
	if got := nilParams.Encode(); got != "" {
		t.Errorf("nil Encode() = %q, want empty", got)
	}
	if got := NewParams().Encode(); got != "" {
		t.Errorf("empty Encode() = %q, want empty", got)
	}
}

func TestParams_Encode_Escaping(t *testing.T) {
	p := NewParams()
	p.Set("name", "New York")
	p.Set("waypoint1", "street!!52.5,13.4")

	got := p.Encode()
	if !strings.Contains(got, "name=New+York") {
		t.Errorf("expected escaped space in %q", got)
	}
	if !strings.Contains(got, "waypoint1=street%21%2152.5%2C13.4") {
		t.Errorf("expected escaped street prefix in %q", got)
	}
}

func TestBuildURL(t *testing.T) {
	p := NewParams()
	p.Set("app_id", "app_id")
	p.Set("app_code", "app_code")

	got, err := BuildURL("https://route.cit.api.here.com/routing/7.2/calculateroute.json", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "https://route.cit.api.here.com/routing/7.2/calculateroute.json?app_id=app_id&app_code=app_code"
	if got != want {
		t.Errorf("BuildURL() = %q, want %q", got, want)
	}
}

func TestBuildURL_PreservesExistingQuery(t *testing.T) {
	p := NewParams()
	p.Set("b", "2")

	got, err := BuildURL("https://example.com/path?a=1", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com/path?a=1&b=2" {
		t.Errorf("BuildURL() = %q", got)
	}
}

func TestBuildURL_NoParams(t *testing.T) {
	got, err := BuildURL("https://example.com/path", NewParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://example.com/path" {
		t.Errorf("BuildURL() = %q", got)
	}
}

func TestBuildURL_MalformedBase(t *testing.T) {
	_, err := BuildURL("://missing-scheme", NewParams())
	if err == nil {
		t.Fatal("expected error for malformed base URL")
	}
}
