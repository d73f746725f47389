package main

import "testing"

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("-5.0036, 56.7969")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lon != -5.0036 || p.Lat != 56.7969 {
		t.Errorf("unexpected point %+v", p)
	}

	for _, bad := range []string{"", "-5.0036", "x,56", "-5,y"} {
		if _, err := parsePoint(bad); err == nil {
			t.Errorf("parsePoint(%q): expected error", bad)
		}
	}
}
