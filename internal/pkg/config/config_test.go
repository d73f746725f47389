package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("avaroute-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.MaxRequestSpan != 0.5 {
		t.Errorf("expected max_request_span 0.5, got %v", cfg.Search.MaxRequestSpan)
	}
	if cfg.Search.TimeoutSeconds != 20 {
		t.Errorf("expected timeout 20, got %d", cfg.Search.TimeoutSeconds)
	}
	if cfg.Rasters.PixelResMeters != 5 {
		t.Errorf("expected pixel res 5, got %v", cfg.Rasters.PixelResMeters)
	}
	if cfg.Rasters.Aspect.Path != "data/aspect.parquet" {
		t.Errorf("unexpected aspect path %q", cfg.Rasters.Aspect.Path)
	}
	if cfg.Telemetry.ServiceName != "avaroute-test" {
		t.Errorf("expected service name from Load, got %q", cfg.Telemetry.ServiceName)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AVAROUTE_SEARCH_MAX_REQUEST_SPAN", "0.25")
	t.Setenv("AVAROUTE_SEARCH_CIRCULAR_ASPECT", "true")
	t.Setenv("AVAROUTE_RASTERS_ELEVATION_PATH", "/srv/dem.parquet")
	t.Setenv("AVAROUTE_DATABASE_HOST", "db.internal")

	cfg, err := Load("avaroute-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.MaxRequestSpan != 0.25 {
		t.Errorf("expected 0.25, got %v", cfg.Search.MaxRequestSpan)
	}
	if !cfg.Search.CircularAspect {
		t.Error("expected circular aspect")
	}
	if cfg.Rasters.Elevation.Path != "/srv/dem.parquet" {
		t.Errorf("unexpected elevation path %q", cfg.Rasters.Elevation.Path)
	}
	if !strings.Contains(cfg.Database.DSN(), "@db.internal:5432/") {
		t.Errorf("unexpected DSN %q", cfg.Database.DSN())
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Setenv("AVAROUTE_SERVER_PORT", "0")
	t.Setenv("AVAROUTE_SEARCH_TIMEOUT_SECONDS", "-1")
	t.Setenv("AVAROUTE_RASTERS_RISK_PIXEL_WIDTH", "0")

	_, err := Load("avaroute-test")
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "search.timeout_seconds", "rasters.risk pixel size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}
