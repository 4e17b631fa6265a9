package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Source.Provider != "paste" {
		t.Errorf("Source.Provider = %q, want paste", cfg.Source.Provider)
	}
	if cfg.Report.Kind != "events" {
		t.Errorf("Report.Kind = %q, want events", cfg.Report.Kind)
	}
	if cfg.Report.Charset != "utf-8" {
		t.Errorf("Report.Charset = %q, want utf-8", cfg.Report.Charset)
	}
	if cfg.Parse.Strict {
		t.Error("Parse.Strict should default to false")
	}
	if cfg.Store.Path != "" {
		t.Errorf("Store.Path = %q, want empty", cfg.Store.Path)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOOT_SOURCE", "logdir")
	t.Setenv("LOOT_LOG_DIR", "/var/logs/sto")
	t.Setenv("LOOT_REFERENCE_YEAR", "2016")
	t.Setenv("LOOT_REPORT", "totals")
	t.Setenv("LOOT_SALE_LOSSES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.Provider != "logdir" || cfg.Source.Dir != "/var/logs/sto" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Parse.ReferenceYear != 2016 {
		t.Errorf("ReferenceYear = %d, want 2016", cfg.Parse.ReferenceYear)
	}
	if cfg.Report.Kind != "totals" || !cfg.Report.IncludeSaleLosses {
		t.Errorf("report = %+v", cfg.Report)
	}
}

func TestYear(t *testing.T) {
	now := time.Date(2016, 5, 5, 0, 0, 0, 0, time.UTC)

	p := ParseConfig{ReferenceYear: 0}
	if got := p.Year(now); got != 2016 {
		t.Errorf("Year = %d, want 2016", got)
	}
	p.ReferenceYear = 2014
	if got := p.Year(now); got != 2014 {
		t.Errorf("Year = %d, want 2014", got)
	}
}

func TestTimeLocation(t *testing.T) {
	for _, name := range []string{"", "UTC"} {
		loc, err := ParseConfig{Location: name}.TimeLocation()
		if err != nil || loc != time.UTC {
			t.Errorf("TimeLocation(%q) = %v, %v", name, loc, err)
		}
	}

	loc, err := ParseConfig{Location: "Local"}.TimeLocation()
	if err != nil || loc != time.Local {
		t.Errorf("TimeLocation(Local) = %v, %v", loc, err)
	}

	if _, err := (ParseConfig{Location: "Mars/Olympus_Mons"}).TimeLocation(); err == nil {
		t.Error("expected error for unknown location")
	}
}
