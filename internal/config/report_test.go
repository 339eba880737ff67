package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReportConfigDefaultsWithoutFile(t *testing.T) {
	holder, err := NewReportConfigHolderFromPaths(t.TempDir())
	if err != nil {
		t.Fatalf("load report config: %v", err)
	}
	cfg := holder.Get()
	if cfg != DefaultReportConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Location().String() != "UTC" {
		t.Fatalf("expected UTC location, got %s", cfg.Location())
	}
}

func TestReportConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("report:\n  timezone: America/Sao_Paulo\n  revenueMonths: 24\n  lookAheadDays: 14\n")
	if err := os.WriteFile(filepath.Join(dir, "report.yml"), content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	holder, err := NewReportConfigHolderFromPaths(dir)
	if err != nil {
		t.Fatalf("load report config: %v", err)
	}
	cfg := holder.Get()
	if cfg.RevenueMonths != 24 {
		t.Fatalf("expected revenueMonths 24, got %d", cfg.RevenueMonths)
	}
	if cfg.LookAheadDays != 14 {
		t.Fatalf("expected lookAheadDays 14, got %d", cfg.LookAheadDays)
	}
	if cfg.CashFlowMonths != DefaultReportConfig().CashFlowMonths {
		t.Fatalf("expected default cashFlowMonths, got %d", cfg.CashFlowMonths)
	}
	if cfg.Location().String() != "America/Sao_Paulo" {
		t.Fatalf("unexpected location %s", cfg.Location())
	}
}

func TestReportConfigRejectsInvalidWindow(t *testing.T) {
	dir := t.TempDir()
	content := []byte("report:\n  cashFlowMonths: 0\n")
	if err := os.WriteFile(filepath.Join(dir, "report.yml"), content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := NewReportConfigHolderFromPaths(dir); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadSnapshotStoreNormalization(t *testing.T) {
	t.Setenv("SNAPSHOT_STORE", " Redis ")
	if got := Load().Snapshot.Store; got != SnapshotStoreRedis {
		t.Fatalf("expected redis store, got %q", got)
	}
	t.Setenv("SNAPSHOT_STORE", "bogus")
	if got := Load().Snapshot.Store; got != SnapshotStoreDatabase {
		t.Fatalf("expected database fallback, got %q", got)
	}
}
