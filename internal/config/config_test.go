package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("default port: got %s", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("default backend: got %s", cfg.DataBackend)
	}
	if cfg.TransactionsTab != "MM_Transactions" {
		t.Errorf("default transactions tab: got %s", cfg.TransactionsTab)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := Load()
	cfg.Port = "notaport"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "invalid port") {
		t.Errorf("expected port error, got %v", err)
	}
}

func TestValidateSheetsBackendNeedsCredentials(t *testing.T) {
	cfg := Load()
	cfg.DataBackend = "sheets"
	cfg.SpreadsheetID = ""
	cfg.ServiceAccountJSON = ""
	cfg.ServiceAccountFile = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "SPREADSHEET_ID") {
		t.Errorf("expected spreadsheet id error, got %v", err)
	}
	if !strings.Contains(err.Error(), "GOOGLE_SERVICE_ACCOUNT_JSON") {
		t.Errorf("expected credentials error, got %v", err)
	}
}

func TestValidateRejectsEmptyTab(t *testing.T) {
	cfg := Load()
	cfg.PortfolioTab = " "
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "PORTFOLIO_TAB") {
		t.Errorf("expected tab error, got %v", err)
	}
}

func TestValidateRejectsBadBackend(t *testing.T) {
	cfg := Load()
	cfg.DataBackend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected backend error")
	}
}
