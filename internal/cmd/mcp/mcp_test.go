package mcp

import (
	"context"
	"flag"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected journal disabled by default, got %q", cfg.DBPath)
	}
	if cfg.Seed != 0 {
		t.Fatalf("expected zero seed, got %d", cfg.Seed)
	}
	if cfg.MaxDice != 100000 {
		t.Fatalf("expected default max dice, got %d", cfg.MaxDice)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("DICE_NOTATION_MCP_TRANSPORT", "http")
	t.Setenv("DICE_NOTATION_MCP_ALLOWED_HOSTS", "dice.example,rolls.example")
	t.Setenv("DICE_NOTATION_DB_PATH", "/tmp/journal.db")
	t.Setenv("DICE_NOTATION_SEED", "42")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
	if !reflect.DeepEqual(cfg.AllowedHosts, []string{"dice.example", "rolls.example"}) {
		t.Fatalf("allowed hosts = %v", cfg.AllowedHosts)
	}
	if cfg.DBPath != "/tmp/journal.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected env seed, got %d", cfg.Seed)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DICE_NOTATION_MCP_HTTP_ADDR", "env-http")
	t.Setenv("DICE_NOTATION_MAX_DICE", "50")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-http", "-transport", "http", "-seed", "7", "-max-dice", "10", "-db-path", "rolls.db"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.Seed != 7 || cfg.MaxDice != 10 || cfg.DBPath != "rolls.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("DICE_NOTATION_SEED", "not-a-number")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for invalid seed")
	}
}

func TestNewServerOpensJournal(t *testing.T) {
	cfg := Config{
		DBPath:  filepath.Join(t.TempDir(), "journal.db"),
		Seed:    99,
		MaxDice: 10,
	}
	server, closeJournal, err := newServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer closeJournal()
	if server == nil {
		t.Fatal("expected server")
	}
}

func TestNewServerReportsJournalError(t *testing.T) {
	cfg := Config{DBPath: filepath.Join(t.TempDir(), "missing", "dir", "journal.db")}
	if _, _, err := newServer(context.Background(), cfg); err == nil {
		t.Fatal("expected journal open error")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	t.Setenv("DICE_NOTATION_OTEL_ENDPOINT", "")
	err := Run(context.Background(), Config{Transport: "carrier-pigeon", Seed: 1})
	if err == nil {
		t.Fatal("expected unsupported transport error")
	}
}
