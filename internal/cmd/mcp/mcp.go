// Package mcp parses MCP command configuration and wires the dice service to
// the selected MCP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/dicenotation/internal/core/dice"
	"github.com/louisbranch/dicenotation/internal/core/dice/notation"
	platformcmd "github.com/louisbranch/dicenotation/internal/platform/cmd"
	"github.com/louisbranch/dicenotation/internal/random"
	dicesvc "github.com/louisbranch/dicenotation/internal/services/dice"
	"github.com/louisbranch/dicenotation/internal/services/dice/storage/sqlite"
	mcpservice "github.com/louisbranch/dicenotation/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string   `env:"MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string   `env:"MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	AllowedHosts []string `env:"MCP_ALLOWED_HOSTS" envSeparator:","`
	DBPath       string   `env:"DB_PATH"`
	Seed         int64    `env:"SEED"`
	MaxDice      int      `env:"MAX_DICE"          envDefault:"100000"`
}

// ParseConfig parses environment and flags into a Config. Flags win over
// the environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite roll journal path; empty disables the journal")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "roller seed; 0 picks a random seed")
	fs.IntVar(&cfg.MaxDice, "max-dice", cfg.MaxDice, "maximum dice in one roll")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		server, closeJournal, err := newServer(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeJournal()

		return server.Run(ctx, mcpservice.Config{
			Transport:    mcpservice.TransportKind(strings.ToLower(strings.TrimSpace(cfg.Transport))),
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
		})
	})
}

// newServer builds the roller, evaluator, optional journal and MCP server.
// The returned close function releases the journal.
func newServer(ctx context.Context, cfg Config) (*mcpservice.Server, func(), error) {
	noop := func() {}

	seed, source, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		return nil, noop, fmt.Errorf("resolve seed: %w", err)
	}
	roller := dice.NewRandRoller(seed)
	if source == random.SeedSourceConfigured {
		log.Printf("dice roller seed %d (%s)", roller.Seed(), source)
	} else {
		log.Printf("dice roller seeded (%s)", source)
	}

	evaluator := notation.New(roller, notation.WithMaxDice(cfg.MaxDice))
	var opts []dicesvc.Option

	closeJournal := noop
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, noop, fmt.Errorf("open roll journal: %w", err)
		}
		closeJournal = func() {
			if err := store.Close(); err != nil {
				log.Printf("close roll journal: %v", err)
			}
		}
		opts = append(opts, dicesvc.WithJournal(store))
	} else {
		log.Printf("roll journal disabled")
	}

	svc, err := dicesvc.NewService(evaluator, opts...)
	if err != nil {
		closeJournal()
		return nil, noop, err
	}
	server, err := mcpservice.New(svc)
	if err != nil {
		closeJournal()
		return nil, noop, err
	}
	return server, closeJournal, nil
}
