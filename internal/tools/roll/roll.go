// Package roll implements a one-shot command that evaluates dice expressions
// from the command line.
package roll

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/dicenotation/internal/core/dice"
	"github.com/louisbranch/dicenotation/internal/core/dice/notation"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/random"
	dicesvc "github.com/louisbranch/dicenotation/internal/services/dice"
)

// Config holds configuration for the roll command.
type Config struct {
	Seed        int64
	MaxDice     int
	Handicap    string
	Locale      string
	JSON        bool
	Expressions []string
}

// ParseConfig parses flags into a Config. Positional arguments are the
// expressions to roll.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{MaxDice: notation.DefaultMaxDice}
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "roller seed; 0 picks a random seed")
	fs.IntVar(&cfg.MaxDice, "max-dice", cfg.MaxDice, "maximum dice in one roll")
	fs.StringVar(&cfg.Handicap, "handicap", cfg.Handicap, "roll twice with advantage or disadvantage")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages, e.g. pt-BR")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "write one JSON object per expression")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Expressions = fs.Args()
	return cfg, nil
}

// line is the JSON shape of one rolled expression.
type line struct {
	Expression string  `json:"expression"`
	Kind       string  `json:"kind"`
	Total      int     `json:"total"`
	Rolls      [][]int `json:"rolls"`
}

// Run rolls every expression in cfg and writes one line per expression to
// out. A nil roller is replaced by a seeded random roller. Run stops at the
// first expression that fails and returns its localized message.
func Run(ctx context.Context, cfg Config, out io.Writer, roller dice.Roller) error {
	if out == nil {
		return errors.New("output is required")
	}
	if len(cfg.Expressions) == 0 {
		return errors.New("at least one expression is required")
	}
	if roller == nil {
		seed, _, err := random.ResolveSeed(cfg.Seed)
		if err != nil {
			return fmt.Errorf("resolve seed: %w", err)
		}
		roller = dice.NewRandRoller(seed)
	}

	svc, err := dicesvc.NewService(notation.New(roller, notation.WithMaxDice(cfg.MaxDice)))
	if err != nil {
		return err
	}

	for _, expression := range cfg.Expressions {
		result, err := rollOne(ctx, svc, cfg.Handicap, expression)
		if err != nil {
			return localize(err, cfg.Locale)
		}
		if err := write(out, result, cfg.JSON); err != nil {
			return err
		}
	}
	return nil
}

func rollOne(ctx context.Context, svc *dicesvc.Service, handicap, expression string) (line, error) {
	if strings.TrimSpace(handicap) == "" {
		result, err := svc.Evaluate(ctx, expression)
		if err != nil {
			return line{}, err
		}
		return line{
			Expression: expression,
			Kind:       "evaluate",
			Total:      result.Total,
			Rolls:      dice.Faces(result.Rolls),
		}, nil
	}

	result, err := svc.Handicap(ctx, handicap, expression)
	if err != nil {
		return line{}, err
	}
	return line{
		Expression: expression,
		Kind:       result.Kind.String(),
		Total:      result.Total,
		Rolls:      dice.Faces(result.Outcomes[:]),
	}, nil
}

func write(out io.Writer, result line, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(out).Encode(result)
	}
	prefix := ""
	if result.Kind != "evaluate" {
		prefix = result.Kind + " "
	}
	_, err := fmt.Fprintf(out, "%s%s = %d %v\n", prefix, result.Expression, result.Total, result.Rolls)
	return err
}

func localize(err error, locale string) error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return errors.New(domainErr.LocalizedMessage(locale))
	}
	return err
}
