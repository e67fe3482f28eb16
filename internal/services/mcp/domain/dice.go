package domain

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/dicenotation/internal/core/dice"
	"github.com/louisbranch/dicenotation/internal/core/dice/notation"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	dicesvc "github.com/louisbranch/dicenotation/internal/services/dice"
	"github.com/louisbranch/dicenotation/internal/services/dice/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DiceService is the dice application service the tools delegate to.
type DiceService interface {
	Validate(ctx context.Context, expression string) dicesvc.Validation
	Evaluate(ctx context.Context, expression string) (notation.Result, error)
	Handicap(ctx context.Context, kind, expression string) (notation.HandicapResult, error)
	History(ctx context.Context, query storage.Query) (storage.Page, error)
}

// ValidateInput represents the MCP tool input for validating an expression.
type ValidateInput struct {
	Expression string `json:"expression" jsonschema:"dice notation expression, e.g. 2d6+3"`
}

// ValidateResult represents the MCP tool output for validation.
type ValidateResult struct {
	Valid     bool `json:"valid" jsonschema:"whether the expression is accepted for evaluation"`
	SingleDie bool `json:"single_die" jsonschema:"whether the expression is a bare NdM term usable with dice_handicap"`
}

// EvaluateInput represents the MCP tool input for evaluating an expression.
type EvaluateInput struct {
	Expression string `json:"expression" jsonschema:"dice notation expression, e.g. 2d6+3"`
	Locale     string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// RollOutput is one die roll in tool output.
type RollOutput struct {
	Sides   int   `json:"sides" jsonschema:"number of sides per die"`
	Results []int `json:"results" jsonschema:"face of each die in roll order"`
	Total   int   `json:"total" jsonschema:"sum of the faces"`
}

// EvaluateResult represents the MCP tool output for an evaluation.
type EvaluateResult struct {
	Total int          `json:"total" jsonschema:"value of the expression"`
	Rolls []RollOutput `json:"rolls" jsonschema:"dice rolled, in evaluation order"`
}

// HandicapInput represents the MCP tool input for advantage or disadvantage.
type HandicapInput struct {
	Kind       string `json:"kind" jsonschema:"advantage or disadvantage"`
	Expression string `json:"expression" jsonschema:"single NdM term, e.g. 1d20"`
	Locale     string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// HandicapResult represents the MCP tool output for a handicap roll.
type HandicapResult struct {
	Kind     string       `json:"kind" jsonschema:"handicap applied"`
	Total    int          `json:"total" jsonschema:"kept total"`
	Outcomes []RollOutput `json:"outcomes" jsonschema:"both rolls in the order they were made"`
}

// HistoryInput represents the MCP tool input for listing journaled rolls.
type HistoryInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum entries to return (default 20, max 100)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	Filter    string `json:"filter,omitempty" jsonschema:"AIP-160 filter over kind, expression, total and created_at"`
	Locale    string `json:"locale,omitempty" jsonschema:"optional BCP 47 locale for error messages"`
}

// HistoryEntry is one journaled roll in tool output.
type HistoryEntry struct {
	ID         int64   `json:"id" jsonschema:"journal entry id"`
	Kind       string  `json:"kind" jsonschema:"evaluate, advantage or disadvantage"`
	Expression string  `json:"expression" jsonschema:"expression that was rolled"`
	Total      int     `json:"total" jsonschema:"resulting total"`
	Rolls      [][]int `json:"rolls" jsonschema:"faces of every roll in order"`
	CreatedAt  string  `json:"created_at" jsonschema:"RFC 3339 time the roll was journaled"`
}

// HistoryResult represents the MCP tool output for a history page.
type HistoryResult struct {
	Entries       []HistoryEntry `json:"entries" jsonschema:"journaled rolls, newest first"`
	NextPageToken string         `json:"next_page_token,omitempty" jsonschema:"token for the next page, empty on the last page"`
}

// ValidateTool defines the MCP tool schema for validation.
func ValidateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_validate",
		Description: "Checks whether a dice notation expression is accepted, without rolling",
	}
}

// EvaluateTool defines the MCP tool schema for evaluation.
func EvaluateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_evaluate",
		Description: "Rolls a dice notation expression such as 2d6+3 and returns the total and every roll",
	}
}

// HandicapTool defines the MCP tool schema for advantage and disadvantage.
func HandicapTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_handicap",
		Description: "Rolls a single NdM term twice and keeps the higher (advantage) or lower (disadvantage) total",
	}
}

// HistoryTool defines the MCP tool schema for the roll journal.
func HistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_history",
		Description: "Lists journaled rolls, newest first",
	}
}

// ValidateHandler runs the validator.
func ValidateHandler(svc DiceService) mcp.ToolHandlerFor[ValidateInput, ValidateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, ValidateResult, error) {
		validation := svc.Validate(ctx, input.Expression)
		return &mcp.CallToolResult{}, ValidateResult{
			Valid:     validation.Valid,
			SingleDie: validation.SingleDie,
		}, nil
	}
}

// EvaluateHandler evaluates an expression.
func EvaluateHandler(svc DiceService) mcp.ToolHandlerFor[EvaluateInput, EvaluateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, EvaluateResult, error) {
		result, err := svc.Evaluate(ctx, input.Expression)
		if err != nil {
			return nil, EvaluateResult{}, toolError(err, input.Locale)
		}
		return &mcp.CallToolResult{}, EvaluateResult{
			Total: result.Total,
			Rolls: rollOutputs(result.Rolls),
		}, nil
	}
}

// HandicapHandler rolls with advantage or disadvantage.
func HandicapHandler(svc DiceService) mcp.ToolHandlerFor[HandicapInput, HandicapResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HandicapInput) (*mcp.CallToolResult, HandicapResult, error) {
		result, err := svc.Handicap(ctx, input.Kind, input.Expression)
		if err != nil {
			return nil, HandicapResult{}, toolError(err, input.Locale)
		}
		return &mcp.CallToolResult{}, HandicapResult{
			Kind:     result.Kind.String(),
			Total:    result.Total,
			Outcomes: rollOutputs(result.Outcomes[:]),
		}, nil
	}
}

// HistoryHandler lists journaled rolls.
func HistoryHandler(svc DiceService) mcp.ToolHandlerFor[HistoryInput, HistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryResult, error) {
		page, err := svc.History(ctx, storage.Query{
			PageSize:  input.PageSize,
			PageToken: input.PageToken,
			Filter:    input.Filter,
		})
		if err != nil {
			return nil, HistoryResult{}, toolError(err, input.Locale)
		}

		entries := make([]HistoryEntry, 0, len(page.Records))
		for _, record := range page.Records {
			rolls := record.Rolls
			if rolls == nil {
				rolls = [][]int{}
			}
			entries = append(entries, HistoryEntry{
				ID:         record.ID,
				Kind:       string(record.Kind),
				Expression: record.Expression,
				Total:      record.Total,
				Rolls:      rolls,
				CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return &mcp.CallToolResult{}, HistoryResult{
			Entries:       entries,
			NextPageToken: page.NextPageToken,
		}, nil
	}
}

// toolError replaces a domain error with its localized message. Other errors
// pass through unchanged.
func toolError(err error, locale string) error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return errors.New(domainErr.LocalizedMessage(locale))
	}
	return err
}

func rollOutputs(rolls []dice.Roll) []RollOutput {
	out := make([]RollOutput, 0, len(rolls))
	for _, roll := range rolls {
		results := roll.Results
		if results == nil {
			results = []int{}
		}
		out = append(out, RollOutput{
			Sides:   roll.Sides,
			Results: results,
			Total:   roll.Total,
		})
	}
	return out
}
