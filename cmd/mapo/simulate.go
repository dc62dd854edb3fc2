package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aimapo/internal/app/game"
	"aimapo/internal/app/turn"
	"aimapo/internal/domain/city"
)

type simulateOptions struct {
	Turns      int
	Allocation string
	Pledges    []string
	Activate   []string
	Seed       int64
	JSON       bool
}

type simulateRow struct {
	Turn         int     `json:"turn"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	Population   int     `json:"population"`
	Businesses   int     `json:"businesses"`
	Satisfaction float64 `json:"avg_satisfaction"`
	FreeBudget   float64 `json:"free_budget"`
	Independence float64 `json:"fiscal_independence"`
	Event        string  `json:"event,omitempty"`
	Choice       string  `json:"choice,omitempty"`
}

type simulateSummary struct {
	Rows  []simulateRow     `json:"turns"`
	Score *city.PledgeScore `json:"score,omitempty"`
}

func simulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a batch game with a fixed allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			return runSimulate(cmd.Context(), buildApp(cfg), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.Turns, "turns", city.DefaultMaxTurns, "number of turns to play")
	cmd.Flags().StringVar(&opts.Allocation, "allocation", "15,15,10,10,15,20,15", "economy,transport,culture,environment,education,welfare,safety percentages")
	cmd.Flags().StringSliceVar(&opts.Pledges, "pledges", nil, "pledge ids to commit to")
	cmd.Flags().StringSliceVar(&opts.Activate, "activate", nil, "policy ids to activate on the first turn")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "event scheduler seed")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the whole run as JSON")
	return cmd
}

func parseAllocation(raw string) (city.Allocation, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != len(city.AllBudgetCategories) {
		return city.Allocation{}, fmt.Errorf("allocation needs %d values, got %d", len(city.AllBudgetCategories), len(parts))
	}
	var a city.Allocation
	for i, c := range city.AllBudgetCategories {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return city.Allocation{}, fmt.Errorf("allocation %s: %w", c, err)
		}
		a.Set(c, v)
	}
	return a, nil
}

// runSimulate plays through the usecases, resolving every pending event
// with its first choice.
func runSimulate(ctx context.Context, a app, opts simulateOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	alloc, err := parseAllocation(opts.Allocation)
	if err != nil {
		return err
	}
	cat, err := a.provider.Catalog(ctx)
	if err != nil {
		return err
	}

	seed := opts.Seed
	started, err := a.handler.GameUC.Execute(ctx, game.Request{Pledges: opts.Pledges, Seed: &seed, MaxTurns: opts.Turns})
	if err != nil {
		return err
	}
	session := started.Session

	var (
		summary simulateSummary
		pending = session.Pending
	)
	if !opts.JSON {
		fmt.Fprintf(out, "%4s %7s %10s %10s %6s %9s %5s  %s\n", "turn", "date", "population", "businesses", "sat", "free", "fi", "event")
	}
	for i := 0; i < session.State.Meta.MaxTurns; i++ {
		req := turn.Request{SessionID: session.ID, Allocation: &alloc}
		if i == 0 {
			req.Activate = opts.Activate
		}
		if pending != nil {
			ev, ok := cat.Event(pending.EventID)
			if !ok || len(ev.Choices) == 0 {
				return fmt.Errorf("pending event %s has no choices", pending.EventID)
			}
			req.EventChoice = &turn.EventChoiceRequest{EventID: ev.ID, ChoiceID: ev.Choices[0].ID}
		}

		resp, err := a.handler.TurnUC.Execute(ctx, req)
		if err != nil {
			return fmt.Errorf("turn %d: %w", i+1, err)
		}
		rec := resp.Record
		row := simulateRow{
			Turn:         rec.Turn,
			Year:         rec.Year,
			Month:        rec.Month,
			Population:   rec.TotalPopulation,
			Businesses:   rec.TotalBusinesses,
			Satisfaction: rec.AvgSatisfaction,
			FreeBudget:   rec.FreeBudget,
			Independence: rec.FiscalIndependence,
			Event:        rec.EventID,
			Choice:       rec.EventChoiceID,
		}
		summary.Rows = append(summary.Rows, row)
		if !opts.JSON {
			fmt.Fprintf(out, "%4d %4d-%02d %10d %10d %6.1f %9.1f %5.0f  %s\n",
				row.Turn, row.Year, row.Month, row.Population, row.Businesses, row.Satisfaction, row.FreeBudget, row.Independence, eventLabel(row))
		}
		pending = resp.Pending
		if resp.GameOver {
			summary.Score = resp.Score
			break
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	if summary.Score != nil {
		fmt.Fprintf(out, "score %d/%d achieved=%v missed=%v\n", summary.Score.Points, summary.Score.Possible, summary.Score.Achieved, summary.Score.Missed)
	}
	return nil
}

func eventLabel(r simulateRow) string {
	if r.Event == "" {
		return ""
	}
	return r.Event + "/" + r.Choice
}
