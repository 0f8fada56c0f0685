package battle

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nstehr/vimy/vimy-combat/model"
)

// Seeds returns n seeds starting at base, step apart.
func Seeds(base, step uint64, n int) []uint64 {
	out := make([]uint64, 0, max(0, n))
	for i := range n {
		out = append(out, base+uint64(i)*step)
	}
	return out
}

// RunSeeds fights one battle per seed, at most limit at a time (no limit when
// limit <= 0). build must return fresh options on every call: battles share
// nothing. Results come back in seed order; on error the slice still holds
// every battle that finished.
func RunSeeds(ctx context.Context, seeds []uint64, limit int, build func(seed uint64) (Options, error)) ([]Result, error) {
	results := make([]Result, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, seed := range seeds {
		g.Go(func() error {
			opts, err := build(seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			opts.Seed = seed
			b, err := New(opts)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			res, err := b.Run(ctx)
			results[i] = res
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

// Summary aggregates a batch of results.
type Summary struct {
	Battles    int                    `json:"battles"`
	Outcomes   map[Outcome]int        `json:"outcomes"`
	Wins       map[model.EmpireID]int `json:"wins"`
	MeanRounds float64                `json:"mean_rounds"`
	MaxRounds  int                    `json:"max_rounds"`
	Destroyed  map[string]int         `json:"destroyed"`
	Retreated  map[string]int         `json:"retreated"`
}

func Summarize(results []Result) Summary {
	s := Summary{
		Battles:   len(results),
		Outcomes:  make(map[Outcome]int),
		Wins:      make(map[model.EmpireID]int),
		Destroyed: make(map[string]int),
		Retreated: make(map[string]int),
	}
	rounds := 0
	for _, r := range results {
		s.Outcomes[r.Outcome]++
		for _, e := range r.Winners {
			s.Wins[e]++
		}
		rounds += r.Rounds
		s.MaxRounds = max(s.MaxRounds, r.Rounds)
		for _, st := range r.Stacks {
			if st.Destroyed {
				s.Destroyed[st.Name]++
			}
			if st.Retreated {
				s.Retreated[st.Name]++
			}
		}
	}
	if len(results) > 0 {
		s.MeanRounds = float64(rounds) / float64(len(results))
	}
	return s
}

// WinRate is the fraction of battles empire e won.
func (s Summary) WinRate(e model.EmpireID) float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.Wins[e]) / float64(s.Battles)
}

// Empires lists the empires with at least one win, ascending.
func (s Summary) Empires() []model.EmpireID {
	out := make([]model.EmpireID, 0, len(s.Wins))
	for e := range s.Wins {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
