package force

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/JustinWhittecar/bvengine/internal/bvcalc"
)

const instrumentationName = "github.com/JustinWhittecar/bvengine/internal/force"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Score is one unit's result within a session.
type Score struct {
	UnitID string
	Name   string
	Kind   bvcalc.Kind
	Result bvcalc.Result
}

// Scorer computes session scores with a bounded number of workers.
type Scorer struct {
	workers            int
	ignoreForceBonuses bool
	ignoreSkill        bool
	log                zerolog.Logger
	meter              metric.Meter

	scored metric.Int64Counter
	value  metric.Int64Histogram
}

type Option func(*Scorer)

// WithWorkers bounds concurrent calculations; n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Scorer) { s.workers = n }
}

// WithoutForceBonuses skips TAG and C3 bonuses.
func WithoutForceBonuses() Option {
	return func(s *Scorer) { s.ignoreForceBonuses = true }
}

// WithoutSkill leaves the skill multiplier out.
func WithoutSkill() Option {
	return func(s *Scorer) { s.ignoreSkill = true }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Scorer) { s.log = l }
}

// WithMeter replaces the global otel meter.
func WithMeter(m metric.Meter) Option {
	return func(s *Scorer) { s.meter = m }
}

// NewScorer creates a Scorer. Metrics go to the global otel provider
// (no-op if not configured) unless WithMeter is given.
func NewScorer(opts ...Option) (*Scorer, error) {
	s := &Scorer{log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.meter == nil {
		s.meter = meter()
	}

	var err error
	s.scored, err = s.meter.Int64Counter(
		"bv.units.scored",
		metric.WithDescription("Units scored"),
	)
	if err != nil {
		return nil, fmt.Errorf("create scored counter: %w", err)
	}
	s.value, err = s.meter.Int64Histogram(
		"bv.unit.value",
		metric.WithDescription("Final battle value per scored unit"),
	)
	if err != nil {
		return nil, fmt.Errorf("create value histogram: %w", err)
	}
	return s, nil
}

// Score calculates every unit of the session against one snapshot. Results
// keep the snapshot order. Each unit gets its own calculator, so the
// outcome does not depend on the worker count.
func (s *Scorer) Score(ctx context.Context, session *Session) ([]Score, error) {
	units := session.Units()
	game := snapshot(units)
	scores := make([]Score, len(units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := bvcalc.New(u, bvcalc.WithGame(game), bvcalc.WithLogger(s.log)).
				Calculate(s.ignoreForceBonuses, s.ignoreSkill)
			scores[i] = Score{UnitID: u.ID, Name: u.Name, Kind: u.Kind, Result: res}

			kind := metric.WithAttributes(attribute.String("kind", u.Kind.String()))
			s.scored.Add(ctx, 1, kind)
			s.value.Record(ctx, int64(res.BV), kind)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score session: %w", err)
	}

	s.log.Info().Int("units", len(scores)).Int("total", Total(scores)).Msg("session scored")
	return scores, nil
}

// Total sums the final BV of scores.
func Total(scores []Score) int {
	total := 0
	for _, sc := range scores {
		total += sc.Result.BV
	}
	return total
}

// snapshot pins the unit list so every worker sees the same session.
type snapshot []*bvcalc.Unit

func (s snapshot) Units() []*bvcalc.Unit { return s }
