package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-dashboard/internal/domain"
)

// Transformer turns a raw sheet into a Dashboard.
// It holds no mutable state, so one instance can serve concurrent refreshes.
type Transformer struct {
	Config domain.SheetConfig
}

// NewTransformer creates a new Transformer instance
func NewTransformer(cfg domain.SheetConfig) (*Transformer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheet config: %w", err)
	}
	return &Transformer{Config: cfg}, nil
}

// Transform runs the whole pipeline: locate header, clean, pair holdings, select the
// latest row and derive summaries, buckets, accounts, growth and goal progress.
// Structural problems (missing header, unpaired principal column) are returned as errors.
// An empty cleaned table is not an error: the Dashboard comes back without a Snapshot.
func (t *Transformer) Transform(raw *domain.RawTable) (*domain.Dashboard, error) {
	cfg := t.Config

	headerRow, err := LocateHeader(raw, cfg.DateMarker)
	if err != nil {
		return nil, err
	}

	table, err := Clean(raw, headerRow, cfg)
	if err != nil {
		return nil, err
	}

	pairs, err := PairHoldings(table, cfg)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.Dashboard{
		Table:   table,
		History: HoldingHistory(table, pairs),
		Growth:  GrowthSeries(table, cfg.TotalColumn),
		Goal:    Progress(decimal.Zero, cfg.Target),
	}

	if table.IsEmpty() {
		return dashboard, nil
	}

	snapshot, err := SelectLatest(table, cfg.Latest)
	if err != nil {
		return nil, err
	}

	total, _ := snapshot.Get(cfg.TotalColumn)

	dashboard.Snapshot = snapshot
	dashboard.Holdings = SummarizeHoldings(snapshot, pairs)
	dashboard.Buckets = AggregateBuckets(snapshot, cfg.Buckets)
	dashboard.Accounts = AccountBalances(snapshot, cfg.AccountColumns)
	dashboard.Goal = Progress(total, cfg.Target)

	return dashboard, nil
}
