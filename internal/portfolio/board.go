package portfolio

import (
	"time"

	"github.com/agbru/ecodash/internal/animation"
	apperrors "github.com/agbru/ecodash/internal/errors"
	"github.com/agbru/ecodash/internal/format"
)

// Kind selects how a metric value is rendered.
type Kind string

const (
	// KindScore is a 0-100 score shown with a percent sign.
	KindScore Kind = "score"
	// KindCurrency is a monetary amount in the board currency.
	KindCurrency Kind = "currency"
	// KindAllocation is a share of the portfolio, shown as a bar.
	KindAllocation Kind = "allocation"
	// KindCount is a plain number.
	KindCount Kind = "count"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindScore, KindCurrency, KindAllocation, KindCount:
		return true
	}
	return false
}

// Metric groups used by the renderers to lay out panels.
const (
	GroupScores  = "scores"
	GroupValue   = "value"
	GroupSectors = "sectors"
)

// Metric is one animated figure and its display metadata.
type Metric struct {
	ID       string
	Label    string
	Kind     Kind
	Group    string
	Start    float64
	End      float64
	Duration time.Duration
}

// Target returns the animation target for the metric.
func (m Metric) Target() animation.Target {
	return animation.Target{ID: m.ID, Start: m.Start, End: m.End, Duration: m.Duration}
}

// Board is a complete dashboard definition.
type Board struct {
	Title string
	// Currency is an ISO 4217 code used for KindCurrency metrics.
	Currency string
	// ValueChange is the portfolio change in percent; negative is a loss.
	ValueChange float64
	Metrics     []Metric
}

// Default returns the built-in sustainable portfolio board.
func Default() Board {
	d := animation.DefaultDuration
	return Board{
		Title:       "Sustainable Portfolio",
		Currency:    "USD",
		ValueChange: -8.5,
		Metrics: []Metric{
			{ID: "esg", Label: "ESG Score", Kind: KindScore, Group: GroupScores, End: 84, Duration: d},
			{ID: "diversity", Label: "Diversity Score", Kind: KindScore, Group: GroupScores, End: 78, Duration: d},
			{ID: "overall", Label: "Overall Score", Kind: KindScore, Group: GroupScores, End: 81, Duration: d},
			{ID: "portfolioValue", Label: "Portfolio Value", Kind: KindCurrency, Group: GroupValue, End: 157500, Duration: d},
			{ID: "sectorRenewable", Label: "Renewable Energy", Kind: KindAllocation, Group: GroupSectors, End: 35, Duration: d},
			{ID: "sectorTech", Label: "Sustainable Tech", Kind: KindAllocation, Group: GroupSectors, End: 25, Duration: d},
			{ID: "sectorTransport", Label: "Clean Transportation", Kind: KindAllocation, Group: GroupSectors, End: 20, Duration: d},
			{ID: "sectorWaste", Label: "Waste Management", Kind: KindAllocation, Group: GroupSectors, End: 15, Duration: d},
			{ID: "sectorBuildings", Label: "Green Buildings", Kind: KindAllocation, Group: GroupSectors, End: 5, Duration: d},
		},
	}
}

// Targets returns one animation target per metric, in board order.
func (b Board) Targets() []animation.Target {
	out := make([]animation.Target, len(b.Metrics))
	for i, m := range b.Metrics {
		out[i] = m.Target()
	}
	return out
}

// Metric looks up a metric by id.
func (b Board) Metric(id string) (Metric, bool) {
	for _, m := range b.Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// Group returns the metrics of one group, in board order.
func (b Board) Group(name string) []Metric {
	var out []Metric
	for _, m := range b.Metrics {
		if m.Group == name {
			out = append(out, m)
		}
	}
	return out
}

// Display renders v the way the dashboard tiles show metric m.
func (b Board) Display(m Metric, v float64) string {
	switch m.Kind {
	case KindScore, KindAllocation:
		return format.FormatPercent(v)
	case KindCurrency:
		return format.FormatCompactCurrency(v, b.Currency)
	default:
		return format.FormatCount(v)
	}
}

// DisplayExact is Display with full currency precision, used in tables.
func (b Board) DisplayExact(m Metric, v float64) string {
	if m.Kind == KindCurrency {
		return format.FormatCurrency(v, b.Currency)
	}
	return b.Display(m, v)
}

// Profit reports whether the portfolio change is non-negative.
func (b Board) Profit() bool { return b.ValueChange >= 0 }

// WithDuration returns a copy of b in which every metric uses d.
func (b Board) WithDuration(d time.Duration) Board {
	out := b
	out.Metrics = make([]Metric, len(b.Metrics))
	for i, m := range b.Metrics {
		m.Duration = d
		out.Metrics[i] = m
	}
	return out
}

// Validate checks every metric. Target-level problems are reported as
// validation errors naming the metric.
func (b Board) Validate() error {
	if len(b.Metrics) == 0 {
		return apperrors.NewConfigError("board %q has no metrics", b.Title)
	}
	seen := make(map[string]struct{}, len(b.Metrics))
	for i, m := range b.Metrics {
		if err := m.Target().Validate(); err != nil {
			return apperrors.WrapError(err, "metric %d (%q)", i, m.ID)
		}
		if !m.Kind.Valid() {
			return apperrors.WrapError(apperrors.ValidationError{Field: "kind", Message: "unknown kind " + string(m.Kind)}, "metric %d (%q)", i, m.ID)
		}
		if _, dup := seen[m.ID]; dup {
			return apperrors.NewConfigError("metric %d: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}
