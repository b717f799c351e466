package portfolio

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/agbru/ecodash/internal/errors"
)

// fileBoard mirrors the YAML layout of a targets file.
type fileBoard struct {
	Title       string       `koanf:"title"`
	Currency    string       `koanf:"currency"`
	DurationMs  int64        `koanf:"duration_ms"`
	ValueChange float64      `koanf:"value_change_pct"`
	Targets     []fileTarget `koanf:"targets"`
}

type fileTarget struct {
	ID         string  `koanf:"id"`
	Label      string  `koanf:"label"`
	Kind       string  `koanf:"kind"`
	Group      string  `koanf:"group"`
	Start      float64 `koanf:"start"`
	End        float64 `koanf:"end"`
	DurationMs *int64  `koanf:"duration_ms"`
}

// Load reads a targets file and returns the resulting board.
//
// Top-level keys absent from the file keep the values of Default(). When the
// file lists targets they replace the default metrics; a target without its
// own duration_ms uses the top-level one. An empty path returns Default()
// unchanged.
func Load(path string) (Board, error) {
	def := Default()
	if path == "" {
		return def, nil
	}
	if _, err := os.Stat(path); err != nil {
		return Board{}, apperrors.NewConfigError("targets file: %v", err)
	}

	k := koanf.New(".")
	defaults := map[string]any{
		"title":            def.Title,
		"currency":         def.Currency,
		"duration_ms":      animationDefaultMs(def),
		"value_change_pct": def.ValueChange,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Board{}, apperrors.WrapError(err, "load target defaults")
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Board{}, apperrors.NewConfigError("targets file %s: %v", path, err)
	}

	var fb fileBoard
	if err := k.Unmarshal("", &fb); err != nil {
		return Board{}, apperrors.NewConfigError("targets file %s: %v", path, err)
	}

	board := fb.toBoard(def)
	if err := board.Validate(); err != nil {
		return Board{}, apperrors.WrapError(err, "targets file %s", path)
	}
	return board, nil
}

func animationDefaultMs(b Board) int64 {
	if len(b.Metrics) == 0 {
		return 0
	}
	return b.Metrics[0].Duration.Milliseconds()
}

func (fb fileBoard) toBoard(def Board) Board {
	board := Board{
		Title:       fb.Title,
		Currency:    strings.ToUpper(fb.Currency),
		ValueChange: fb.ValueChange,
	}
	boardDuration := time.Duration(fb.DurationMs) * time.Millisecond

	if len(fb.Targets) == 0 {
		board.Metrics = def.WithDuration(boardDuration).Metrics
		return board
	}

	board.Metrics = make([]Metric, len(fb.Targets))
	for i, t := range fb.Targets {
		m := Metric{
			ID:       t.ID,
			Label:    t.Label,
			Kind:     Kind(strings.ToLower(t.Kind)),
			Group:    t.Group,
			Start:    t.Start,
			End:      t.End,
			Duration: boardDuration,
		}
		if t.DurationMs != nil {
			m.Duration = time.Duration(*t.DurationMs) * time.Millisecond
		}
		if m.Label == "" {
			m.Label = m.ID
		}
		if m.Kind == "" {
			m.Kind = KindCount
		}
		if m.Group == "" {
			m.Group = defaultGroup(m.Kind)
		}
		board.Metrics[i] = m
	}
	return board
}

func defaultGroup(k Kind) string {
	switch k {
	case KindCurrency:
		return GroupValue
	case KindAllocation:
		return GroupSectors
	default:
		return GroupScores
	}
}
