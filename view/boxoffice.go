package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/kobis/kobis"
)

// BoxOfficeKind selects which ranking the box office page shows
type BoxOfficeKind string

const (
	// Daily is the single-day ranking
	Daily BoxOfficeKind = "daily"
	// Weekly covers Monday through Sunday
	Weekly BoxOfficeKind = "weekly"
	// Weekend covers Friday through Sunday
	Weekend BoxOfficeKind = "weekend"
	// Weekdays covers Monday through Thursday
	Weekdays BoxOfficeKind = "weekdays"
)

// ParseBoxOfficeKind accepts a kind name, case-insensitively
func ParseBoxOfficeKind(s string) (BoxOfficeKind, error) {
	switch kind := BoxOfficeKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case "":
		return Daily, nil
	case Daily, Weekly, Weekend, Weekdays:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown box office kind %q", s)
	}
}

// Title is the heading shown above the ranking
func (k BoxOfficeKind) Title() string {
	switch k {
	case Weekly:
		return "주간 박스오피스"
	case Weekend:
		return "주말 박스오피스"
	case Weekdays:
		return "주중 박스오피스"
	default:
		return "일별 박스오피스"
	}
}

// Fetch loads the ranking of this kind for date
func (k BoxOfficeKind) Fetch(ctx context.Context, api kobis.BoxOfficeFetcher, date string) (*kobis.BoxOffice, error) {
	switch k {
	case Daily, "":
		return api.DailyBoxOfficeResult(ctx, date)
	case Weekly:
		return api.WeeklyBoxOfficeResult(ctx, date, kobis.Weekly)
	case Weekend:
		return api.WeeklyBoxOfficeResult(ctx, date, kobis.Weekend)
	case Weekdays:
		return api.WeeklyBoxOfficeResult(ctx, date, kobis.Weekdays)
	default:
		return nil, fmt.Errorf("unknown box office kind %q", string(k))
	}
}

// BoxOfficeState is a snapshot of the box office page
type BoxOfficeState struct {
	Kind       BoxOfficeKind
	Date       string
	Result     *kobis.BoxOffice
	Loading    bool
	Err        error
	Generation uint64
}

// Title returns the heading for the current kind
func (s BoxOfficeState) Title() string {
	return s.Kind.Title()
}

type boxOfficePage struct {
	kind   BoxOfficeKind
	date   string
	result *kobis.BoxOffice
}

// BoxOfficeView drives the box office page. Switching kind or date while a
// request is in flight drops the older response.
type BoxOfficeView struct {
	api    kobis.BoxOfficeFetcher
	loader *Loader[boxOfficePage]
	logger zerolog.Logger
}

// NewBoxOfficeView creates a box office page backed by api
func NewBoxOfficeView(api kobis.BoxOfficeFetcher, logger zerolog.Logger) *BoxOfficeView {
	logger = logger.With().Str("view", "boxoffice").Logger()
	return &BoxOfficeView{
		api:    api,
		loader: NewLoader[boxOfficePage](logger),
		logger: logger,
	}
}

// Show starts loading the ranking of kind for date
func (v *BoxOfficeView) Show(ctx context.Context, kind BoxOfficeKind, date string) uint64 {
	if kind == "" {
		kind = Daily
	}
	pending := boxOfficePage{kind: kind, date: date}
	return v.loader.Load(ctx, pending, func(ctx context.Context) (boxOfficePage, error) {
		v.logger.Debug().Str("kind", string(kind)).Str("date", date).Msg("Loading box office")
		result, err := kind.Fetch(ctx, v.api, date)
		if err != nil {
			return pending, err
		}
		return boxOfficePage{kind: kind, date: date, result: result}, nil
	})
}

// OnChange registers fn to receive every committed state
func (v *BoxOfficeView) OnChange(fn func(BoxOfficeState)) {
	v.loader.OnChange(func(s State[boxOfficePage]) {
		fn(toBoxOfficeState(s))
	})
}

// State returns the current snapshot
func (v *BoxOfficeView) State() BoxOfficeState {
	return toBoxOfficeState(v.loader.State())
}

// Wait blocks until every started load has returned
func (v *BoxOfficeView) Wait() {
	v.loader.Wait()
}

// Close abandons any load in flight
func (v *BoxOfficeView) Close() {
	v.loader.Close()
}

func toBoxOfficeState(s State[boxOfficePage]) BoxOfficeState {
	kind := s.Value.kind
	if kind == "" {
		kind = Daily
	}
	return BoxOfficeState{
		Kind:       kind,
		Date:       s.Value.date,
		Result:     s.Value.result,
		Loading:    s.Loading,
		Err:        s.Err,
		Generation: s.Generation,
	}
}
