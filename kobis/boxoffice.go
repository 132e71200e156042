package kobis

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
)

const (
	dailyBoxOfficePath  = "boxoffice/searchDailyBoxOfficeList.json"
	weeklyBoxOfficePath = "boxoffice/searchWeeklyBoxOfficeList.json"
)

// DailyBoxOffice retrieves the daily ranking for date (YYYYMMDD). A day the
// provider has no data for yields an empty slice, not an error.
func (c *Client) DailyBoxOffice(ctx context.Context, date string) ([]BoxOfficeEntry, error) {
	result, err := c.DailyBoxOfficeResult(ctx, date)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// DailyBoxOfficeResult is DailyBoxOffice with the envelope metadata
func (c *Client) DailyBoxOfficeResult(ctx context.Context, date string) (*BoxOffice, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("targetDt", date)

	var envelope boxOfficeEnvelope
	if err := c.Get(ctx, dailyBoxOfficePath, params, &envelope); err != nil {
		return nil, fmt.Errorf("failed to get daily box office: %w", err)
	}

	result := newBoxOffice(envelope, envelope.BoxOfficeResult.DailyBoxOfficeList)

	c.logger.Debug().
		Str("date", date).
		Int("count", len(result.Entries)).
		Msg("Retrieved daily box office from KOBIS")

	return result, nil
}

// WeeklyBoxOffice retrieves the ranking for the week containing date,
// restricted to the given part of the week.
func (c *Client) WeeklyBoxOffice(ctx context.Context, date string, group WeekGroup) ([]BoxOfficeEntry, error) {
	result, err := c.WeeklyBoxOfficeResult(ctx, date, group)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// WeeklyBoxOfficeResult is WeeklyBoxOffice with the envelope metadata
func (c *Client) WeeklyBoxOfficeResult(ctx context.Context, date string, group WeekGroup) (*BoxOffice, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	code, err := group.Code()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("targetDt", date)
	params.Set("weekGb", code)

	var envelope boxOfficeEnvelope
	if err := c.Get(ctx, weeklyBoxOfficePath, params, &envelope); err != nil {
		return nil, fmt.Errorf("failed to get %s box office: %w", group, err)
	}

	result := newBoxOffice(envelope, envelope.BoxOfficeResult.WeeklyBoxOfficeList)

	c.logger.Debug().
		Str("date", date).
		Stringer("group", group).
		Int("count", len(result.Entries)).
		Msg("Retrieved weekly box office from KOBIS")

	return result, nil
}

func newBoxOffice(envelope boxOfficeEnvelope, entries []BoxOfficeEntry) *BoxOffice {
	return &BoxOffice{
		Type:         envelope.BoxOfficeResult.BoxofficeType,
		ShowRange:    envelope.BoxOfficeResult.ShowRange,
		YearWeekTime: envelope.BoxOfficeResult.YearWeekTime,
		Entries:      sortByRank(entries),
	}
}

// sortByRank returns a non-nil copy of entries ordered by ascending rank
func sortByRank(entries []BoxOfficeEntry) []BoxOfficeEntry {
	sorted := make([]BoxOfficeEntry, len(entries))
	copy(sorted, entries)
	slices.SortStableFunc(sorted, func(a, b BoxOfficeEntry) int {
		return cmp.Compare(a.RankNumber(), b.RankNumber())
	})
	return sorted
}
