package kobis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// ParseNumber parses a provider numeric string such as "1234" or "-3".
// Thousands separators are tolerated; anything else yields 0.
func ParseNumber(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatNumber renders n with thousands separators
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatAudience renders an audience count the way Korean box office
// charts do: 천만 above ten million, 만 above ten thousand.
func FormatAudience(count string) string {
	n := ParseNumber(count)
	switch {
	case n >= 10_000_000:
		return fmt.Sprintf("%.1f천만", float64(n)/10_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%.0f만", float64(n)/10_000)
	default:
		return FormatNumber(n)
	}
}

// FormatSales renders a sales amount in won
func FormatSales(amount string) string {
	return FormatNumber(ParseNumber(amount)) + "원"
}

// DisplayDate renders YYYYMMDD as YYYY.MM.DD. Shorter input is returned as-is.
func DisplayDate(s string) string {
	if len(s) < 8 {
		return s
	}
	return s[:4] + "." + s[4:6] + "." + s[6:8]
}

// DisplayOpenDate renders the provider's openDt, which may be YYYYMMDD or
// already dashed (YYYY-MM-DD) depending on the endpoint.
func DisplayOpenDate(s string) string {
	return DisplayDate(strings.ReplaceAll(s, "-", ""))
}

// FormatAddedAt renders a bookmark timestamp as YYYY.MM.DD in local time
func FormatAddedAt(t time.Time) string {
	return t.Local().Format("2006.01.02")
}

// FormatRankChange renders a rank delta with an arrow
func FormatRankChange(entry BoxOfficeEntry) string {
	if entry.IsNew() {
		return "NEW"
	}
	switch delta := entry.RankChange(); {
	case delta > 0:
		return fmt.Sprintf("▲%d", delta)
	case delta < 0:
		return fmt.Sprintf("▼%d", -delta)
	default:
		return "-"
	}
}
