package booking

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/maps"

	"cinetix-cli/model"
)

const showDateLayout = time.DateOnly

// ShowDates lists the movie's show dates. When the API omits the date list,
// the keys of the times map are used, sorted.
func ShowDates(movie model.Movie) []string {
	if len(movie.Showtimes.Dates) > 0 {
		return append([]string(nil), movie.Showtimes.Dates...)
	}
	dates := maps.Keys(movie.Showtimes.Times)
	sort.Strings(dates)
	return dates
}

// ShowTimes lists the times for one date, or nil.
func ShowTimes(movie model.Movie, date string) []string {
	times := movie.Showtimes.Times[date]
	if len(times) == 0 {
		return nil
	}
	return append([]string(nil), times...)
}

// FormatShowDate turns "2024-12-05" into "December 05". Unparseable dates
// are returned as given.
func FormatShowDate(date string) string {
	parsed, err := time.Parse(showDateLayout, strings.TrimSpace(date))
	if err != nil {
		return date
	}
	return parsed.Format("January 02")
}
