package dialogue

import (
	"regexp"
	"strings"
)

var (
	currentPhrases          = []string{"at the moment", "current", "currrently", "now", "right now"}
	hourPhrases             = []string{"hourly", "hour", "detailed", "detail"}
	dayAfterTomorrowPhrases = []string{"day after tomorrow", "two days from now", "the day following tomorrow", "in two days"}
	weekPhrases             = []string{"this week", "next few days", "next couple of days"}
)

// periodRule resolves to a period when its predicate matches the lower-cased utterance.
type periodRule struct {
	name    string
	matches func(text string) bool
	resolve func(text string) ForecastPeriod
}

// periodRules is evaluated top to bottom; the first match wins.
var periodRules = []periodRule{
	{
		name:    "current",
		matches: containsAny(currentPhrases),
		resolve: fixed(PeriodCurrent),
	},
	{
		name:    "today",
		matches: containsAny([]string{"today"}),
		resolve: hourlyOr(PeriodTodayHourly, PeriodToday),
	},
	{
		name:    "tomorrow",
		matches: containsAny([]string{"tomorrow"}),
		resolve: hourlyOr(PeriodTomorrowHourly, PeriodTomorrow),
	},
	{
		name:    "day_after_tomorrow",
		matches: containsAny(dayAfterTomorrowPhrases),
		resolve: hourlyOr(PeriodDayAfterTomorrowHourly, PeriodDayAfterTomorrow),
	},
	{
		name:    "week",
		matches: containsAny(weekPhrases),
		resolve: fixed(PeriodWeek),
	},
}

// ClassifyPeriod maps raw utterance text to exactly one forecast period.
func ClassifyPeriod(utterance string) ForecastPeriod {
	text := strings.ToLower(utterance)
	for _, rule := range periodRules {
		if rule.matches(text) {
			return rule.resolve(text)
		}
	}
	return PeriodCurrent
}

func fixed(p ForecastPeriod) func(string) ForecastPeriod {
	return func(string) ForecastPeriod { return p }
}

func hourlyOr(hourly, daily ForecastPeriod) func(string) ForecastPeriod {
	hasHour := containsAny(hourPhrases)
	return func(text string) ForecastPeriod {
		if hasHour(text) {
			return hourly
		}
		return daily
	}
}

// containsAny matches a phrase starting at a word boundary, so "now" does
// not fire inside "snow" or "know" while "hour" still matches "hours".
func containsAny(phrases []string) func(string) bool {
	patterns := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(phrase)))
	}
	return func(text string) bool {
		for _, p := range patterns {
			if p.MatchString(text) {
				return true
			}
		}
		return false
	}
}
