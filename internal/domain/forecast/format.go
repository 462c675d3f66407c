package forecast

import (
	"fmt"
	"strings"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
	"github.com/yanqian/weather-wizard/pkg/util"
)

const (
	hourlyDays = 3
	dailyDays  = 3
	weekDays   = 7
)

// Plan maps a forecast period to the upstream block and horizon it needs.
func Plan(period dialogue.ForecastPeriod) (Granularity, int) {
	switch {
	case period == dialogue.PeriodCurrent || period == "":
		return GranularityCurrent, 1
	case period.Hourly():
		return GranularityHourly, hourlyDays
	case period == dialogue.PeriodWeek:
		return GranularityDaily, weekDays
	default:
		return GranularityDaily, dailyDays
	}
}

// Format renders the forecast as user-facing text for the requested types.
// It returns an empty string when the forecast lacks data for the period.
func Format(place string, period dialogue.ForecastPeriod, types []dialogue.WeatherType, f Forecast) string {
	gran, _ := Plan(period)
	switch gran {
	case GranularityCurrent:
		if f.Current == nil {
			return ""
		}
		return formatCurrent(place, types, *f.Current)
	case GranularityHourly:
		hours := hoursForDay(f.Hourly, period.DayOffset())
		if len(hours) == 0 {
			return ""
		}
		return formatHourly(place, period, types, hours)
	default:
		days := daysForPeriod(f.Daily, period)
		if len(days) == 0 {
			return ""
		}
		return formatDaily(place, period, types, days)
	}
}

func formatCurrent(place string, types []dialogue.WeatherType, c Current) string {
	parts := make([]string, 0, len(types))
	if dialogue.HasType(types, dialogue.TypeTemperature) {
		parts = append(parts, fmt.Sprintf("The current temperature in %s is %.1f°C and it feels like %.1f°C.", place, c.Temperature, c.ApparentTemperature))
	}
	if dialogue.HasType(types, dialogue.TypeRain) {
		parts = append(parts, fmt.Sprintf("The current rain in %s is %.1f mm with showers of %.1f mm.", place, c.Rain, c.Showers))
	}
	if dialogue.HasType(types, dialogue.TypeSnow) {
		parts = append(parts, fmt.Sprintf("The current snowfall in %s is %.1f cm.", place, c.Snowfall))
	}
	if dialogue.HasType(types, dialogue.TypeWind) {
		parts = append(parts, fmt.Sprintf("The wind in %s is blowing at %.1f m/s from %.0f° with gusts up to %.1f m/s.", place, c.WindSpeed, c.WindDirection, c.WindGusts))
	}
	if dialogue.HasType(types, dialogue.TypePressure) {
		parts = append(parts, fmt.Sprintf("The current surface pressure in %s is %.1f hPa.", place, c.Pressure))
	}
	if dialogue.HasType(types, dialogue.TypeHumidity) {
		parts = append(parts, fmt.Sprintf("The current relative humidity in %s is %.0f%%.", place, c.Humidity))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%s in %s right now. The temperature is %.1f°C, it feels like %.1f°C and the wind is blowing at %.1f m/s.",
			DescribeCode(c.WeatherCode), place, c.Temperature, c.ApparentTemperature, c.WindSpeed))
	}
	return strings.Join(parts, " ")
}

func formatDaily(place string, period dialogue.ForecastPeriod, types []dialogue.WeatherType, days []DailyItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is the forecast for %s %s:", place, periodLabel(period))
	for _, d := range days {
		b.WriteString("\n")
		b.WriteString(d.Date.Format("Mon 02 Jan"))
		b.WriteString(": ")
		b.WriteString(dailyLine(types, d))
	}
	return b.String()
}

func dailyLine(types []dialogue.WeatherType, d DailyItem) string {
	parts := make([]string, 0, len(types))
	if dialogue.HasType(types, dialogue.TypeTemperature) {
		parts = append(parts, fmt.Sprintf("temperature between %.1f°C and %.1f°C, feeling like %.1f°C to %.1f°C.",
			d.TemperatureMin, d.TemperatureMax, d.ApparentTemperatureMin, d.ApparentTemperatureMax))
	}
	if dialogue.HasType(types, dialogue.TypeRain) {
		parts = append(parts, fmt.Sprintf("%.1f mm of rain and %.1f mm of showers.", d.RainSum, d.ShowersSum))
	}
	if dialogue.HasType(types, dialogue.TypeSnow) {
		parts = append(parts, fmt.Sprintf("%.1f cm of snowfall.", d.SnowfallSum))
	}
	if dialogue.HasType(types, dialogue.TypeWind) {
		parts = append(parts, fmt.Sprintf("wind up to %.1f m/s with gusts of %.1f m/s, mostly from %.0f°.", d.WindSpeedMax, d.WindGustsMax, d.WindDirectionDominant))
	}
	if dialogue.HasType(types, dialogue.TypePressure) {
		parts = append(parts, "daily pressure is not available yet.")
	}
	if dialogue.HasType(types, dialogue.TypeHumidity) {
		parts = append(parts, "daily humidity is not available yet.")
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%s, between %.1f°C and %.1f°C.", DescribeCode(d.WeatherCode), d.TemperatureMin, d.TemperatureMax))
	}
	return strings.Join(parts, " ")
}

func formatHourly(place string, period dialogue.ForecastPeriod, types []dialogue.WeatherType, hours []HourlyItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is the hourly forecast for %s %s:", place, periodLabel(period))
	for _, h := range hours {
		b.WriteString("\n")
		b.WriteString(h.Time.Format("15:04"))
		b.WriteString(": ")
		b.WriteString(hourlyLine(types, h))
	}
	return b.String()
}

func hourlyLine(types []dialogue.WeatherType, h HourlyItem) string {
	parts := make([]string, 0, len(types))
	if dialogue.HasType(types, dialogue.TypeTemperature) {
		parts = append(parts, fmt.Sprintf("%.1f°C, feels like %.1f°C", h.Temperature, h.ApparentTemperature))
	}
	if dialogue.HasType(types, dialogue.TypeRain) {
		parts = append(parts, fmt.Sprintf("rain %.1f mm, showers %.1f mm", h.Rain, h.Showers))
	}
	if dialogue.HasType(types, dialogue.TypeSnow) {
		parts = append(parts, fmt.Sprintf("snowfall %.1f cm", h.Snowfall))
	}
	if dialogue.HasType(types, dialogue.TypeWind) {
		parts = append(parts, fmt.Sprintf("wind %.1f m/s from %.0f°, gusts %.1f m/s", h.WindSpeed, h.WindDirection, h.WindGusts))
	}
	if dialogue.HasType(types, dialogue.TypePressure) {
		parts = append(parts, fmt.Sprintf("pressure %.1f hPa", h.Pressure))
	}
	if dialogue.HasType(types, dialogue.TypeHumidity) {
		parts = append(parts, fmt.Sprintf("humidity %.0f%%", h.Humidity))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%s, %.1f°C", DescribeCode(h.WeatherCode), h.Temperature))
	}
	return strings.Join(parts, "; ")
}

func periodLabel(period dialogue.ForecastPeriod) string {
	switch period.DayOffset() {
	case 1:
		return "tomorrow"
	case 2:
		return "the day after tomorrow"
	}
	if period == dialogue.PeriodWeek {
		return "the coming week"
	}
	return "today"
}

func daysForPeriod(days []DailyItem, period dialogue.ForecastPeriod) []DailyItem {
	if period == dialogue.PeriodWeek {
		return days
	}
	offset := period.DayOffset()
	if offset >= len(days) {
		return nil
	}
	return days[offset : offset+1]
}

// hoursForDay keeps the entries falling on the calendar day offset days after the first entry.
func hoursForDay(hours []HourlyItem, offset int) []HourlyItem {
	if len(hours) == 0 {
		return nil
	}
	target := util.StartOfDay(hours[0].Time).AddDate(0, 0, offset)
	out := make([]HourlyItem, 0, 24)
	for _, h := range hours {
		if util.SameDay(target, h.Time) {
			out = append(out, h)
		}
	}
	return out
}
