package models

import "time"

// Mood scale bounds. Moods are recorded on a 1-5 scale.
const (
	MoodMin = 1
	MoodMax = 5
)

// Temperature bounds in degrees Celsius accepted by the journal.
const (
	TemperatureMin = -60.0
	TemperatureMax = 60.0
)

// Weather conditions.
const (
	WeatherClear  = "clear"
	WeatherCloudy = "cloudy"
	WeatherRain   = "rain"
	WeatherSnow   = "snow"
	WeatherStorm  = "storm"
	WeatherFog    = "fog"
)

// WeatherConditions lists the known weather conditions.
var WeatherConditions = []string{WeatherClear, WeatherCloudy, WeatherRain, WeatherSnow, WeatherStorm, WeatherFog}

// IsValidWeather reports whether condition is a known weather condition.
func IsValidWeather(condition string) bool {
	for _, c := range WeatherConditions {
		if c == condition {
			return true
		}
	}
	return false
}

// MoodEntry is one journal entry: how the user felt and what the weather
// was like. Temperature is optional.
type MoodEntry struct {
	Meta
	Mood        int      `json:"mood"`
	Weather     string   `json:"weather,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Note        string   `json:"note,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (e MoodEntry) WithIdentity(id string, now time.Time) MoodEntry {
	e.Meta = e.Meta.identified(id, now)
	return e
}

func (e MoodEntry) WithTimestamps(created, modified time.Time) MoodEntry {
	e.Meta = e.Meta.stamped(created, modified)
	return e
}

// MoodName returns the display name for the entry's mood value.
func (e MoodEntry) MoodName() string {
	switch e.Mood {
	case 1:
		return "awful"
	case 2:
		return "bad"
	case 3:
		return "okay"
	case 4:
		return "good"
	case 5:
		return "great"
	default:
		return "unknown"
	}
}

// TemperatureValue returns the temperature and whether one is set.
func (e MoodEntry) TemperatureValue() (float64, bool) {
	if e.Temperature == nil {
		return 0, false
	}
	return *e.Temperature, true
}
