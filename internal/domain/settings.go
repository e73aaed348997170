package domain

// ThemePreference selects the color scheme. ThemeSystem follows the device.
type ThemePreference string

const (
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
	ThemeSystem ThemePreference = "system"
)

func (t ThemePreference) IsValid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// MeasurementSystem selects units for weights and distances.
type MeasurementSystem string

const (
	Metric   MeasurementSystem = "metric"
	Imperial MeasurementSystem = "imperial"
)

func (m MeasurementSystem) IsValid() bool {
	return m == Metric || m == Imperial
}

// Settings holds a user's display preferences.
type Settings struct {
	Theme       ThemePreference   `json:"theme"`
	Measurement MeasurementSystem `json:"measurement"`
}

// DefaultSettings follows the device theme and uses metric units.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeSystem, Measurement: Metric}
}

// IsDark resolves the theme against the device's current scheme.
func (s Settings) IsDark(systemDark bool) bool {
	if s.Theme == ThemeSystem {
		return systemDark
	}
	return s.Theme == ThemeDark
}

func (s Settings) IsMetric() bool {
	return s.Measurement != Imperial
}
