package domain

import "fmt"

const (
	// MaxForecastPeriods bounds how many periods a forecast response renders.
	MaxForecastPeriods = 5

	// BlockSeparator joins formatted forecast and alert blocks.
	BlockSeparator = "\n---\n"

	// NoActiveAlertsMessage is the terminal success message for zero alerts.
	NoActiveAlertsMessage = "No active alerts for this state."

	// NoInstructionsMessage substitutes for an absent alert instruction.
	NoInstructionsMessage = "No specific instructions provided"
)

// FormatPeriod renders one forecast period as a fixed multi-line block.
func FormatPeriod(p ForecastPeriod) string {
	return fmt.Sprintf("%s:\nTemperature: %d°%s\nWind: %s %s\nForecast: %s",
		p.Name, p.Temperature, p.TemperatureUnit, p.WindSpeed, p.WindDirection, p.DetailedForecast)
}

// FormatAlert renders one alert as a fixed multi-line block, substituting
// placeholders for absent fields.
func FormatAlert(a AlertRecord) string {
	return fmt.Sprintf("Event: %s\nArea: %s\nSeverity: %s\nDescription: %s\nInstructions: %s",
		orDefault(a.Event, "Unknown"),
		orDefault(a.AreaDesc, "Unknown"),
		orDefault(a.Severity, "Unknown"),
		orDefault(a.Description, "No description available"),
		orDefault(a.Instruction, NoInstructionsMessage))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
