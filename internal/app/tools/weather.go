package tools

import (
	"context"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var weatherConditions = []string{"sunny", "cloudy", "rainy", "windy"}

type WeatherInput struct {
	Location string `json:"location" jsonschema:"City name or coordinates"`
}

type WeatherReport struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Unit        string `json:"unit"`
	Conditions  string `json:"conditions"`
	Humidity    int    `json:"humidity"`
}

func weatherTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_weather",
		Title:       "Get Weather",
		Description: "Get current weather for a location (simulated).",
		Annotations: simulatedExternalAnnotations("Get Weather"),
		Icons:       emojiIcon(iconSunBehindCloud),
	}
}

func (t *Toolset) getWeather(_ context.Context, _ *mcp.CallToolRequest, in WeatherInput) (*mcp.CallToolResult, WeatherReport, error) {
	return nil, t.simulateWeather(in.Location), nil
}

// simulateWeather draws temperature in [15, 35] and humidity in [40, 80].
func (t *Toolset) simulateWeather(location string) WeatherReport {
	idx := int(t.random() * float64(len(weatherConditions)))
	idx = min(max(idx, 0), len(weatherConditions)-1)
	return WeatherReport{
		Location:    location,
		Temperature: int(math.Round(15 + t.random()*20)),
		Unit:        "celsius",
		Conditions:  weatherConditions[idx],
		Humidity:    int(math.Round(40 + t.random()*40)),
	}
}
