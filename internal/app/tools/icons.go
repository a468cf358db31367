package tools

import (
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	iconWavingHand     = "\U0001F44B"
	iconSunBehindCloud = "⛅"
	iconRobot          = "\U0001F916"
	iconHourglass      = "⏳"
	iconPackage        = "\U0001F4E6"
	iconAbacus         = "\U0001F9EE"
)

// emojiIcon renders an emoji as a scalable SVG data URI.
func emojiIcon(emoji string) []mcp.Icon {
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">%s</text></svg>`, emoji)
	return []mcp.Icon{{
		Source:   "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg)),
		MIMEType: "image/svg+xml",
		Sizes:    []string{"any"},
	}}
}
