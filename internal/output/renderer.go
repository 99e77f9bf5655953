package output

import (
	"fmt"
	"io"
)

// Renderer defines the interface for output renderers
type Renderer interface {
	RenderDiscovery(w io.Writer, result *DiscoveryResult) error
	RenderPlan(w io.Writer, result *PlanResult) error
	RenderTrust(w io.Writer, result *TrustResult) error
	RenderCheckout(w io.Writer, result *CheckoutResult) error
}

// Format represents an output format
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatCompact Format = "compact"
)

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCompact:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be 'text', 'json' or 'compact')", s)
	}
}

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format, colorEnabled bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}
	case FormatCompact:
		return &CompactRenderer{}
	default:
		return &TextRenderer{ColorEnabled: colorEnabled}
	}
}
