package output

import (
	"encoding/json"
	"io"
)

// JSONRenderer renders output in JSON format
type JSONRenderer struct{}

// jsonOutput wraps every result with the output schema version
type jsonOutput struct {
	Version string `json:"version"`
	Result  any    `json:"result"`
}

func (r *JSONRenderer) encode(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonOutput{Version: "1.0", Result: result})
}

// RenderDiscovery writes the discovered heads in JSON format
func (r *JSONRenderer) RenderDiscovery(w io.Writer, result *DiscoveryResult) error {
	if result.Entries == nil {
		result.Entries = []Entry{}
	}
	return r.encode(w, result)
}

// RenderPlan writes a checkout plan in JSON format
func (r *JSONRenderer) RenderPlan(w io.Writer, result *PlanResult) error {
	return r.encode(w, result)
}

// RenderTrust writes a trust decision in JSON format
func (r *JSONRenderer) RenderTrust(w io.Writer, result *TrustResult) error {
	return r.encode(w, result)
}

// RenderCheckout writes a checkout result in JSON format
func (r *JSONRenderer) RenderCheckout(w io.Writer, result *CheckoutResult) error {
	return r.encode(w, result)
}
