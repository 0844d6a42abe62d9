package templates

import (
	"maps"
	"time"
)

// now is replaced in tests.
var now = time.Now

// withBuiltinTemplateData adds Date and DateTime unless data already
// defines them.
func withBuiltinTemplateData(data map[string]any) map[string]any {
	_, hasDate := data["Date"]
	_, hasDateTime := data["DateTime"]
	if hasDate && hasDateTime {
		return data
	}

	out := make(map[string]any, len(data)+2)
	maps.Copy(out, data)

	t := now().UTC()
	if !hasDate {
		out["Date"] = t.Format("2006-01-02")
	}
	if !hasDateTime {
		out["DateTime"] = t.Format(time.RFC3339)
	}
	return out
}
