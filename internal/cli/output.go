// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"os"
)

// PrintJSON writes v as JSON to stdout. If stdout is a terminal the output
// is indented for readability; otherwise it is compact for piping.
func PrintJSON(v any) error {
	fi, _ := os.Stdout.Stat()
	isTerm := (fi.Mode() & os.ModeCharDevice) != 0

	encoder := json.NewEncoder(os.Stdout)
	if isTerm {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
