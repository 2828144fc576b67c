package extract

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveJSON writes the extraction result as indented JSON, next to the audio
// artifact, so a run leaves an inspectable record of what was read aloud.
func SaveJSON(path string, res *Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode extraction result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write extraction report: %w", err)
	}
	return nil
}
