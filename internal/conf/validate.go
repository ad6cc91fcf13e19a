package conf

import (
	"fmt"
	"strings"
)

// ValidateSettings checks settings for values that would break later
// operations and collects every problem into one error.
func ValidateSettings(s *Settings) error {
	var problems []string

	if s.ExifTool.BatchSize <= 0 {
		problems = append(problems, fmt.Sprintf("exiftool.batchsize must be positive, got %d", s.ExifTool.BatchSize))
	}
	if s.Log.Enabled && s.Log.Path == "" {
		problems = append(problems, "log.path must be set when logging is enabled")
	}
	switch strings.ToLower(s.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log.level %q", s.Log.Level))
	}
	if s.Data.Dir == "" {
		problems = append(problems, "data.dir must be set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
