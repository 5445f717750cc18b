package cli

import (
	"fmt"
	"strings"
)

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateJobID rejects ids that cannot name a record
func ValidateJobID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("job id cannot be empty")
	}
	return nil
}

// ValidateApplications checks a --applications flag value before it is
// coerced, so an obvious typo is reported instead of silently becoming 0
func ValidateApplications(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid applications count: %s (must be a non-negative whole number)", raw)
		}
	}
	return nil
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
