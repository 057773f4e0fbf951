// Package validation provides user-input validation for the prescriptions
// API: drug-list parsing, drug-name checks and age parsing.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all validations
var (
	// Drug names: letters, digits, spaces, hyphens (co-amoxiclav style names)
	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.']+$`)

	// listSeparators splits a free-text drug list on commas, semicolons and
	// newlines in one pass.
	listSeparators = regexp.MustCompile(`[,;\n]`)

	// Dangerous patterns as strings (faster than regex for simple substring
	// matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "eval(", "expression(", "url(", "@import",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from",
		"insert into", "--", "/*", "*/", "exec(", "execute(",
		// Command injection patterns
		"`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// Limits on user-supplied values.
const (
	MaxNameLength  = 50
	MaxListEntries = 30
	MinAge         = 0
	MaxAge         = 120
)

// ValidateName checks one user-supplied drug or condition name. Unknown
// names are not an error here; they surface as unrecognized entries later.
func ValidateName(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(input) > MaxNameLength {
		return fmt.Errorf("name too long: maximum %d characters", MaxNameLength)
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("name contains potentially dangerous content")
		}
	}

	if !nameRegex.MatchString(input) {
		return fmt.Errorf("name contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes and periods are allowed")
	}

	return nil
}

// ParseDrugList splits a free-text drug list on commas, semicolons and
// newlines, trims and lowercases each entry, drops empties and duplicates,
// and validates every surviving name. Order of first appearance is kept.
func ParseDrugList(input string) ([]string, error) {
	parts := listSeparators.Split(input, -1)

	var names []string
	seen := make(map[string]bool)

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || seen[name] {
			continue
		}
		if err := ValidateName(name); err != nil {
			return nil, fmt.Errorf("invalid entry %q: %w", name, err)
		}
		seen[name] = true
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("drug list cannot be empty")
	}
	if len(names) > MaxListEntries {
		return nil, fmt.Errorf("drug list too long: maximum %d entries", MaxListEntries)
	}

	return names, nil
}

// ParseConditionList parses a condition list the same way as a drug list
// but tolerates an empty result: no conditions means nothing to check.
func ParseConditionList(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	names, err := ParseDrugList(input)
	if err != nil && strings.Contains(err.Error(), "cannot be empty") {
		return nil, nil
	}
	return names, err
}

// ParseAge validates and converts a patient age string.
// strconv.Atoi() validates numeric format for free, no regex needed.
func ParseAge(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return -1, fmt.Errorf("age cannot be empty")
	}

	age, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("age must be a whole number")
	}

	if age < MinAge || age > MaxAge {
		return -1, fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}

	return age, nil
}
