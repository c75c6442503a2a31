// Package redact strips sensitive information from strings before they are
// logged. Storage and auth errors can carry connection URLs, credentials,
// tokens or addresses; everything that reaches a log line passes through
// here first.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

// Precompiled patterns, checked in order.
var (
	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password-ish key/value fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Secrets and API keys
	secretRegex = regexp.MustCompile(`(?i)(secret|api[_-]?key|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Compact JWT tokens (three base64url segments)
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// SQL statement fragments leaked from driver errors
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()$]+(?:FROM|INTO|SET)[\s\w,*()='"$]*`,
	)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, RedactedCredentialPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{jwtTokenRegex, RedactedTokenPlaceholder},
		{secretRegex, RedactedTokenPlaceholder},
		{emailRegex, RedactedEmailPlaceholder},
		{sqlRegex, RedactedSQLPlaceholder},
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
