package validate

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Text field length limits, shared by the admin forms and the JSON API.
const (
	MaxTitleLength         = 255
	MaxDescriptionLength   = 5000
	MaxHashtagsLength      = 500
	MaxStreamtapeURLLength = 500
	MaxPasswordLength      = 72
)

func checkLen(value string, max int, field string) string {
	if utf8.RuneCountInString(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

// Title requires a non-empty value of at most MaxTitleLength characters.
func Title(s string) string {
	if strings.TrimSpace(s) == "" {
		return "title is required"
	}
	return checkLen(s, MaxTitleLength, "title")
}

func Description(s string) string { return checkLen(s, MaxDescriptionLength, "description") }
func Hashtags(s string) string    { return checkLen(s, MaxHashtagsLength, "hashtags") }

// StreamtapeURL requires a well-formed absolute http or https URL.
func StreamtapeURL(s string) string {
	if strings.TrimSpace(s) == "" {
		return "streamtape URL is required"
	}
	if msg := checkLen(s, MaxStreamtapeURLLength, "streamtape URL"); msg != "" {
		return msg
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "streamtape URL must be a valid http or https URL"
	}
	return ""
}

// Password is limited in bytes, matching what bcrypt accepts.
func Password(s string) string {
	if len(s) > MaxPasswordLength {
		return fmt.Sprintf("password must be %d bytes or fewer", MaxPasswordLength)
	}
	return ""
}

// FieldLimits returns field names to max lengths for the /api/limits endpoint.
func FieldLimits() map[string]int {
	return map[string]int{
		"title":          MaxTitleLength,
		"description":    MaxDescriptionLength,
		"hashtags":       MaxHashtagsLength,
		"streamtape_url": MaxStreamtapeURLLength,
		"password":       MaxPasswordLength,
	}
}
