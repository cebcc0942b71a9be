package validate

import (
	"strings"
	"testing"
)

func TestTitle_Required(t *testing.T) {
	if msg := Title(""); msg == "" {
		t.Error("expected error for empty title")
	}
	if msg := Title("   "); msg == "" {
		t.Error("expected error for whitespace-only title")
	}
}

func TestTitle_AtLimit(t *testing.T) {
	if msg := Title(strings.Repeat("a", MaxTitleLength)); msg != "" {
		t.Errorf("expected no error at limit, got %q", msg)
	}
}

func TestTitle_OverLimit(t *testing.T) {
	msg := Title(strings.Repeat("a", MaxTitleLength+1))
	if msg == "" {
		t.Error("expected error for over-limit title")
	}
	if !strings.Contains(msg, "255") {
		t.Errorf("expected message to mention the limit, got %q", msg)
	}
}

func TestTitle_CountsRunesNotBytes(t *testing.T) {
	// 255 three-byte runes exceed 255 bytes but not 255 characters.
	if msg := Title(strings.Repeat("日", MaxTitleLength)); msg != "" {
		t.Errorf("expected multi-byte title at limit to pass, got %q", msg)
	}
}

func TestStreamtapeURL_Valid(t *testing.T) {
	valid := []string{
		"https://streamtape.com/e/abc123xyz/",
		"https://streamtape.com/v/abc123xyz/my-video.mp4",
		"http://example.com/watch?v=1",
	}
	for _, u := range valid {
		if msg := StreamtapeURL(u); msg != "" {
			t.Errorf("StreamtapeURL(%q) = %q, expected no error", u, msg)
		}
	}
}

func TestStreamtapeURL_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"not a url",
		"/e/abc123xyz/",
		"ftp://streamtape.com/e/abc",
		"https://",
	}
	for _, u := range invalid {
		if msg := StreamtapeURL(u); msg == "" {
			t.Errorf("StreamtapeURL(%q) = no error, expected one", u)
		}
	}
}

func TestDescription_Optional(t *testing.T) {
	if msg := Description(""); msg != "" {
		t.Errorf("expected empty description to pass, got %q", msg)
	}
	if msg := Description(strings.Repeat("x", MaxDescriptionLength+1)); msg == "" {
		t.Error("expected error for over-limit description")
	}
}

func TestHashtags_Optional(t *testing.T) {
	if msg := Hashtags(""); msg != "" {
		t.Errorf("expected empty hashtags to pass, got %q", msg)
	}
	if msg := Hashtags(strings.Repeat("#", MaxHashtagsLength+1)); msg == "" {
		t.Error("expected error for over-limit hashtags")
	}
}

func TestPassword_ByteLimit(t *testing.T) {
	if msg := Password(""); msg != "" {
		t.Errorf("expected empty password to pass, got %q", msg)
	}
	if msg := Password(strings.Repeat("a", MaxPasswordLength)); msg != "" {
		t.Errorf("expected password at limit to pass, got %q", msg)
	}
	if msg := Password(strings.Repeat("a", MaxPasswordLength+1)); msg == "" {
		t.Error("expected error for over-limit password")
	}
}

func TestFieldLimits_CoversFormFields(t *testing.T) {
	limits := FieldLimits()
	for _, field := range []string{"title", "description", "hashtags", "streamtape_url", "password"} {
		if _, ok := limits[field]; !ok {
			t.Errorf("expected field %q in limits map", field)
		}
	}
	if limits["title"] != MaxTitleLength {
		t.Errorf("expected title limit %d, got %d", MaxTitleLength, limits["title"])
	}
}
