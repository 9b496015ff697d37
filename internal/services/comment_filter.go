package services

import (
	"regexp"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/apperr"
)

var blockedTerms = []string{
	"fuck", "fucking", "shit", "bullshit", "asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "retard", "tranny",
	"porn", "nudes", "scam", "phishing", "malware",
}

// Rejection reasons reported by CommentFilter.Check.
const (
	ReasonLanguage    = "inappropriate_language"
	ReasonLink        = "url_not_allowed"
	ReasonContactInfo = "contact_info_not_allowed"
	ReasonSpam        = "spam_detected"
)

var rejectionMessages = map[string]string{
	ReasonLanguage:    "Your comment contains inappropriate language.",
	ReasonLink:        "Links are not allowed in recipe feedback.",
	ReasonContactInfo: "Contact information is not allowed in recipe feedback.",
	ReasonSpam:        "Your comment appears to be spam.",
}

// CommentFilter screens free-text feedback comments. Patterns are compiled
// once and the filter is safe for concurrent use.
type CommentFilter struct {
	terms    []*regexp.Regexp
	link     *regexp.Regexp
	email    *regexp.Regexp
	phone    *regexp.Regexp
	repeated *regexp.Regexp
}

func NewCommentFilter() *CommentFilter {
	f := &CommentFilter{
		terms:    make([]*regexp.Regexp, 0, len(blockedTerms)),
		link:     regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		email:    regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`),
		phone:    regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
		repeated: regexp.MustCompile(`!{5,}|\?{5,}|\.{5,}`),
	}
	for _, term := range blockedTerms {
		f.terms = append(f.terms, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return f
}

// Check returns the rejection reason, or "" when the text is acceptable.
// Quantities such as "200g" or "3-4 minutes" are never flagged.
func (f *CommentFilter) Check(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range f.terms {
		if re.MatchString(text) {
			return ReasonLanguage
		}
	}
	switch {
	case f.link.MatchString(text):
		return ReasonLink
	case f.email.MatchString(text), f.phone.MatchString(text):
		return ReasonContactInfo
	case f.repeated.MatchString(text) || hasLetterRun(text, 5):
		return ReasonSpam
	}
	return ""
}

// Validate wraps Check as a validation error.
func (f *CommentFilter) Validate(text string) error {
	reason := f.Check(text)
	if reason == "" {
		return nil
	}
	return apperr.Validation(rejectionMessages[reason])
}

// hasLetterRun reports n or more consecutive identical letters, ignoring case.
// RE2 has no backreferences for this.
func hasLetterRun(text string, n int) bool {
	run := 0
	var prev rune
	for _, r := range text {
		lr := r | 0x20
		if lr >= 'a' && lr <= 'z' && lr == prev {
			run++
			if run >= n {
				return true
			}
			continue
		}
		prev = lr
		run = 1
	}
	return false
}
