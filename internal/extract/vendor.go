package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tag identifies which vendor rule set applies to an email.
type Tag string

const (
	TagApple   Tag = "apple"
	TagKPlus   Tag = "kplus"
	TagSteam   Tag = "steam"
	TagSpotify Tag = "spotify"
	TagNetflix Tag = "netflix"
	TagYouTube Tag = "youtube"
	TagGeneric Tag = "generic"
)

// senderRule maps sender-address keywords to a vendor tag. Rules are checked
// in slice order; the first keyword hit wins.
type senderRule struct {
	tag      Tag
	keywords []string
}

var senderRules = []senderRule{
	{TagApple, []string{"apple.com"}},
	{TagSteam, []string{"steampowered.com", "steam"}},
	{TagSpotify, []string{"spotify.com", "spotifymail.com", "spotify"}},
	{TagKPlus, []string{"kasikornbank.com", "kplus", "kasikorn"}},
	{TagNetflix, []string{"netflix.com", "netflix"}},
	{TagYouTube, []string{"youtube.com", "google.com", "youtube"}},
}

// Classify maps a sender address to a vendor tag. Unknown senders classify
// as TagGeneric.
func Classify(from string) Tag {
	lower := strings.ToLower(from)
	for _, rule := range senderRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.tag
			}
		}
	}
	return TagGeneric
}

var (
	displayNameRe = regexp.MustCompile(`^"?([^"<]+)"?\s*<`)
	localPartRe   = regexp.MustCompile(`([^@<\s]+)@`)

	localPartCleaner = strings.NewReplacer(".", " ", "_", " ", "-", " ")
	titleCaser       = cases.Title(language.English)
)

// FallbackVendorName derives a readable vendor name from the From header for
// emails that did not classify to a known vendor. It prefers the display name
// preceding the address; otherwise it prettifies the local part.
func FallbackVendorName(from string) string {
	if from == "" {
		return ""
	}

	if m := displayNameRe.FindStringSubmatch(from); m != nil {
		return strings.TrimSpace(m[1])
	}

	if m := localPartRe.FindStringSubmatch(from); m != nil {
		return titleCaser.String(localPartCleaner.Replace(strings.TrimSpace(m[1])))
	}

	return strings.TrimSpace(from)
}
