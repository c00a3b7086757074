// Package category maps extracted vendor names to spending categories via
// keyword lookup. The tables are static; the store seeds matching rows and
// resolves names to ids.
package category

import "strings"

// Default category names. The UI of the original deployment is Thai, so the
// canonical names are too.
const (
	Shopping      = "ช้อปปิ้ง"
	Entertainment = "ความบันเทิง"
	Banking       = "ธนาคาร"
	Other         = "อื่นๆ"
)

// Names lists every category for store seeding, in display order.
func Names() []string {
	return []string{Shopping, Entertainment, Banking, Other}
}

type keywordGroup struct {
	name     string
	keywords []string
}

// Checked in order; first keyword hit wins.
var keywordGroups = []keywordGroup{
	{Shopping, []string{
		"shopee", "lazada", "tiktok shop", "amazon", "ebay", "alibaba",
		"jd central", "central", "powerbuy",
	}},
	{Entertainment, []string{
		"apple", "steam", "netflix", "disney", "spotify", "joox", "youtube",
		"prime video", "hbo", "game", "entertainment",
	}},
	{Banking, []string{
		"ธนาคาร", "bank", "kasikorn", "kbank", "scb", "bangkok bank",
		"krungsri", "ธ.ก.ส.", "ออมสิน", "tmb", "ttb", "kiatnakin",
		"visa", "mastercard",
	}},
}

// Categorize returns the category name for a vendor. Unknown vendors land in
// Other.
func Categorize(vendorName string) string {
	if vendorName == "" {
		return Other
	}

	lower := strings.ToLower(vendorName)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.name
			}
		}
	}
	return Other
}
