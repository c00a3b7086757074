package extract

import "regexp"

// amountPattern is one candidate money pattern. Group 1 must capture the
// numeric amount (thousands separators allowed). A non-empty currency
// overrides the seed currency when the pattern wins.
type amountPattern struct {
	re       *regexp.Regexp
	currency string
}

// datePattern pairs a body pattern with the time layout its group 1 parses
// against, after Thai month normalization.
type datePattern struct {
	re     *regexp.Regexp
	layout string
}

// VendorRule is the full static extraction rule set for one vendor tag.
// Rules are compiled once at init and never mutated.
type VendorRule struct {
	Tag         Tag
	DisplayName string // empty keeps the classifier's fallback name

	amountPatterns []amountPattern
	datePatterns   []datePattern
	numberPatterns []*regexp.Regexp // receipt / transaction / invoice number
	productPattern *regexp.Regexp   // informational only, surfaced as a note
}

const (
	layoutDayMonthYear = "2 Jan 2006"
	layoutSlashed      = "02/01/2006"
)

var vendorRules = map[Tag]*VendorRule{
	TagApple: {
		Tag:         TagApple,
		DisplayName: "Apple",
		amountPatterns: []amountPattern{
			{re: regexp.MustCompile(`฿([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`(?i)TOTAL\s*฿\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`(?i)Total:\s*฿\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`ค่าใช้จ่ายรวม\s*฿\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`รวม\s*฿\s*([\d,]+\.\d{2})`)},
		},
		datePatterns: []datePattern{
			{re: regexp.MustCompile(`(?i)INVOICE DATE\s*(\d{1,2}\s+\w+\s+\d{4})`), layout: layoutDayMonthYear},
		},
	},

	TagKPlus: {
		Tag:         TagKPlus,
		DisplayName: "K Plus (Kasikorn Bank)",
		amountPatterns: []amountPattern{
			{re: regexp.MustCompile(`จำนวนเงิน\s*\(บาท\):\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`จำนวนเงิน\s*\(บาท\)[^\d]*([\d,]+\.\d{2})`)},
		},
		datePatterns: []datePattern{
			{re: regexp.MustCompile(`วันที่ทำรายการ:\s*(\d{2}/\d{2}/\d{4})`), layout: layoutSlashed},
			{re: regexp.MustCompile(`วันที่ทำรายการ[^\d]*(\d{2}/\d{2}/\d{4})`), layout: layoutSlashed},
		},
		numberPatterns: []*regexp.Regexp{
			regexp.MustCompile(`เลขที่รายการ:?\s*(\w+)`),
		},
		productPattern: regexp.MustCompile(`เพื่อเข้าบัญชีบริษัท:\s*([^\r\n]+)`),
	},

	TagSteam: {
		Tag:         TagSteam,
		DisplayName: "Steam",
		amountPatterns: []amountPattern{
			{re: regexp.MustCompile(`รวมทั้งหมด:\s*฿\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`เสร็จสมบูรณ์แล้ว และ ฿([\d,]+\.\d{2})`)},
		},
		datePatterns: []datePattern{
			// "10 ม.ค. 2025 @ 3:00pm +0700" — only the date half is parsed.
			{re: regexp.MustCompile(`วันที่ดำเนินการ:\s*(\d{1,2}\s+\S+\s+\d{4})`), layout: layoutDayMonthYear},
		},
		numberPatterns: []*regexp.Regexp{
			regexp.MustCompile(`ใบกำกับสินค้า:\s*(\d+)`),
		},
		productPattern: regexp.MustCompile(`ขอขอบคุณสำหรับการสั่งซื้อล่าสุดของคุณสำหรับ\s*([^\r\n]+)`),
	},

	TagSpotify: {
		Tag:         TagSpotify,
		DisplayName: "Spotify",
		amountPatterns: []amountPattern{
			{re: regexp.MustCompile(`(?i)Total\s*:?\s*฿\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`฿([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`(?i)THB\s*([\d,]+\.\d{2})`)},
		},
		datePatterns: []datePattern{
			{re: regexp.MustCompile(`(?i)(?:Invoice|Receipt) date:?\s*(\d{1,2}\s+\w+\s+\d{4})`), layout: layoutDayMonthYear},
			{re: regexp.MustCompile(`(?i)Date:?\s*(\d{2}/\d{2}/\d{4})`), layout: layoutSlashed},
		},
		numberPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Receipt number:?\s*([A-Z0-9-]+)`),
		},
	},

	TagNetflix: {
		Tag:         TagNetflix,
		DisplayName: "Netflix",
		amountPatterns: []amountPattern{
			{re: regexp.MustCompile(`(?i)(?:Total|ยอดรวม)\s*:?\s*฿?\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`฿([\d,]+\.\d{2})`)},
		},
		datePatterns: []datePattern{
			{re: regexp.MustCompile(`(?i)(?:Payment date|วันที่ชำระเงิน)\s*:?\s*(\d{2}/\d{2}/\d{4})`), layout: layoutSlashed},
		},
	},

	TagYouTube: {
		Tag:         TagYouTube,
		DisplayName: "YouTube",
		amountPatterns: []amountPattern{
			{re: regexp.MustCompile(`(?i)(?:Total|รวม)\s*:?\s*฿\s*([\d,]+\.\d{2})`)},
			{re: regexp.MustCompile(`฿([\d,]+\.\d{2})`)},
		},
		datePatterns: []datePattern{
			{re: regexp.MustCompile(`(?i)(?:Order date|Date)\s*:?\s*(\d{1,2}\s+\w+\s+\d{4})`), layout: layoutDayMonthYear},
		},
		numberPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Order number:?\s*([A-Z0-9.-]+)`),
		},
	},

	// The generic rule tries labeled baht forms, bare baht forms, dollar
	// forms, and finally any number with exactly two decimals. The last
	// pattern is intentionally permissive and can pick up an unrelated
	// numeric token as the amount; see DESIGN.md.
	TagGeneric: {
		Tag: TagGeneric,
		amountPatterns: []amountPattern{
			{re: regexp.MustCompile(`(?i)(?:total|amount|ยอดรวม|จำนวนเงิน|ราคา)(?:\s*:)?\s*฿\s*([\d,]+\.\d{2})`), currency: "THB"},
			{re: regexp.MustCompile(`฿\s*([\d,]+\.\d{2})`), currency: "THB"},
			{re: regexp.MustCompile(`(?i)(?:THB|บาท)\s*([\d,]+\.\d{2})`), currency: "THB"},
			{re: regexp.MustCompile(`(?i)([\d,]+\.\d{2})\s*(?:THB|บาท)`), currency: "THB"},
			{re: regexp.MustCompile(`(?i)(?:total|amount)(?:\s*:)?\s*\$\s*([\d,]+\.\d{2})`), currency: "USD"},
			{re: regexp.MustCompile(`\$\s*([\d,]+\.\d{2})`), currency: "USD"},
			{re: regexp.MustCompile(`(?i)USD\s*([\d,]+\.\d{2})`), currency: "USD"},
			{re: regexp.MustCompile(`(?i)([\d,]+\.\d{2})\s*USD`), currency: "USD"},
			{re: regexp.MustCompile(`([\d,]+\.\d{2})`)},
		},
	},
}

// RuleFor returns the rule set for a tag, falling back to the generic rule.
func RuleFor(tag Tag) *VendorRule {
	if rule, ok := vendorRules[tag]; ok {
		return rule
	}
	return vendorRules[TagGeneric]
}
