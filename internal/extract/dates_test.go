package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVendorDateThaiForms(t *testing.T) {
	want := time.Date(2025, time.January, 23, 0, 0, 0, 0, time.UTC)

	abbrev, ok := parseVendorDate("23 ม.ค. 2025", layoutDayMonthYear)
	require.True(t, ok)

	full, ok := parseVendorDate("23 มกราคม 2025", layoutDayMonthYear)
	require.True(t, ok)

	assert.Equal(t, want, abbrev)
	assert.Equal(t, want, full)
}

func TestParseVendorDateAllThaiMonths(t *testing.T) {
	abbrevs := []string{"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.", "ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค."}
	full := []string{"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน", "กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม"}

	for i := 0; i < 12; i++ {
		want := time.Month(i + 1)

		got, ok := parseVendorDate("5 "+abbrevs[i]+" 2025", layoutDayMonthYear)
		require.True(t, ok, "abbrev %s", abbrevs[i])
		assert.Equal(t, want, got.Month())

		got, ok = parseVendorDate("5 "+full[i]+" 2025", layoutDayMonthYear)
		require.True(t, ok, "full %s", full[i])
		assert.Equal(t, want, got.Month())
	}
}

func TestParseVendorDateEnglishPassthrough(t *testing.T) {
	got, ok := parseVendorDate("12 Feb 2025", layoutDayMonthYear)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.February, 12, 0, 0, 0, 0, time.UTC), got)
}

func TestParseVendorDateSlashedLayout(t *testing.T) {
	got, ok := parseVendorDate("05/03/2025", layoutSlashed)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestParseVendorDateMalformed(t *testing.T) {
	_, ok := parseVendorDate("32/13/2025", layoutSlashed)
	assert.False(t, ok)

	_, ok = parseVendorDate("not a date", layoutDayMonthYear)
	assert.False(t, ok)

	_, ok = parseVendorDate("", layoutDayMonthYear)
	assert.False(t, ok)
}
