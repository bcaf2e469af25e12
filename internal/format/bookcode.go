package format

import "strconv"

// BookDisplayCode derives the display code for a book item from its
// primary identifier and the secondary 13-digit book JAN. The secondary
// code embeds a 4-digit classification (C code) and a zero-padded list
// price; both are cut out at fixed offsets, not parsed structurally.
// A missing or too-short secondary code, a non-numeric price field, or
// an empty primary identifier all fall back to the primary identifier
// unchanged.
func BookDisplayCode(primary, secondary string) string {
	if primary == "" || len(secondary) < 12 {
		return primary
	}

	category := secondary[3:7]

	price, err := strconv.ParseUint(secondary[7:11], 10, 32)
	if err != nil {
		return primary
	}

	return primary + " C" + category + " ¥" + strconv.FormatUint(price, 10)
}
