package booking

import (
	"strconv"
	"strings"
)

// FormatRupiah renders an amount the way the id-ID locale does: "Rp 105.000".
func FormatRupiah(amount int64) string {
	return "Rp " + groupThousands(amount)
}

func groupThousands(amount int64) string {
	negative := amount < 0
	digits := strconv.FormatInt(amount, 10)
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
