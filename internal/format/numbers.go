package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousand separators into a decimal string.
func FormatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	first := n % 3
	if first == 0 {
		first = 3
	}
	builder.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// FormatUint formats v with thousand separators.
func FormatUint(v uint64) string {
	return FormatNumberString(fmt.Sprintf("%d", v))
}

// FormatBytes renders a byte count with a binary unit, e.g. "1.50 MiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// GroupDigits splits the fractional digits of π into blocks of size digits
// separated by spaces, the customary layout for long expansions.
// digits holds the leading "3" and no decimal point. Non-positive sizes
// yield "3." followed by the ungrouped fraction.
func GroupDigits(digits string, size int) string {
	if digits == "" {
		return ""
	}
	frac := digits[1:]
	if frac == "" {
		return digits[:1]
	}
	if size <= 0 {
		return digits[:1] + "." + frac
	}
	var builder strings.Builder
	builder.Grow(len(digits) + 1 + len(frac)/size)
	builder.WriteString(digits[:1])
	builder.WriteByte('.')
	for i := 0; i < len(frac); i += size {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(frac[i:min(i+size, len(frac))])
	}
	return builder.String()
}
