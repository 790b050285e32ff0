// Package time provides the XML Schema lexical forms of date-time and
// duration values.
package time

import (
	"strconv"
	"strings"
	"time"
)

// dateTimeFormat is an xsd:dateTime with trailing fractional zeros removed.
const dateTimeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// FormatDateTime formats value as an xsd:dateTime.
func FormatDateTime(value time.Time) string {
	return value.Format(dateTimeFormat)
}

// AppendDateTime appends the xsd:dateTime form of value to dst.
func AppendDateTime(dst []byte, value time.Time) []byte {
	return value.AppendFormat(dst, dateTimeFormat)
}

// ParseDateTime parses an xsd:dateTime.
func ParseDateTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// FormatDuration formats value as an xsd:duration, e.g. P1DT2H3M4.5S. Days
// are the largest designator written.
func FormatDuration(value time.Duration) string {
	return string(AppendDuration(nil, value))
}

// AppendDuration appends the xsd:duration form of value to dst.
func AppendDuration(dst []byte, value time.Duration) []byte {
	if value == 0 {
		return append(dst, "PT0S"...)
	}

	// math.MinInt64 cannot be negated, work in unsigned nanoseconds
	n := uint64(value)
	if value < 0 {
		dst = append(dst, '-')
		n = uint64(-(value + 1)) + 1
	}
	dst = append(dst, 'P')

	const day = uint64(24 * time.Hour)
	if days := n / day; days > 0 {
		dst = strconv.AppendUint(dst, days, 10)
		dst = append(dst, 'D')
		n %= day
	}
	if n == 0 {
		return dst
	}

	dst = append(dst, 'T')
	if hours := n / uint64(time.Hour); hours > 0 {
		dst = strconv.AppendUint(dst, hours, 10)
		dst = append(dst, 'H')
		n %= uint64(time.Hour)
	}
	if minutes := n / uint64(time.Minute); minutes > 0 {
		dst = strconv.AppendUint(dst, minutes, 10)
		dst = append(dst, 'M')
		n %= uint64(time.Minute)
	}
	if n > 0 {
		dst = strconv.AppendUint(dst, n/uint64(time.Second), 10)
		if frac := n % uint64(time.Second); frac > 0 {
			digits := strconv.FormatUint(frac+uint64(time.Second), 10)[1:]
			dst = append(dst, '.')
			dst = append(dst, strings.TrimRight(digits, "0")...)
		}
		dst = append(dst, 'S')
	}

	return dst
}
