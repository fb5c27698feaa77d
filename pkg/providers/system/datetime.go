package system

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	rfc1123UTC   = "Mon, 02 Jan 2006 15:04:05 GMT"
	rfc1123Local = "Mon, 02 Jan 2006 15:04:05 -0700"
	iso8601UTC   = "2006-01-02T15:04:05.000Z"
)

// formatDatetime renders t as rfc1123, iso8601, or a quoted custom pattern.
func formatDatetime(t time.Time, format string, local bool) string {
	switch format {
	case "rfc1123":
		if local {
			return t.Format(rfc1123Local)
		}
		return t.UTC().Format(rfc1123UTC)
	case "iso8601":
		if local {
			return t.Format(time.RFC3339)
		}
		return t.UTC().Format(iso8601UTC)
	}
	return formatPattern(t, format[1:len(format)-1])
}

// patternTokens are matched longest first at each position.
var patternTokens = []string{
	"YYYY", "YY",
	"MMMM", "MMM", "MM", "M",
	"DD", "D",
	"dddd", "ddd", "d",
	"HH", "H", "hh", "h",
	"mm", "m",
	"ss", "s",
	"SSS",
	"A", "a",
	"ZZ", "Z",
	"X", "x",
}

// formatPattern renders Day.js style tokens (YYYY-MM-DD HH:mm:ss). Text in
// square brackets is copied verbatim; anything else that is not a token is
// kept as is.
func formatPattern(t time.Time, pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			if end := strings.IndexByte(pattern[i:], ']'); end > 0 {
				b.WriteString(pattern[i+1 : i+end])
				i += end + 1
				continue
			}
		}

		token := ""
		for _, tok := range patternTokens {
			if strings.HasPrefix(pattern[i:], tok) {
				token = tok
				break
			}
		}
		if token == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(formatToken(t, token))
		i += len(token)
	}
	return b.String()
}

func formatToken(t time.Time, token string) string {
	switch token {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return strconv.Itoa(hour12(t))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	case "A":
		return t.Format("PM")
	case "a":
		return t.Format("pm")
	case "ZZ":
		return t.Format("-0700")
	case "Z":
		return t.Format("-07:00")
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return token
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}
