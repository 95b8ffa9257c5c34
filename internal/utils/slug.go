package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Slugify lower-cases s, strips everything but word characters, spaces and
// hyphens, and collapses whitespace runs into a single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return whitespaceRe.ReplaceAllString(s, "-")
}

// DisplayID builds ids like "job202510010007": prefix, the UTC creation
// date as YYYYMMDD, then the numeric key padded to four digits.
func DisplayID(prefix string, createdAt time.Time, id int64) string {
	return prefix + createdAt.UTC().Format("20060102") + fmt.Sprintf("%04d", id)
}
