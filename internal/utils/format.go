package utils

import (
	"encoding/json"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ISOLayout renders timestamps the way browsers print Date.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

var idPrinter = message.NewPrinter(language.Indonesian)

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// FormatIDR groups n with id-ID separators, ex: 12000000 -> "12.000.000".
func FormatIDR(n int64) string {
	return idPrinter.Sprintf("%d", n)
}

// SalaryDisplay renders "Rp<min> - Rp<max>", or nil when neither bound is
// set to a non-zero amount. A missing bound prints as zero.
func SalaryDisplay(min, max *int64) *string {
	lo, hi := deref(min), deref(max)
	if lo == 0 && hi == 0 {
		return nil
	}
	s := "Rp" + FormatIDR(lo) + " - Rp" + FormatIDR(hi)
	return &s
}

// StartedOn renders "started on 1 Oct 2025".
func StartedOn(t time.Time) string {
	return "started on " + t.UTC().Format("2 Jan 2006")
}

var dialCodes = map[string]string{
	"ID": "+62",
	"MY": "+60",
	"SG": "+65",
}

// DialCode maps a country code to its dial prefix; unknown countries fall
// back to Singapore.
func DialCode(country string) string {
	if c, ok := dialCodes[country]; ok {
		return c
	}
	return "+65"
}

// PhoneDisplay turns a string-encoded {"country","local"} payload into
// "+62 81234567". ok is false when raw is not such a payload.
func PhoneDisplay(raw string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		return "", false
	}
	countryRaw, hasCountry := obj["country"]
	localRaw, hasLocal := obj["local"]
	if !hasCountry || !hasLocal {
		return "", false
	}

	var country string
	_ = json.Unmarshal(countryRaw, &country)

	var local any
	_ = json.Unmarshal(localRaw, &local)

	return DialCode(country) + " " + Stringify(local), true
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
