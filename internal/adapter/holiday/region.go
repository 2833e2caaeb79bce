package holiday

import (
	"regexp"
	"strings"
)

var regionCodes = map[string]string{
	"baden-württemberg":      "bw",
	"baden württemberg":      "bw",
	"baden-wuerttemberg":     "bw",
	"baden wuerttemberg":     "bw",
	"bayern":                 "by",
	"berlin":                 "be",
	"brandenburg":            "bb",
	"bremen":                 "hb",
	"hamburg":                "hh",
	"hessen":                 "he",
	"mecklenburg-vorpommern": "mv",
	"mecklenburg vorpommern": "mv",
	"niedersachsen":          "ni",
	"nordrhein-westfalen":    "nw",
	"nordrhein westfalen":    "nw",
	"nrw":                    "nw",
	"rheinland-pfalz":        "rp",
	"rheinland pfalz":        "rp",
	"saarland":               "sl",
	"sachsen":                "sn",
	"sachsen-anhalt":         "st",
	"sachsen anhalt":         "st",
	"schleswig-holstein":     "sh",
	"schleswig holstein":     "sh",
	"thüringen":              "th",
	"thueringen":             "th",
}

var codePattern = regexp.MustCompile(`^[a-z]{2}$`)

// NormalizeRegion maps a German state name or code to the two-letter
// lower-case code the API expects. It returns "" for anything else.
func NormalizeRegion(region string) string {
	r := strings.ToLower(strings.TrimSpace(region))
	if r == "" {
		return ""
	}
	if code, ok := regionCodes[r]; ok {
		return code
	}
	if codePattern.MatchString(r) {
		return r
	}
	return ""
}
