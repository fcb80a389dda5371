package language

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-2 code used when no language can be derived.
const Undetermined = "und"

var tagPattern = regexp.MustCompile(`(?i)^[a-z]{2,3}([-_][a-z0-9]{2,8})?`)

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string
}

// ISO 639-2/B codes that x/text does not canonicalize to a display name.
var languages = []entry{
	{"en", "eng", "", "English"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"zh", "zho", "chi", "Chinese"},
	{"nl", "nld", "dut", "Dutch"},
	{"cs", "ces", "cze", "Czech"},
	{"el", "ell", "gre", "Greek"},
	{"fa", "fas", "per", "Persian"},
	{"ro", "ron", "rum", "Romanian"},
	{"sk", "slk", "slo", "Slovak"},
}

var byCode map[string]*entry

func init() {
	byCode = make(map[string]*entry, len(languages)*3)
	for i := range languages {
		e := &languages[i]
		byCode[e.code2] = e
		byCode[e.code3] = e
		if e.alt3 != "" {
			byCode[e.alt3] = e
		}
	}
}

// FromTags returns the normalized language of a stream's tag map. An exact
// "language" key wins; otherwise the first case-insensitive match in sorted
// key order is used. A missing or unparseable value yields Undetermined.
func FromTags(tags map[string]string) string {
	if value, ok := tags["language"]; ok {
		return Normalize(value)
	}
	for _, key := range slices.Sorted(maps.Keys(tags)) {
		if strings.EqualFold(key, "language") {
			return Normalize(tags[key])
		}
	}
	return Undetermined
}

// Normalize extracts the leading language tag from value and lowercases it.
func Normalize(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
	match := tagPattern.FindString(value)
	if match == "" {
		return Undetermined
	}
	return strings.ToLower(match)
}

// DisplayName returns an English name for code. Undetermined and empty codes
// render as "Unknown"; codes no catalog recognizes are uppercased.
func DisplayName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == Undetermined {
		return "Unknown"
	}
	base := code
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		base = code[:i]
	}
	if e, ok := byCode[base]; ok && base == code {
		return e.display
	}
	tag, err := xlanguage.Parse(strings.ReplaceAll(code, "_", "-"))
	if err == nil {
		if name := display.English.Tags().Name(tag); name != "" {
			return name
		}
	}
	if e, ok := byCode[base]; ok {
		return e.display
	}
	return strings.ToUpper(code)
}
