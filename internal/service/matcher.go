package service

import "strings"

// aliasEntry maps a canonical label key to the names vendors use for it
type aliasEntry struct {
	key     string
	aliases []string
}

// operatorAliases is consulted in order; the first key found in the label decides.
var operatorAliases = []aliasEntry{
	{key: "mtn", aliases: []string{"mtn", "mobile telecommunications network"}},
	{key: "glo", aliases: []string{"glo", "globacom"}},
	{key: "airtel", aliases: []string{"airtel", "airtel nigeria"}},
	{key: "9mobile", aliases: []string{"9mobile", "9 mobile", "etisalat"}},
	{key: "dstv", aliases: []string{"dstv", "d-stv", "multichoice"}},
	{key: "gotv", aliases: []string{"gotv", "go-tv", "go tv"}},
	{key: "startimes", aliases: []string{"startimes", "star times", "star-times"}},
}

// MatchName reports whether a vendor record name refers to the product label.
// It is a heuristic: direct containment either way, then the alias table.
func MatchName(candidate, label string) bool {
	c := strings.ToLower(strings.TrimSpace(candidate))
	l := strings.ToLower(strings.TrimSpace(label))
	if c == "" || l == "" {
		return false
	}

	if strings.Contains(c, l) || strings.Contains(l, c) {
		return true
	}

	for _, entry := range operatorAliases {
		if !strings.Contains(l, entry.key) {
			continue
		}
		for _, alias := range entry.aliases {
			if strings.Contains(c, alias) {
				return true
			}
		}
		return false
	}

	return false
}

// matchAny reports whether candidate matches any of the labels
func matchAny(candidate string, labels []string) bool {
	for _, label := range labels {
		if MatchName(candidate, label) {
			return true
		}
	}
	return false
}
