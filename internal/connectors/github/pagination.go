package github

import (
	"strings"
)

// Link is one entry of an RFC 8288 Link header.
type Link struct {
	URL  string
	Rels []string
}

// ParseLinks splits a Link header into its entries. Malformed entries are
// skipped. An entry may carry several space separated relation types.
func ParseLinks(header string) []Link {
	var links []Link
	for _, entry := range strings.Split(header, ",") {
		target, params, found := strings.Cut(strings.TrimSpace(entry), ";")
		if !found || !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		link := Link{URL: strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")}
		for _, param := range strings.Split(params, ";") {
			name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(name), "rel") {
				continue
			}
			link.Rels = append(link.Rels, strings.Fields(strings.Trim(strings.TrimSpace(value), `"`))...)
		}
		if len(link.Rels) > 0 {
			links = append(links, link)
		}
	}
	return links
}

// LinkFor returns the URL of the first entry with the given relation, or "".
func LinkFor(header, rel string) string {
	for _, link := range ParseLinks(header) {
		for _, r := range link.Rels {
			if strings.EqualFold(r, rel) {
				return link.URL
			}
		}
	}
	return ""
}

// HasNextPage reports whether the header carries a rel="next" entry.
// A missing header means the last page.
func HasNextPage(header string) bool {
	return LinkFor(header, "next") != ""
}
