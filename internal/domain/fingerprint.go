package domain

import "strings"

// Fingerprint computes the stable identity key used for duplicate
// detection. Two observations with the same fingerprint describe the
// same job and must merge into one record.
//
// Primary identity is the normalized apply URL: two postings rarely
// share a URL by accident. When no usable URL exists the key falls
// back to title+company+location, which can collide for genuinely
// distinct jobs; callers treat such merges as heuristic and log them.
//
// Pure function of the four fields. No randomness, no clock.
func Fingerprint(j *Job) string {
	if u, ok := normalizeURL(j.URL); ok {
		return "url|" + u
	}
	return "tcl|" + collapse(j.Title) + "|" + collapse(j.Company) + "|" + collapse(j.Location)
}

// HasUsableURL reports whether the record's URL is strong enough to
// serve as primary identity.
func HasUsableURL(j *Job) bool {
	_, ok := normalizeURL(j.URL)
	return ok
}

// normalizeURL lowercases and whitespace-collapses the URL and checks
// it is a plausible http(s) link.
func normalizeURL(raw string) (string, bool) {
	u := collapse(raw)
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return "", false
	}
	// A scheme with nothing behind it is not an identity.
	rest := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	if rest == "" || rest == "/" {
		return "", false
	}
	return u, true
}

// collapse lowercases s and collapses all runs of whitespace to a
// single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
