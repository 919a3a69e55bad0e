package contenttypes

import "bytes"

// partNameSearch returns the part name as it appears as a quoted attribute
// value; AppxSignature.p7x => "/AppxSignature.p7x" (quotes included).
func partNameSearch(fileName string) string {
	return `"/` + fileName + `"`
}

// HasOverride reports whether a previously serialized manifest already
// declares an override for fileName. This is a substring probe, not a
// parse: it relies on the writer always quoting attribute values the same
// way and on part names not occurring in unrelated text. A miss is a valid
// outcome, not an error; the result only gates skip-vs-emit for the two
// well-known signing parts.
func HasOverride(existing []byte, fileName string) bool {
	return bytes.Contains(existing, []byte(partNameSearch(fileName)))
}
