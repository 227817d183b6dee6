package record

import "encoding/json"

// CanonicalJSON serializes a Signable as compact JSON with fields in
// alphabetical key order: no whitespace, no trailing comma, no space after
// ':' or ','. Go's json.Marshal already produces compact output and never
// reorders struct fields, so correctness here rests entirely on Signable's
// field declaration order in types.go - do not "fix" that ordering without
// understanding every existing record becomes unverifiable.
func CanonicalJSON(s Signable) ([]byte, error) {
	return json.Marshal(s)
}
