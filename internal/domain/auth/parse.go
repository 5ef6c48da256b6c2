package auth

import "encoding/json"

// ParseIdentity narrows an untyped JSON blob into a trusted Identity.
// It returns ok=false for malformed JSON, missing subject or email, or an
// unrecognized role. It never returns an error: untrusted input is simply
// not an identity. Use at every deserialization boundary (storage reads,
// authority responses).
func ParseIdentity(data []byte) (Identity, bool) {
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, false
	}
	if !id.Trusted() {
		return Identity{}, false
	}
	return id, true
}

// ParseCredentialRecord narrows an untyped JSON blob into a complete
// token+identity pair. Partial records (either half missing or the
// identity untrusted) are reported as absent, not as errors.
func ParseCredentialRecord(data []byte) (CredentialRecord, bool) {
	var rec CredentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return CredentialRecord{}, false
	}
	if !rec.Complete() {
		return CredentialRecord{}, false
	}
	return rec, true
}
