// Package uuid mints the identifiers the API hands out: time-ordered request
// ids and deterministic stakeholder ids for converted instruments.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// stakeholderNamespace scopes name-based ids minted for stakeholders created
// by instrument conversion.
var stakeholderNamespace = googleuuid.MustParse("6f1c2a5e-3d8b-4f0a-9c7e-2b4d6e8f0a1c")

// New generates a UUIDv7 (RFC 9562). Used for request ids, which only need
// to be unique and time-ordered.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// Derive returns a deterministic UUIDv5 for name. The same name always yields
// the same id, so re-running a conversion over identical input produces an
// identical cap table.
func Derive(name string) string {
	return googleuuid.NewSHA1(stakeholderNamespace, []byte(name)).String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
