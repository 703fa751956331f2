package domain

import "strings"

// NormalizeID returns the canonical textual form of an identifier. Object ids
// are hex strings, so case and surrounding whitespace carry no meaning.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// CanModify reports whether actorID may mutate a resource owned by authorID.
// There are no roles or shared ownership: only the author may.
func CanModify(actorID, authorID string) bool {
	actor := NormalizeID(actorID)
	if actor == "" {
		return false
	}
	return actor == NormalizeID(authorID)
}
