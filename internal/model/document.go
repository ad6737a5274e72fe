package model

// KeyPrefix namespaces every document record in the store. Full keys look
// like docs:<sanitized_title>[_<n>].json.
const KeyPrefix = "docs:"

// UnknownAuthor is what display paths render when a stored record has no
// author. The store keeps whatever the inferencer returned, empty included.
const UnknownAuthor = "Unknown Author"

// Document is one ingested book or article. JSON field names match the
// records already written by earlier deployments, so existing stores stay
// readable.
type Document struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	// SourceLink is reserved for a link back to the original file; it is
	// written empty today.
	SourceLink string `json:"pdf_link"`
	// StoreKey is the redis key the record lives under, assigned once at
	// ingestion and never changed.
	StoreKey string `json:"redisKey,omitempty"`
}

// DisplayAuthor returns the author for user-facing output.
func (d Document) DisplayAuthor() string {
	if d.Author == "" {
		return UnknownAuthor
	}
	return d.Author
}
