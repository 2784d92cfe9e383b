package domain

// User is an end user keyed by the stable identity the chat transport
// supplies. DisplayName and Handle are refreshed on every upsert.
type User struct {
	ID          int64
	ExternalKey string
	DisplayName string
	Handle      string
}
