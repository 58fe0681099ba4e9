package interfaces

// StoreInterface is a synchronous key-value store of JSON documents.
type StoreInterface interface {
	// Load decodes the value under key into dst. It reports false when the
	// value is missing or unreadable. Callers decode into a fresh value and
	// discard it on false.
	Load(key string, dst any) bool
	Save(key string, value any) error
}
