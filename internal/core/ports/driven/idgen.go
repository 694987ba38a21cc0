package driven

// IDGenerator produces opaque per-request identifiers for stream start events
type IDGenerator interface {
	NewID() string
}
