package store

// HealthStore abstracts connectivity checks
type HealthStore interface {
	// CheckConnectivity verifies the database connection is usable.
	CheckConnectivity() error
}
