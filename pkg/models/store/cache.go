package store

import "time"

// CacheRecord is one persisted cache row, keyed solely by fingerprint.
// Series channels are stored columnar; Request carries the serialized
// location and system parameters that produced the entry.
type CacheRecord struct {
	Fingerprint string
	Kind        string // "weather" or "production"
	Request     []byte // JSON
	Series      map[string][]float64
	AnnualYield float64
	Meta        map[string]string
	CreatedAt   time.Time
}
