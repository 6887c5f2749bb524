package ports

import "go.trai.ch/redo/internal/core/domain"

// BuildRecordStore defines the interface for storing and retrieving build records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the record for a target.
	// Returns nil, nil if not found.
	Get(target domain.Target) (*domain.BuildRecord, error)

	// Put stores the record for a target.
	Put(target domain.Target, rec *domain.BuildRecord) error
}

// Hasher computes content checksums.
type Hasher interface {
	// Checksum returns a hex digest of the file content at path.
	Checksum(path string) (string, error)
}
