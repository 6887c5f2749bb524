package domain

import "time"

// BuildRecord is the persisted metadata of a target.
type BuildRecord struct {
	Name     string    `json:"name"`
	UpToDate *bool     `json:"uptodate,omitempty"`
	Checksum string    `json:"checksum,omitzero"`
	BuiltAt  time.Time `json:"built_at,omitzero"`
}

// NewBuildRecord creates a record for a target that has no recorded state yet.
func NewBuildRecord(name string) *BuildRecord {
	return &BuildRecord{Name: name}
}

// MarkBuilt records a successful build of the target.
func (r *BuildRecord) MarkBuilt(checksum string, at time.Time) {
	upToDate := true
	r.UpToDate = &upToDate
	r.Checksum = checksum
	r.BuiltAt = at
}

// IsUpToDate reports whether the record explicitly marks the target current.
func (r *BuildRecord) IsUpToDate() bool {
	return r != nil && r.UpToDate != nil && *r.UpToDate
}
