package domain

// MismatchReason describes how a generated unit disagrees with the resource tree.
type MismatchReason string

const (
	// MismatchMissingFromUnit means the manifest lists a path the unit does not embed.
	MismatchMissingFromUnit MismatchReason = "missing from unit"
	// MismatchNotInManifest means the unit embeds a path the manifest no longer lists.
	MismatchNotInManifest MismatchReason = "not in manifest"
	// MismatchFileMissing means the embedded file no longer exists on disk.
	MismatchFileMissing MismatchReason = "file missing"
	// MismatchContent means the embedded bytes differ from the file on disk.
	MismatchContent MismatchReason = "content differs"
)

// Mismatch is one disagreement found by verification.
type Mismatch struct {
	Path   string
	Reason MismatchReason
}

// VerifyReport is the result of checking a generated unit against its sources.
type VerifyReport struct {
	Archive    string
	Files      int
	Mismatches []Mismatch
}

// OK reports whether the unit matches its sources.
func (r *VerifyReport) OK() bool {
	return len(r.Mismatches) == 0
}
