// Package reconcile computes the orphan/missing/in-sync classification from
// the referenced and scanned canonical path sets. It is pure set algebra:
// no filesystem access, deterministic and order-independent.
package reconcile

import (
	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

// Result is the outcome of reconciling a referenced set against a scanned
// set. The three slices partition the union of both sets and are sorted
// lexicographically for stable downstream ordering.
type Result struct {
	// Orphans are scanned files the collection does not reference.
	Orphans []types.CanonicalPath

	// Missing are referenced paths absent from the scan.
	Missing []types.CanonicalPath

	// InSync are paths present in both sets.
	InSync []types.CanonicalPath

	// TotalReferenced is the size of the referenced set.
	TotalReferenced int

	// TotalScanned is the size of the scanned set.
	TotalScanned int
}

// Reconcile classifies every path: orphans = scanned − referenced,
// missing = referenced − scanned, inSync = scanned ∩ referenced.
func Reconcile(referenced, scanned types.PathSet) Result {
	orphans := types.NewPathSet()
	inSync := types.NewPathSet()
	for p := range scanned {
		if referenced.Contains(p) {
			inSync.Add(p)
		} else {
			orphans.Add(p)
		}
	}

	missing := types.NewPathSet()
	for p := range referenced {
		if !scanned.Contains(p) {
			missing.Add(p)
		}
	}

	return Result{
		Orphans:         orphans.Sorted(),
		Missing:         missing.Sorted(),
		InSync:          inSync.Sorted(),
		TotalReferenced: referenced.Len(),
		TotalScanned:    scanned.Len(),
	}
}
