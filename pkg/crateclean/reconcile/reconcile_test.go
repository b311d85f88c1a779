package reconcile

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobyrandall/crateclean/pkg/crateclean/types"
)

func setOf(paths ...string) types.PathSet {
	set := types.NewPathSet()
	for _, p := range paths {
		set.Add(types.CanonicalPath(p))
	}
	return set
}

func TestReconcile_Partition(t *testing.T) {
	referenced := setOf("/m/a.mp3", "/m/b.mp3", "/m/gone.mp3")
	scanned := setOf("/m/a.mp3", "/m/b.mp3", "/m/stray.mp3")

	res := Reconcile(referenced, scanned)

	assert.Equal(t, []types.CanonicalPath{"/m/stray.mp3"}, res.Orphans)
	assert.Equal(t, []types.CanonicalPath{"/m/gone.mp3"}, res.Missing)
	assert.ElementsMatch(t,
		[]types.CanonicalPath{"/m/a.mp3", "/m/b.mp3"},
		res.InSync)

	// Orphans and in-sync partition the scanned set; missing and
	// in-sync partition the referenced set.
	assert.Equal(t, scanned.Len(), len(res.Orphans)+len(res.InSync))
	assert.Equal(t, referenced.Len(), len(res.Missing)+len(res.InSync))
	assert.Equal(t, referenced.Len(), res.TotalReferenced)
	assert.Equal(t, scanned.Len(), res.TotalScanned)
}

func TestReconcile_EmptySets(t *testing.T) {
	t.Run("both empty", func(t *testing.T) {
		res := Reconcile(types.NewPathSet(), types.NewPathSet())
		assert.Empty(t, res.Orphans)
		assert.Empty(t, res.Missing)
		assert.Empty(t, res.InSync)
	})

	t.Run("empty collection", func(t *testing.T) {
		res := Reconcile(types.NewPathSet(), setOf("/m/a.mp3", "/m/b.mp3"))
		assert.Len(t, res.Orphans, 2, "every scanned file is an orphan")
		assert.Empty(t, res.Missing)
	})

	t.Run("empty scan", func(t *testing.T) {
		res := Reconcile(setOf("/m/a.mp3"), types.NewPathSet())
		assert.Empty(t, res.Orphans)
		assert.Len(t, res.Missing, 1, "every reference is missing")
	})
}

func TestReconcile_SortedOutput(t *testing.T) {
	scanned := setOf("/m/z.mp3", "/m/a.mp3", "/m/k.mp3")
	res := Reconcile(types.NewPathSet(), scanned)

	assert.True(t, sort.SliceIsSorted(res.Orphans, func(i, j int) bool {
		return res.Orphans[i] < res.Orphans[j]
	}))
}

func TestReconcile_Disjoint(t *testing.T) {
	res := Reconcile(setOf("/m/a.mp3", "/m/c.mp3"), setOf("/m/a.mp3", "/m/b.mp3"))

	seen := map[types.CanonicalPath]int{}
	for _, p := range res.Orphans {
		seen[p]++
	}
	for _, p := range res.Missing {
		seen[p]++
	}
	for _, p := range res.InSync {
		seen[p]++
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "%s appears in more than one bucket", p)
	}
}
