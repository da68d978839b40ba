package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mathnerd314/supertux/dyntree"
	"github.com/Mathnerd314/supertux/internal/geom"
	"github.com/Mathnerd314/supertux/service"
)

func box(x0, y0, x1, y1 float64) geom.Rect {
	return geom.NewRect(geom.NewVec2(x0, y0), geom.NewVec2(x1, y1))
}

// TestGuardedMatchesBareTreeSequentially drives the same operation sequence
// through a Guarded wrapper and a bare Tree and checks the two end up in
// identical states. Run single-threaded, the mutex and limiter must add no
// observable behavior of their own.
func TestGuardedMatchesBareTreeSequentially(t *testing.T) {
	bare := dyntree.NewTree()
	g := service.NewGuarded(dyntree.NewTree(), 0, 1)

	ctx := context.Background()

	ids := make([]int, 0, 10)
	for i := 0; i < 10; i++ {
		aabb := box(float64(i), 0, float64(i)+1, 1)
		bareID := bare.CreateProxy(aabb, i)
		guardedID := g.CreateProxy(aabb, i)
		require.Equal(t, bareID, guardedID)
		ids = append(ids, bareID)
	}

	bareMoved := bare.MoveProxy(ids[0], box(50, 50, 51, 51), geom.NewVec2(0, 0))
	guardedMoved := g.MoveProxy(ids[0], box(50, 50, 51, 51), geom.NewVec2(0, 0))
	require.Equal(t, bareMoved, guardedMoved)

	bare.DestroyProxy(ids[1])
	g.DestroyProxy(ids[1])

	bare.RebuildBottomUp()
	g.RebuildBottomUp()

	assert.Equal(t, bare.Dump(), g.Dump())
	assert.Equal(t, bare.GetHeight(), g.GetHeight())
	assert.Equal(t, bare.GetMaxBalance(), g.GetMaxBalance())
	assert.InDelta(t, bare.GetAreaRatio(), g.GetAreaRatio(), 1e-9)

	var bareHits, guardedHits []int
	bare.Query(box(-1000, -1000, 1000, 1000), func(id int) bool {
		bareHits = append(bareHits, id)
		return true
	})
	err := g.Query(ctx, box(-1000, -1000, 1000, 1000), func(id int) bool {
		guardedHits = append(guardedHits, id)
		return true
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, bareHits, guardedHits)
}

// TestGuardedConcurrentReadersAndWriter runs many concurrent Query/RayCast
// readers alongside a single mutator goroutine and checks the tree survives
// Validate afterward. Intended to pass cleanly under -race.
func TestGuardedConcurrentReadersAndWriter(t *testing.T) {
	tr := dyntree.NewTree()
	ids := make([]int, 0, 50)
	for i := 0; i < 50; i++ {
		ids = append(ids, tr.CreateProxy(box(float64(i), 0, float64(i)+1, 1), i))
	}
	g := service.NewGuarded(tr, 0, 8)
	ctx := context.Background()

	var wg sync.WaitGroup

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_ = g.Query(ctx, box(-1000, -1000, 1000, 1000), func(int) bool { return true })
				_ = g.RayCast(ctx, dyntree.RayCastInput{
					P1:          geom.NewVec2(-1, 0.5),
					P2:          geom.NewVec2(1000, 0.5),
					MaxFraction: 1.0,
				}, func(dyntree.RayCastInput, int) float64 { return -1 })
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i, id := range ids {
			g.MoveProxy(id, box(float64(i)+0.01, 0, float64(i)+1.01, 1), geom.NewVec2(0.01, 0))
		}
	}()

	wg.Wait()
	assert.NotPanics(t, g.Validate)
}
