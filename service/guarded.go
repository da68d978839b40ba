// Package service wraps a dyntree.Tree with the synchronization the core
// tree deliberately does not provide. The tree itself is single-owner and
// unsynchronized by design; any goroutine sharing happens here, one layer
// up, the same split bitmarkd draws between its rpc handlers and the
// package-level state they touch under a mutex.
package service

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/Mathnerd314/supertux/dyntree"
	"github.com/Mathnerd314/supertux/internal/geom"
)

// Guarded serializes access to a *dyntree.Tree with a reader/writer mutex
// and throttles its read-only traversal operations (Query, RayCast) with a
// token-bucket limiter, the way rpc.rateLimit throttles bitmarkd's RPC
// handlers before they touch shared state.
type Guarded struct {
	mu      sync.RWMutex
	tree    *dyntree.Tree
	limiter *rate.Limiter
}

// NewGuarded wraps tree, limiting Query and RayCast to queriesPerSecond
// sustained calls with a burst of burst. A non-positive queriesPerSecond
// disables throttling (rate.Inf).
func NewGuarded(tree *dyntree.Tree, queriesPerSecond float64, burst int) *Guarded {
	limit := rate.Limit(queriesPerSecond)
	if queriesPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Guarded{
		tree:    tree,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// CreateProxy takes the write lock and delegates to the wrapped tree.
func (g *Guarded) CreateProxy(tightAABB geom.Rect, userData interface{}) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tree.CreateProxy(tightAABB, userData)
}

// DestroyProxy takes the write lock and delegates to the wrapped tree.
func (g *Guarded) DestroyProxy(proxyID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tree.DestroyProxy(proxyID)
}

// MoveProxy takes the write lock and delegates to the wrapped tree.
func (g *Guarded) MoveProxy(proxyID int, tightAABB geom.Rect, displacement geom.Vec2) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tree.MoveProxy(proxyID, tightAABB, displacement)
}

// RebuildBottomUp takes the write lock and delegates to the wrapped tree.
func (g *Guarded) RebuildBottomUp() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tree.RebuildBottomUp()
}

// ShiftOrigin takes the write lock and delegates to the wrapped tree.
func (g *Guarded) ShiftOrigin(v geom.Vec2) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tree.ShiftOrigin(v)
}

// Query waits for rate limiter admission, then runs the query under a read
// lock. It returns ctx.Err() if the wait is cancelled or times out before a
// token is available, without ever touching the tree.
func (g *Guarded) Query(ctx context.Context, aabb geom.Rect, callback dyntree.QueryCallback) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.tree.Query(aabb, callback)
	return nil
}

// RayCast waits for rate limiter admission, then runs the ray cast under a
// read lock.
func (g *Guarded) RayCast(ctx context.Context, input dyntree.RayCastInput, callback dyntree.RayCastCallback) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.tree.RayCast(input, callback)
	return nil
}

// GetHeight takes the read lock and delegates to the wrapped tree.
func (g *Guarded) GetHeight() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.GetHeight()
}

// GetMaxBalance takes the read lock and delegates to the wrapped tree.
func (g *Guarded) GetMaxBalance() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.GetMaxBalance()
}

// GetAreaRatio takes the read lock and delegates to the wrapped tree.
func (g *Guarded) GetAreaRatio() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.GetAreaRatio()
}

// GetUserData takes the read lock and delegates to the wrapped tree.
func (g *Guarded) GetUserData(proxyID int) interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.GetUserData(proxyID)
}

// GetFatAABB takes the read lock and delegates to the wrapped tree.
func (g *Guarded) GetFatAABB(proxyID int) geom.Rect {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.GetFatAABB(proxyID)
}

// WasMoved takes the read lock and delegates to the wrapped tree.
func (g *Guarded) WasMoved(proxyID int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.WasMoved(proxyID)
}

// ClearMoved takes the write lock and delegates to the wrapped tree.
func (g *Guarded) ClearMoved(proxyID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tree.ClearMoved(proxyID)
}

// Dump takes the read lock and delegates to the wrapped tree.
func (g *Guarded) Dump() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tree.Dump()
}

// Validate takes the read lock and delegates to the wrapped tree.
func (g *Guarded) Validate() {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.tree.Validate()
}
