// Package refguard implements dependency-guarded deletion: before a parent
// row is removed, a fixed list of reference probes checks for child rows and
// the first blocking class wins. Probes run concurrently; the verdict is
// reported in declaration order regardless of which probe finished first.
package refguard

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Probe is one bounded existence check against a referencing table.
type Probe struct {
	// Label names the dependency class in user-facing conflict messages,
	// e.g. "employees assigned" or "training records".
	Label string
	// TextCode identifies the blocking class for transports.
	TextCode string
	// Exists runs the LIMIT-1 existence check.
	Exists func(ctx context.Context, parentID uuid.UUID) (bool, error)
}

// Guard holds the ordered probe list for one parent entity.
type Guard struct {
	entity string
	probes []Probe
}

// New builds a guard for the named parent entity.
func New(entity string, probes ...Probe) Guard {
	return Guard{entity: entity, probes: probes}
}

// Check runs every probe concurrently and returns a conflict error naming the
// first blocking dependency class in declaration order. Probe errors surface
// as dependency failures.
func (g Guard) Check(ctx context.Context, parentID uuid.UUID) error {
	if len(g.probes) == 0 {
		return nil
	}

	blocked := make([]bool, len(g.probes))
	var mu sync.Mutex

	grp, grpCtx := errgroup.WithContext(ctx)
	for i, probe := range g.probes {
		grp.Go(func() error {
			found, err := probe.Exists(grpCtx, parentID)
			if err != nil {
				return err
			}
			mu.Lock()
			blocked[i] = found
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return types.DependencyFailure(err, "record store")
	}

	for i, hit := range blocked {
		if hit {
			probe := g.probes[i]
			return types.Conflict(
				fmt.Sprintf("go-trainops: cannot delete %s, it has %s", g.entity, probe.Label),
				probe.TextCode,
			)
		}
	}
	return nil
}
