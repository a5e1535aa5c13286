// internal/shop/fanout.go
package shop

import (
	"context"
	"sync"
)

// Branch is one leg of a fan-out write
type Branch struct {
	Name string
	Run  func(ctx context.Context) error
}

// BranchResult is the per-branch outcome of a fan-out write
type BranchResult struct {
	Name string
	Err  error
}

// FanOut runs the branches concurrently and waits for all of them. Each
// branch fails independently; a failed branch never aborts its siblings.
func FanOut(ctx context.Context, branches ...Branch) []BranchResult {
	results := make([]BranchResult, len(branches))

	var wg sync.WaitGroup
	for i, branch := range branches {
		wg.Add(1)
		go func(i int, branch Branch) {
			defer wg.Done()
			results[i] = BranchResult{Name: branch.Name, Err: branch.Run(ctx)}
		}(i, branch)
	}
	wg.Wait()

	return results
}
