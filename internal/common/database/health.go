// internal/common/database/health.go
package database

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckAll pings every dependency concurrently and returns the error message
// per failing name. An empty map means everything is reachable.
func CheckAll(ctx context.Context, timeout time.Duration, deps map[string]Pinger) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures = map[string]string{}
	)
	for name, dep := range deps {
		if dep == nil {
			continue
		}
		wg.Add(1)
		go func(name string, dep Pinger) {
			defer wg.Done()
			if err := dep.Ping(ctx); err != nil {
				mu.Lock()
				failures[name] = err.Error()
				mu.Unlock()
			}
		}(name, dep)
	}
	wg.Wait()
	return failures
}

// Names returns the sorted dependency names.
func Names(deps map[string]Pinger) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
