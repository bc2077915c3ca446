package orchestrator

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/griffnb/ts-swag/internal/domain"
)

// fileResult pairs one file's extracted declarations and routes. Results
// are slotted by enumeration index so output order never depends on
// goroutine scheduling.
type fileResult struct {
	source *domain.SourceFile
	routes []*domain.RouteDescriptor
}

// extractParallel runs declaration and route extraction over all files
// concurrently, bounded by the number of CPUs. Unreadable or unparsable
// files are logged and skipped.
func (s *Service) extractParallel(ctx context.Context, files []string) ([]*fileResult, error) {
	results := make([]*fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range files {
		i, path := i, path

		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				s.debug.Printf("warning: cannot read %s: %v", path, err)
				return nil
			}

			fr := &fileResult{}

			source, err := s.declParser.Parse(gctx, path, src)
			if err != nil {
				s.debug.Printf("warning: cannot extract declarations from %s: %v", path, err)
			} else {
				fr.source = source
			}

			routes, err := s.routeParser.Parse(gctx, path, src)
			if err != nil {
				s.debug.Printf("warning: cannot extract routes from %s: %v", path, err)
			} else {
				fr.routes = routes
			}

			results[i] = fr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
