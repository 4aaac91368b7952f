package function

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"edd/internal/domain"

	"golang.org/x/sync/errgroup"
)

// defaultSearchTerms are matched when no -s terms are given.
var defaultSearchTerms = []string{
	"*password*", "*sensitive*", "*admin*", "*login*", "*secret*",
	"unattend*.xml", "*.vmdk", "*creds*", "*credential*", "*.config",
}

// ShareFileFunction searches a share for files whose names match wildcard
// terms. Each top-level directory of the share is walked by its own worker.
type ShareFileFunction struct{}

func NewShareFileFunction() *ShareFileFunction {
	return &ShareFileFunction{}
}

func (f *ShareFileFunction) Name() string { return "FindInterestingDomainShareFile" }
func (f *ShareFileFunction) Description() string {
	return "Searches a share for files matching wildcard search terms (case-insensitive)"
}
func (f *ShareFileFunction) Usage() string {
	return "edd -f FindInterestingDomainShareFile --sharepath <path> [-s <term,term>] [-t <threads>]"
}

func (f *ShareFileFunction) Execute(ctx context.Context, args domain.Args) ([]string, error) {
	root := strings.TrimSpace(args.SharePath)
	if root == "" {
		return nil, domain.Failure("[-] Please provide a share to search with --sharepath")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.Failuref("[-] Cannot access share %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, domain.Failuref("[-] Share path %s is not a directory", root)
	}

	patterns, err := searchPatterns(args.SearchTerms)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, domain.Failuref("[-] Cannot list share %s: %w", root, err)
	}

	var (
		mu      sync.Mutex
		matches []string
	)
	add := func(path string) {
		mu.Lock()
		matches = append(matches, path)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(args.Threads, 1))
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if !entry.IsDir() {
			if matchAny(patterns, entry.Name()) {
				add(path)
			}
			continue
		}
		g.Go(func() error {
			return walkShare(gctx, path, patterns, add)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

// walkShare walks dir, reporting matching files. Unreadable entries are
// skipped; only cancellation stops the walk.
func walkShare(ctx context.Context, dir string, patterns []string, add func(string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && matchAny(patterns, d.Name()) {
			add(path)
		}
		return nil
	})
}

func searchPatterns(terms []string) ([]string, error) {
	var patterns []string
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			patterns = append(patterns, t)
		}
	}
	if len(patterns) == 0 {
		patterns = defaultSearchTerms
	}
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, domain.Failuref("[-] Invalid search term %q: %w", p, err)
		}
	}
	return patterns, nil
}

func matchAny(patterns []string, name string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, lower); ok {
			return true
		}
	}
	return false
}
