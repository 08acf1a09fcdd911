package mapper

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/ingest/parser"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
)

const defaultScanWorkers = 4

// Builder accumulates canonical club names and their observed aliases from
// raw data files and existing Club rows, then emits a Mapper.
type Builder struct {
	logger      *logging.Logger
	scanWorkers int

	mu      sync.Mutex
	aliases map[string][]string
}

func NewBuilder(logger *logging.Logger) *Builder {
	if logger == nil {
		logger = logging.Default()
	}
	return &Builder{
		logger:      logger,
		scanWorkers: defaultScanWorkers,
		aliases:     make(map[string][]string),
	}
}

// ScanRoot walks every repository directory under root, one goroutine per
// repo, collecting club names from club files, squad file basenames and
// fixture lines.
func (b *Builder) ScanRoot(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read data root: %w", err)
	}

	p := pool.New().WithMaxGoroutines(b.scanWorkers)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		repoPath := filepath.Join(root, entry.Name())
		p.Go(func() {
			found := b.scanRepo(repoPath)
			b.merge(found)
		})
	}
	p.Wait()
	return nil
}

func (b *Builder) scanRepo(repoPath string) map[string][]string {
	found := make(map[string][]string)

	walkErr := filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		name := d.Name()
		rel, relErr := filepath.Rel(repoPath, path)
		if relErr != nil {
			rel = path
		}
		inClubsDir := pathHasPart(rel, "clubs")
		inSquadsDir := pathHasPart(rel, "squads")
		isClubFile := strings.Contains(strings.ToLower(name), "club")

		switch {
		case isClubFile && strings.HasSuffix(name, ".txt"):
			clubs, _, err := parser.ParseClubFile(path, "")
			if err != nil {
				b.logger.Warn("skipping club file during mapper scan", "path", path, "error", err)
				return nil
			}
			for _, c := range clubs {
				found[c.Name] = append(found[c.Name], c.AlternativeNames...)
			}
		case isClubFile && strings.HasSuffix(name, ".json"):
			clubs, err := parser.ParseClubJSON(path)
			if err != nil {
				b.logger.Warn("skipping club json during mapper scan", "path", path, "error", err)
				return nil
			}
			for _, c := range clubs {
				found[c.Name] = append(found[c.Name], c.AlternativeNames...)
			}
		case inSquadsDir && strings.HasSuffix(name, ".txt"):
			squadName := titleFromBasename(name)
			if _, exists := found[squadName]; !exists {
				found[squadName] = nil
			}
		case !inClubsDir && strings.HasSuffix(name, ".txt"):
			records, _, err := parser.ParseFixtureFile(path, 0)
			if err != nil {
				return nil
			}
			for _, rec := range records {
				if _, exists := found[rec.HomeTeam]; !exists {
					found[rec.HomeTeam] = nil
				}
				if _, exists := found[rec.AwayTeam]; !exists {
					found[rec.AwayTeam] = nil
				}
			}
		}
		return nil
	})
	if walkErr != nil {
		b.logger.Warn("mapper scan aborted for repo", "repo", repoPath, "error", walkErr)
	}

	return found
}

func (b *Builder) merge(found map[string][]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for canonical, aliases := range found {
		b.aliases[canonical] = append(b.aliases[canonical], aliases...)
	}
}

// AddClubs merges existing Club rows so names already in storage stay
// canonical across rebuilds.
func (b *Builder) AddClubs(clubs []club.Club) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range clubs {
		if c.Name == "" {
			continue
		}
		b.aliases[c.Name] = append(b.aliases[c.Name], c.AlternativeNames...)
	}
}

// Build emits the variant lookup. A variant claimed by two different
// canonicals is dropped from the lookup so Resolve reports it as ambiguous
// instead of silently picking a winner.
func (b *Builder) Build() *Mapper {
	b.mu.Lock()
	defer b.mu.Unlock()

	variants := make(map[string]string, len(b.aliases)*2)
	contested := make(map[string][]string)
	identities := make(map[string]struct{}, len(b.aliases))

	claim := func(variant, canonical string, identity bool) {
		if variant == "" {
			return
		}
		if identity {
			variants[variant] = canonical
			identities[variant] = struct{}{}
			return
		}
		// Identity mappings always win: a canonical name spelled exactly
		// resolves to itself no matter what aliases collide with it.
		if _, fixed := identities[variant]; fixed {
			return
		}
		if candidates, bad := contested[variant]; bad {
			contested[variant] = appendUnique(candidates, canonical)
			return
		}
		if owner, exists := variants[variant]; exists && owner != canonical {
			contested[variant] = []string{owner, canonical}
			delete(variants, variant)
			return
		}
		variants[variant] = canonical
	}

	for canonical := range b.aliases {
		claim(canonical, canonical, true)
	}
	for canonical, aliases := range b.aliases {
		claim(Normalize(canonical), canonical, false)
		for _, alias := range aliases {
			claim(alias, canonical, false)
			claim(Normalize(alias), canonical, false)
		}
	}

	if len(contested) > 0 {
		b.logger.Warn("dropped contested name variants from mapper", "count", len(contested))
	}
	m := newMapper(variants)
	m.contested = contested
	return m
}

func appendUnique(items []string, value string) []string {
	for _, item := range items {
		if item == value {
			return items
		}
	}
	return append(items, value)
}

func pathHasPart(rel, part string) bool {
	for _, p := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.Contains(strings.ToLower(p), part) {
			return true
		}
	}
	return false
}

func titleFromBasename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	words := strings.Fields(strings.ReplaceAll(base, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
