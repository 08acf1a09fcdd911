// Package mapper resolves raw team-name variants to canonical club names.
package mapper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// ErrAmbiguousName marks a raw name that matches more than one canonical
// club equally well. Such names go to the review queue and are never resolved
// by guessing.
var ErrAmbiguousName = crerr.New("ambiguous team name")

// ReviewItem is one name parked for manual review.
type ReviewItem struct {
	Raw        string   `json:"raw"`
	Candidates []string `json:"candidates"`
}

// Mapper holds the variant lookup built by Builder or loaded from the
// persisted artifact. Resolve is safe for concurrent use; the review queue
// is guarded separately so ingestion workers can share one Mapper.
type Mapper struct {
	variants   map[string]string
	canonicals []string
	byNorm     map[string][]string
	// contested carries variants the builder saw claimed by more than one
	// canonical; resolving one is always ambiguous, never a guess.
	contested map[string][]string

	mu     sync.Mutex
	review map[string][]string
}

func newMapper(variants map[string]string) *Mapper {
	m := &Mapper{
		variants:  variants,
		byNorm:    make(map[string][]string),
		contested: make(map[string][]string),
		review:    make(map[string][]string),
	}

	seen := make(map[string]struct{})
	for _, canonical := range variants {
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		m.canonicals = append(m.canonicals, canonical)
		norm := Normalize(canonical)
		m.byNorm[norm] = append(m.byNorm[norm], canonical)
	}
	sort.Strings(m.canonicals)
	return m
}

// Resolve maps a raw observed name to its canonical club name. known is
// false when the name matched nothing, signalling the caller to treat it as
// a new canonical club. An ErrAmbiguousName error means the name matched
// several canonicals and was queued for review.
func (m *Mapper) Resolve(raw string) (canonical string, known bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty team name")
	}

	if canonical, ok := m.variants[raw]; ok {
		return canonical, true, nil
	}

	norm := Normalize(raw)
	for _, key := range []string{raw, norm} {
		if candidates := m.contested[key]; len(candidates) > 1 {
			m.queueReview(raw, candidates)
			return "", false, fmt.Errorf("%w: %q matches %d canonicals", ErrAmbiguousName, raw, len(candidates))
		}
	}
	if canonical, ok := m.variants[norm]; ok {
		return canonical, true, nil
	}
	if candidates := m.byNorm[norm]; len(candidates) == 1 {
		return candidates[0], true, nil
	} else if len(candidates) > 1 {
		m.queueReview(raw, candidates)
		return "", false, fmt.Errorf("%w: %q matches %d canonicals", ErrAmbiguousName, raw, len(candidates))
	}

	// Substring fallback: a unique canonical containing (or contained by)
	// the normalized name still counts as a confident match.
	if norm != "" {
		var candidates []string
		for _, c := range m.canonicals {
			cn := Normalize(c)
			if cn == "" {
				continue
			}
			if strings.Contains(cn, norm) || strings.Contains(norm, cn) {
				candidates = append(candidates, c)
			}
		}
		switch len(candidates) {
		case 0:
		case 1:
			return candidates[0], true, nil
		default:
			m.queueReview(raw, candidates)
			return "", false, fmt.Errorf("%w: %q matches %d canonicals", ErrAmbiguousName, raw, len(candidates))
		}
	}

	return raw, false, nil
}

func (m *Mapper) queueReview(raw string, candidates []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.review[raw]; !exists {
		m.review[raw] = append([]string(nil), candidates...)
	}
}

// ReviewQueue returns the ambiguous names seen so far, sorted by raw name.
func (m *Mapper) ReviewQueue() []ReviewItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ReviewItem, 0, len(m.review))
	for raw, candidates := range m.review {
		sorted := append([]string(nil), candidates...)
		sort.Strings(sorted)
		out = append(out, ReviewItem{Raw: raw, Candidates: sorted})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Raw < out[j].Raw })
	return out
}

// Len reports how many variant entries the mapper carries.
func (m *Mapper) Len() int { return len(m.variants) }

// Save writes the variant lookup as JSON so later runs can Load it instead
// of rebuilding.
func (m *Mapper) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create mapper dir: %w", err)
		}
	}

	raw, err := sonic.ConfigStd.MarshalIndent(m.variants, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mapper: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write mapper: %w", err)
	}
	return nil
}

// Load reads a previously saved mapper artifact.
func Load(path string) (*Mapper, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapper artifact: %w", err)
	}

	variants := make(map[string]string)
	if err := sonic.Unmarshal(raw, &variants); err != nil {
		return nil, fmt.Errorf("decode mapper artifact: %w", err)
	}
	return newMapper(variants), nil
}

// Empty returns a mapper with no entries; every Resolve reports a new club.
func Empty() *Mapper {
	return newMapper(map[string]string{})
}
