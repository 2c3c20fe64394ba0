package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/ports"
)

type redactMiddleware struct {
	next     ports.SnapshotStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks the values of groups
// whose label matches any of the patterns before the snapshot is persisted.
// Redacted groups survive a restore as "***", which never structurally
// equals a live value, so their bindings simply re-fire after a restore.
func NewRedactMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactMiddleware) Save(ctx context.Context, id string, snap *domain.Snapshot) error {
	// Clone so the engine's in-memory snapshot is untouched.
	cloned := &domain.Snapshot{
		Values:  make(map[string]any, len(snap.Values)),
		TakenAt: snap.TakenAt,
	}
	for group, v := range snap.Values {
		if m.matches(group) {
			cloned.Values[group] = "***"
		} else {
			cloned.Values[group] = v
		}
	}
	return m.next.Save(ctx, id, cloned)
}

func (m *redactMiddleware) matches(group string) bool {
	for _, p := range m.patterns {
		if p.MatchString(group) {
			return true
		}
	}
	return false
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}
