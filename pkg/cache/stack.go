package cache

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Stack layers tiers from fastest to slowest. A hit on a lower tier is
// promoted into every tier above it, so repeated lookups settle into the
// fastest layer that can hold them.
type Stack struct {
	tiers []Tier
}

// NewStack orders tiers fastest first. Nil tiers are skipped so callers can
// wire an optional persistent layer without branching.
func NewStack(tiers ...Tier) *Stack {
	s := &Stack{}
	for _, t := range tiers {
		if t != nil {
			s.tiers = append(s.tiers, t)
		}
	}
	return s
}

// Get walks the tiers in order and returns the first hit, with Origin set to
// the serving tier's name. Tier failures are logged and treated as misses;
// only a miss on every tier returns ErrMiss.
func (s *Stack) Get(ctx context.Context, fingerprint string) (*Entry, error) {
	log := zerolog.Ctx(ctx)

	for i, tier := range s.tiers {
		e, err := tier.Get(ctx, fingerprint)
		if err != nil {
			if !errors.Is(err, ErrMiss) {
				log.Warn().Err(err).
					Str("tier", tier.Name()).
					Str("fingerprint", fingerprint).
					Msg("cache tier read failed, treating as miss")
			}
			continue
		}

		s.promote(ctx, e, i)

		// The memory tier hands back its stored pointer, so concurrent
		// lookups share it. Stamp Origin on a copy, never through the
		// cached entry.
		hit := *e
		hit.Origin = tier.Name()
		return &hit, nil
	}
	return nil, ErrMiss
}

// Put writes the entry to every tier. Failures are logged and swallowed; the
// cache is an accelerator, never a correctness dependency.
func (s *Stack) Put(ctx context.Context, e *Entry) {
	log := zerolog.Ctx(ctx)

	for _, tier := range s.tiers {
		if err := tier.Put(ctx, e); err != nil {
			log.Warn().Err(err).
				Str("tier", tier.Name()).
				Str("fingerprint", e.Fingerprint).
				Msg("cache tier write failed")
		}
	}
}

func (s *Stack) promote(ctx context.Context, e *Entry, hitIndex int) {
	log := zerolog.Ctx(ctx)

	for i := 0; i < hitIndex; i++ {
		if err := s.tiers[i].Put(ctx, e); err != nil {
			log.Warn().Err(err).
				Str("tier", s.tiers[i].Name()).
				Str("fingerprint", e.Fingerprint).
				Msg("cache promotion failed")
		}
	}
}
