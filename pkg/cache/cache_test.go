package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryFor(fp string) *Entry {
	return &Entry{
		Fingerprint: fp,
		Kind:        KindProduction,
		Columns: []Column{
			{Name: "power_kw", Values: []float64{0, 1.25, 2.5}},
		},
		Meta:        map[string]string{"tier": "physical"},
		AnnualYield: 1234.5,
	}
}

func TestMemoryTierHitAndMiss(t *testing.T) {
	m := NewMemoryTier(4)
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Put(ctx, entryFor("a")))
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1.25, 2.5}, got.Column("power_kw"))
}

func TestMemoryTierEvictsLeastRecentlyUsed(t *testing.T) {
	m := NewMemoryTier(2)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, entryFor("a")))
	require.NoError(t, m.Put(ctx, entryFor("b")))

	// Touch "a" so "b" becomes the eviction candidate.
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Put(ctx, entryFor("c")))

	_, err = m.Get(ctx, "b")
	require.ErrorIs(t, err, ErrMiss)
	_, err = m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
}

func TestDiskTierRoundTrip(t *testing.T) {
	d, err := NewDiskTier(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	e := entryFor("0123abcd")
	e.Columns = append(e.Columns, Column{Name: "temp_air", Values: []float64{12.5, 13, 14.25}})
	require.NoError(t, d.Put(ctx, e))

	got, err := d.Get(ctx, "0123abcd")
	require.NoError(t, err)
	require.Equal(t, KindProduction, got.Kind)
	require.Equal(t, []float64{0, 1.25, 2.5}, got.Column("power_kw"))
	require.Equal(t, []float64{12.5, 13, 14.25}, got.Column("temp_air"))
	require.Equal(t, "physical", got.Meta["tier"])
	require.InDelta(t, 1234.5, got.AnnualYield, 1e-9)
}

func TestDiskTierMiss(t *testing.T) {
	d, err := NewDiskTier(t.TempDir())
	require.NoError(t, err)

	_, err = d.Get(context.Background(), "unknown")
	require.ErrorIs(t, err, ErrMiss)
}

type failingTier struct{ name string }

func (f *failingTier) Name() string { return f.name }
func (f *failingTier) Get(context.Context, string) (*Entry, error) {
	return nil, fmt.Errorf("tier %s unreachable", f.name)
}
func (f *failingTier) Put(context.Context, *Entry) error {
	return errors.New("tier write refused")
}

func TestStackPromotesHitsUpward(t *testing.T) {
	fast := NewMemoryTier(4)
	slow := NewMemoryTier(4)
	stack := NewStack(fast, slow)
	ctx := context.Background()

	require.NoError(t, slow.Put(ctx, entryFor("fp")))

	got, err := stack.Get(ctx, "fp")
	require.NoError(t, err)
	require.Equal(t, "memory", got.Origin)

	// The hit must now be present in the fast tier too.
	_, err = fast.Get(ctx, "fp")
	require.NoError(t, err)
}

func TestStackGetDoesNotMutateStoredEntry(t *testing.T) {
	m := NewMemoryTier(4)
	stack := NewStack(m)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, entryFor("fp")))

	got, err := stack.Get(ctx, "fp")
	require.NoError(t, err)
	require.Equal(t, "memory", got.Origin)

	// The tier still holds the entry with Origin unset; Get must have
	// stamped a copy, not the cached object.
	stored, err := m.Get(ctx, "fp")
	require.NoError(t, err)
	require.Empty(t, stored.Origin)
}

func TestStackConcurrentGetsShareOneEntry(t *testing.T) {
	m := NewMemoryTier(4)
	stack := NewStack(m)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, entryFor("fp")))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := stack.Get(ctx, "fp")
				if assert.NoError(t, err) {
					assert.Equal(t, "memory", got.Origin)
				}
			}
		}()
	}
	wg.Wait()
}

func TestStackTreatsTierErrorsAsMisses(t *testing.T) {
	healthy := NewMemoryTier(4)
	stack := NewStack(&failingTier{name: "disk"}, healthy)
	ctx := context.Background()

	require.NoError(t, healthy.Put(ctx, entryFor("fp")))

	got, err := stack.Get(ctx, "fp")
	require.NoError(t, err)
	require.Equal(t, "fp", got.Fingerprint)
}

func TestStackMissOnAllTiers(t *testing.T) {
	stack := NewStack(NewMemoryTier(4), &failingTier{name: "store"})

	_, err := stack.Get(context.Background(), "fp")
	require.ErrorIs(t, err, ErrMiss)
}

func TestStackPutIsBestEffort(t *testing.T) {
	healthy := NewMemoryTier(4)
	stack := NewStack(&failingTier{name: "disk"}, healthy)
	ctx := context.Background()

	stack.Put(ctx, entryFor("fp"))

	_, err := healthy.Get(ctx, "fp")
	require.NoError(t, err)
}
