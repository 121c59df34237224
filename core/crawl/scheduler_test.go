package crawl

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/siherrmann/wikigraph/checkpoint"
	"github.com/siherrmann/wikigraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProcessor is a mock implementation of EntityProcessor for testing
type MockProcessor struct {
	mu    sync.Mutex
	lists map[string]model.LinkList
	errs  map[string]error
	calls []string
}

func NewMockProcessor() *MockProcessor {
	return &MockProcessor{
		lists: map[string]model.LinkList{},
		errs:  map[string]error{},
	}
}

func (m *MockProcessor) Process(ctx context.Context, entity string) (model.LinkList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, entity)
	if err := m.errs[entity]; err != nil {
		return nil, err
	}
	links, ok := m.lists[entity]
	if !ok {
		// Unknown page behaves like a missing page
		return model.LinkList{}, nil
	}
	return links, nil
}

func (m *MockProcessor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestNewScheduler(t *testing.T) {
	t.Run("Valid call NewScheduler", func(t *testing.T) {
		scheduler, err := NewScheduler(NewMockProcessor(), checkpoint.NewMemoryStore(), 1, nil)
		assert.NoError(t, err)
		require.NotNil(t, scheduler)
	})

	t.Run("Invalid call NewScheduler with nil processor", func(t *testing.T) {
		_, err := NewScheduler(nil, checkpoint.NewMemoryStore(), 1, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "entity processor is nil")
	})

	t.Run("Invalid call NewScheduler with nil store", func(t *testing.T) {
		_, err := NewScheduler(NewMockProcessor(), nil, 1, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "checkpoint store is nil")
	})

	t.Run("Non-positive worker count falls back to sequential", func(t *testing.T) {
		scheduler, err := NewScheduler(NewMockProcessor(), checkpoint.NewMemoryStore(), 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, scheduler.workers)
	})
}

func TestSchedulerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Seed and frontier are processed and checkpointed", func(t *testing.T) {
		processor := NewMockProcessor()
		processor.lists["AI"] = model.LinkList{
			{Name: "Bob", Gender: model.GenderMale},
			{Name: "Alice", Gender: model.GenderFemale},
		}
		processor.lists["Alice"] = model.LinkList{{Name: "Carol", Gender: model.GenderFemale}}
		processor.lists["Bob"] = model.LinkList{}

		store := checkpoint.NewMemoryStore()
		scheduler, err := NewScheduler(processor, store, 1, nil)
		require.NoError(t, err)

		result, err := scheduler.Run(ctx, "AI")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "AI", result.Seed)

		for _, entity := range []string{"AI", "Alice", "Bob"} {
			has, err := store.Has(entity)
			require.NoError(t, err)
			assert.True(t, has, "Expected checkpoint for %s", entity)
		}
	})

	t.Run("Frontier is sorted lexicographically", func(t *testing.T) {
		processor := NewMockProcessor()
		processor.lists["AI"] = model.LinkList{
			{Name: "Carol", Gender: model.GenderFemale},
			{Name: "Alice", Gender: model.GenderFemale},
			{Name: "Bob", Gender: model.GenderMale},
		}

		scheduler, err := NewScheduler(processor, checkpoint.NewMemoryStore(), 1, nil)
		require.NoError(t, err)

		result, err := scheduler.Run(ctx, "AI")
		require.NoError(t, err)
		require.Len(t, result.Frontier, 3)
		assert.Equal(t, "Alice", result.Frontier[0].Name)
		assert.Equal(t, "Bob", result.Frontier[1].Name)
		assert.Equal(t, "Carol", result.Frontier[2].Name)
	})

	t.Run("Second run performs zero additional fetches", func(t *testing.T) {
		processor := NewMockProcessor()
		processor.lists["AI"] = model.LinkList{{Name: "Alice", Gender: model.GenderFemale}}
		processor.lists["Alice"] = model.LinkList{}

		store := checkpoint.NewMemoryStore()
		scheduler, err := NewScheduler(processor, store, 1, nil)
		require.NoError(t, err)

		_, err = scheduler.Run(ctx, "AI")
		require.NoError(t, err)
		firstRunCalls := processor.callCount()

		result, err := scheduler.Run(ctx, "AI")
		require.NoError(t, err)
		assert.Equal(t, firstRunCalls, processor.callCount(), "Expected no additional fetches on the second run")
		require.Len(t, result.Frontier, 1, "Expected the frontier to be loaded from the checkpoint")
		assert.Equal(t, "Alice", result.Frontier[0].Name)
	})

	t.Run("Only one level of breadth is expanded", func(t *testing.T) {
		processor := NewMockProcessor()
		processor.lists["AI"] = model.LinkList{{Name: "Alice", Gender: model.GenderFemale}}
		processor.lists["Alice"] = model.LinkList{{Name: "Carol", Gender: model.GenderFemale}}
		processor.lists["Carol"] = model.LinkList{{Name: "Dave", Gender: model.GenderMale}}

		store := checkpoint.NewMemoryStore()
		scheduler, err := NewScheduler(processor, store, 1, nil)
		require.NoError(t, err)

		_, err = scheduler.Run(ctx, "AI")
		require.NoError(t, err)

		has, err := store.Has("Carol")
		require.NoError(t, err)
		assert.False(t, has, "Expected persons discovered within a person's list to not be expanded")
	})

	t.Run("Frontier gender is first-write-wins", func(t *testing.T) {
		processor := NewMockProcessor()
		processor.lists["AI"] = model.LinkList{
			{Name: "Robin", Gender: model.GenderMale},
			{Name: "Robin", Gender: model.GenderFemale},
		}

		scheduler, err := NewScheduler(processor, checkpoint.NewMemoryStore(), 1, nil)
		require.NoError(t, err)

		result, err := scheduler.Run(ctx, "AI")
		require.NoError(t, err)
		require.Len(t, result.Frontier, 1)
		assert.Equal(t, model.GenderMale, result.Frontier[0].Gender)
	})

	t.Run("Processing errors are propagated and progress survives", func(t *testing.T) {
		processor := NewMockProcessor()
		processor.lists["AI"] = model.LinkList{
			{Name: "Alice", Gender: model.GenderFemale},
			{Name: "Bob", Gender: model.GenderMale},
		}
		processor.lists["Alice"] = model.LinkList{}
		processor.errs["Bob"] = fmt.Errorf("api unreachable")

		store := checkpoint.NewMemoryStore()
		scheduler, err := NewScheduler(processor, store, 1, nil)
		require.NoError(t, err)

		_, err = scheduler.Run(ctx, "AI")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api unreachable")

		// Already processed entities stay checkpointed
		has, err := store.Has("Alice")
		require.NoError(t, err)
		assert.True(t, has)

		// A rerun after the failure resumes instead of restarting
		delete(processor.errs, "Bob")
		processor.lists["Bob"] = model.LinkList{}
		callsBefore := processor.callCount()

		_, err = scheduler.Run(ctx, "AI")
		require.NoError(t, err)
		assert.Equal(t, callsBefore+1, processor.callCount(), "Expected only the failed entity to be refetched")
	})

	t.Run("Empty seed is rejected", func(t *testing.T) {
		scheduler, err := NewScheduler(NewMockProcessor(), checkpoint.NewMemoryStore(), 1, nil)
		require.NoError(t, err)

		_, err = scheduler.Run(ctx, "   ")
		assert.Error(t, err)
	})

	t.Run("Bounded worker pool processes the whole frontier", func(t *testing.T) {
		processor := NewMockProcessor()
		frontier := model.LinkList{}
		for i := 0; i < 20; i++ {
			name := fmt.Sprintf("Person %02d", i)
			frontier = append(frontier, model.PersonRecord{Name: name, Gender: model.GenderUnknown})
			processor.lists[name] = model.LinkList{}
		}
		processor.lists["AI"] = frontier

		store := checkpoint.NewMemoryStore()
		scheduler, err := NewScheduler(processor, store, 4, nil)
		require.NoError(t, err)

		result, err := scheduler.Run(ctx, "AI")
		require.NoError(t, err)
		assert.Len(t, result.Frontier, 20)

		for _, person := range result.Frontier {
			has, err := store.Has(person.Name)
			require.NoError(t, err)
			assert.True(t, has, "Expected checkpoint for %s", person.Name)
		}
	})
}

func TestBuildFrontier(t *testing.T) {
	t.Run("Blank names are dropped", func(t *testing.T) {
		frontier := buildFrontier(model.LinkList{
			{Name: "  ", Gender: model.GenderUnknown},
			{Name: "Alice", Gender: model.GenderFemale},
		})
		require.Len(t, frontier, 1)
		assert.Equal(t, "Alice", frontier[0].Name)
	})

	t.Run("Empty list yields empty frontier", func(t *testing.T) {
		assert.Empty(t, buildFrontier(model.LinkList{}))
	})
}
