package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendAndHistory(t *testing.T) {
	repo := NewSessionRepository(1*time.Hour, 40)

	repo.AppendTurns("s1", "hello", "hi, how can I help?")

	history := repo.History("s1")
	assert.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)

	// A second request on the same session observes the earlier turns
	repo.AppendTurns("s1", "more", "sure")
	assert.Len(t, repo.History("s1"), 4)
}

func TestSessionsAreIsolated(t *testing.T) {
	repo := NewSessionRepository(1*time.Hour, 40)

	repo.AppendTurns("s1", "a", "b")
	repo.AppendTurns("s2", "c", "d")

	assert.Len(t, repo.History("s1"), 2)
	assert.Len(t, repo.History("s2"), 2)
	assert.Equal(t, "a", repo.History("s1")[0].Content)
	assert.Equal(t, "c", repo.History("s2")[0].Content)
}

func TestHistoryUnknownSessionIsEmpty(t *testing.T) {
	repo := NewSessionRepository(1*time.Hour, 40)
	assert.Empty(t, repo.History("missing"))
}

func TestTurnCapDropsOldest(t *testing.T) {
	repo := NewSessionRepository(1*time.Hour, 4)

	repo.AppendTurns("s1", "first", "r1")
	repo.AppendTurns("s1", "second", "r2")
	repo.AppendTurns("s1", "third", "r3")

	history := repo.History("s1")
	assert.Len(t, history, 4)
	assert.Equal(t, "second", history[0].Content, "oldest pair should be dropped")
	assert.Equal(t, "user", history[0].Role, "capped history must still start on a user turn")
}

func TestHistoryReturnsCopy(t *testing.T) {
	repo := NewSessionRepository(1*time.Hour, 40)
	repo.AppendTurns("s1", "a", "b")

	history := repo.History("s1")
	history[0].Content = "mutated"

	assert.Equal(t, "a", repo.History("s1")[0].Content)
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	repo := NewSessionRepository(1*time.Hour, 10000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo.AppendTurns("s1", fmt.Sprintf("msg-%d", i), "reply")
		}(i)
	}
	wg.Wait()

	assert.Len(t, repo.History("s1"), 100)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository(1*time.Hour, 40)
	repo.AppendTurns("s1", "a", "b")
	repo.Delete("s1")
	assert.Empty(t, repo.History("s1"))
}
