package storage

import (
	"sync"
	"testing"

	"github.com/doniyorbek/sher-quiz-bot/internal/domain/entities"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	if _, ok := store.Get(1); ok {
		t.Fatal("expected no session initially")
	}

	sess := entities.NewQuizSession(1, 1)
	store.Put(sess)

	got, ok := store.Get(1)
	if !ok || got != sess {
		t.Fatal("expected stored session back")
	}

	replacement := entities.NewQuizSession(1, 1)
	store.Put(replacement)
	if got, _ := store.Get(1); got != replacement {
		t.Fatal("expected replacement session")
	}

	store.Delete(1)
	if _, ok := store.Get(1); ok {
		t.Fatal("expected session removed")
	}

	// Deleting a missing session is a no-op.
	store.Delete(1)
}

func TestSessionStoreSerializesPerUser(t *testing.T) {
	store := NewSessionStore()
	store.Put(entities.NewQuizSession(1, 1))

	const workers = 8
	const rounds = 100

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				store.Lock(1)
				counter++
				store.Unlock(1)
			}
		}()
	}
	wg.Wait()

	if counter != workers*rounds {
		t.Fatalf("expected %d increments, got %d", workers*rounds, counter)
	}
}
