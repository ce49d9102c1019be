package core

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestOriginSet_AddAndSnapshot(t *testing.T) {
	t.Parallel()

	s := NewOriginSet()
	s.Add("https://a.test")
	s.Add("https://b.test")
	s.Add("https://a.test")

	if got := s.Snapshot(); !reflect.DeepEqual(got, []string{"https://a.test", "https://b.test"}) {
		t.Errorf("Snapshot() got %v", got)
	}
	if !s.Has("https://a.test") {
		t.Error("Has() lost an origin")
	}
	if s.Has("https://c.test") {
		t.Error("Has() invented an origin")
	}
	if s.Len() != 2 {
		t.Errorf("Len() got %d, want 2", s.Len())
	}
}

func TestOriginSet_Concurrency(t *testing.T) {
	t.Parallel()

	s := NewOriginSet()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(fmt.Sprintf("https://origin-%d.test", i%10))
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	if s.Len() != 10 {
		t.Errorf("Len() got %d, want 10", s.Len())
	}
}
