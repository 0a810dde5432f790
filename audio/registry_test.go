// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"sync"
	"testing"
)

func TestSoundRegistry(t *testing.T) {
	t.Parallel()

	r := NewSoundRegistry()
	if _, ok := r.Get("click"); ok {
		t.Fatal("Get() on empty registry found a sound")
	}

	first := &Sound{ID: "click", Buffer: &PlaybackBuffer{Format: cd}}
	r.Set("click", first)
	if got, ok := r.Get("click"); !ok || got != first {
		t.Errorf("Get() = %v, %v; want first sound", got, ok)
	}

	second := &Sound{ID: "click", Buffer: &PlaybackBuffer{Format: cd}}
	r.Set("click", second)
	if got, _ := r.Get("click"); got != second {
		t.Error("Set() did not replace the previous sound")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	r.Set("click", nil)
	if _, ok := r.Get("click"); ok {
		t.Error("Set(nil) did not remove the sound")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestSoundRegistry_IDs(t *testing.T) {
	t.Parallel()

	r := NewSoundRegistry()
	for _, id := range []SoundID{"zap", "boom", "click"} {
		r.Set(id, &Sound{ID: id})
	}

	ids := r.IDs()
	want := []SoundID{"boom", "click", "zap"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestSoundRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewSoundRegistry()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			id := fmt.Sprintf("sound-%d", i%4)
			for range 100 {
				r.Set(id, &Sound{ID: id})
				r.Get(id)
				r.Len()
			}
		}()
	}
	wg.Wait()

	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
}

func TestSound_Format(t *testing.T) {
	t.Parallel()

	s := &Sound{Buffer: &PlaybackBuffer{Format: cd}}
	if s.Format() != cd {
		t.Errorf("Format() = %v, want %v", s.Format(), cd)
	}
}
