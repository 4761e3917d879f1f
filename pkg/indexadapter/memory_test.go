package indexadapter

import "testing"

func TestMemoryPutGet(t *testing.T) {
	idx := NewMemory[string]()
	if err := idx.Put(1, "alpha", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, ok := idx.Get(1)
	if !ok || item != "alpha" {
		t.Fatalf("expected alpha, got %q ok=%v", item, ok)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	idx := NewMemory[string]()
	if _, ok := idx.Get(42); ok {
		t.Fatalf("expected missing id to return ok=false")
	}
}

func TestMemoryRemove(t *testing.T) {
	idx := NewMemory[string]()
	idx.Put(1, "alpha", []float32{1, 0}, []string{"x"})
	if err := idx.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := idx.Get(1); ok {
		t.Fatalf("expected item removed")
	}
	if neighbors := idx.KNN([]float32{1, 0}, 5); len(neighbors) != 0 {
		t.Fatalf("expected vector removed too, got %v", neighbors)
	}
}

func TestMemoryKNNOrdersByDistance(t *testing.T) {
	idx := NewMemory[string]()
	idx.Put(1, "near", []float32{1, 0}, nil)
	idx.Put(2, "far", []float32{10, 0}, nil)
	idx.Put(3, "mid", []float32{3, 0}, nil)

	neighbors := idx.KNN([]float32{0, 0}, 2)
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(neighbors))
	}
	if neighbors[0].ID != 1 || neighbors[1].ID != 3 {
		t.Fatalf("expected ordering [1,3], got %+v", neighbors)
	}
}

func TestMemoryAll(t *testing.T) {
	idx := NewMemory[string]()
	idx.Put(1, "a", nil, nil)
	idx.Put(2, "b", nil, nil)
	items := idx.All()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestMemoryPutOverwrites(t *testing.T) {
	idx := NewMemory[string]()
	idx.Put(1, "first", nil, nil)
	idx.Put(1, "second", nil, nil)
	item, ok := idx.Get(1)
	if !ok || item != "second" {
		t.Fatalf("expected overwritten value, got %q", item)
	}
}
