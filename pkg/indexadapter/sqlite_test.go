package indexadapter

import "testing"

type sqliteDoc struct {
	Title string `json:"title"`
}

func TestSQLitePutGet(t *testing.T) {
	idx, err := NewSQLite[sqliteDoc]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer idx.Close()

	if err := idx.Put(1, sqliteDoc{Title: "hello"}, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, ok := idx.Get(1)
	if !ok || item.Title != "hello" {
		t.Fatalf("expected hello, got %+v ok=%v", item, ok)
	}
}

func TestSQLiteRemove(t *testing.T) {
	idx, err := NewSQLite[sqliteDoc]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer idx.Close()

	idx.Put(1, sqliteDoc{Title: "x"}, []float32{1, 0}, []string{"tag"})
	if err := idx.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := idx.Get(1); ok {
		t.Fatalf("expected item removed")
	}
}

func TestSQLiteKNNOrdersByDistance(t *testing.T) {
	idx, err := NewSQLite[sqliteDoc]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer idx.Close()

	idx.Put(1, sqliteDoc{Title: "near"}, []float32{1, 0}, nil)
	idx.Put(2, sqliteDoc{Title: "far"}, []float32{10, 0}, nil)

	neighbors := idx.KNN([]float32{0, 0}, 5)
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(neighbors))
	}
	if neighbors[0].ID != 1 {
		t.Fatalf("expected nearest first, got %+v", neighbors)
	}
}

func TestSQLiteAll(t *testing.T) {
	idx, err := NewSQLite[sqliteDoc]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer idx.Close()

	idx.Put(1, sqliteDoc{Title: "a"}, nil, nil)
	idx.Put(2, sqliteDoc{Title: "b"}, nil, nil)
	items := idx.All()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}
