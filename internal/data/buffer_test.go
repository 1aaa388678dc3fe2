package data

import "testing"

func TestBufferCOWPreservesClone(t *testing.T) {
	a := NewBufferFrom([]float64{1, 2, 3})
	b := a.Clone()

	bw := b.Write()
	bw[0] = 99

	if a.Read()[0] != 1 {
		t.Errorf("mutating the clone changed the original: a[0] = %v, want 1", a.Read()[0])
	}
	if b.Read()[0] != 99 {
		t.Errorf("b[0] = %v, want 99", b.Read()[0])
	}
}

func TestBufferWriteIsNoopCloneWhenUnique(t *testing.T) {
	a := NewBufferFrom([]float64{1, 2, 3})
	if !a.IsUnique() {
		t.Fatal("fresh buffer should be unique")
	}
	w := a.Write()
	w[0] = 5
	if a.Read()[0] != 5 {
		t.Error("write on a unique buffer should mutate in place")
	}
}

func TestSameStorage(t *testing.T) {
	a := NewBufferFrom([]float64{1, 2, 3})
	b := a.Clone()
	if !SameStorage(a, b) {
		t.Error("clone should share storage before any write")
	}
	b.Write()[0] = 42
	if SameStorage(a, b) {
		t.Error("storage should diverge after write on a shared buffer")
	}
}

func TestBufferResize(t *testing.T) {
	a := NewBufferFrom([]float64{1, 2, 3})
	a.Resize(5)
	if a.Len() != 5 {
		t.Errorf("Len() = %d, want 5", a.Len())
	}
	if a.Read()[0] != 1 || a.Read()[2] != 3 || a.Read()[4] != 0 {
		t.Errorf("Resize should preserve existing values and zero-fill growth: %v", a.Read())
	}
}

func TestBufferEqual(t *testing.T) {
	a := NewBufferFrom([]float64{1, 2, 3})
	b := NewBufferFrom([]float64{1, 2, 3})
	cmp := func(x, y float64) bool { return x == y }
	if !a.Equal(b, cmp) {
		t.Error("buffers with equal contents should be Equal")
	}
	b.Write()[0] = 9
	if a.Equal(b, cmp) {
		t.Error("buffers with differing contents should not be Equal")
	}
}
