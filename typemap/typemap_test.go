package typemap

import (
	"reflect"
	"strings"
	"testing"
)

type widget struct {
	ID int
}

type gadget struct {
	Name string
}

// TestTypeMap_SetGet tests basic storage and retrieval.
func TestTypeMap_SetGet(t *testing.T) {
	m := New()
	key := reflect.TypeFor[widget]()

	if m.Contains(key) {
		t.Error("empty map should not contain key")
	}

	m.Set(key, widget{ID: 7})

	if !m.Contains(key) {
		t.Error("map should contain key after Set")
	}

	raw, ok := m.Get(key)
	if !ok {
		t.Fatal("Get returned miss after Set")
	}
	if w := raw.(widget); w.ID != 7 {
		t.Errorf("Get returned %+v, want ID 7", w)
	}
}

// TestTypeMap_ZeroValue verifies the zero value is usable.
func TestTypeMap_ZeroValue(t *testing.T) {
	var m TypeMap
	key := reflect.TypeFor[widget]()

	if m.Contains(key) {
		t.Error("zero map should not contain key")
	}
	if _, ok := m.Get(key); ok {
		t.Error("zero map Get should miss")
	}
	m.Delete(key) // must not panic

	m.Set(key, widget{ID: 1})
	if !m.Contains(key) {
		t.Error("zero map should accept Set")
	}
}

// TestTypeMap_Overwrite verifies Set replaces a prior entry.
func TestTypeMap_Overwrite(t *testing.T) {
	m := New()
	key := reflect.TypeFor[widget]()

	m.Set(key, widget{ID: 1})
	m.Set(key, widget{ID: 2})

	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	raw, _ := m.Get(key)
	if w := raw.(widget); w.ID != 2 {
		t.Errorf("overwrite kept %+v, want ID 2", w)
	}
}

// TestTypeMap_Delete verifies Delete removes entries and is idempotent.
func TestTypeMap_Delete(t *testing.T) {
	m := New()
	key := reflect.TypeFor[widget]()

	m.Set(key, widget{ID: 1})
	m.Delete(key)

	if m.Contains(key) {
		t.Error("map should not contain key after Delete")
	}

	m.Delete(key) // idempotent - no panic, no error
}

// TestTypeMap_DistinctKeys verifies one entry per key type.
func TestTypeMap_DistinctKeys(t *testing.T) {
	m := New()
	wkey := reflect.TypeFor[widget]()
	gkey := reflect.TypeFor[gadget]()

	m.Set(wkey, widget{ID: 1})
	m.Set(gkey, gadget{Name: "g"})

	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}

	raw, _ := m.Get(wkey)
	if _, ok := raw.(widget); !ok {
		t.Errorf("widget key holds %T", raw)
	}
	raw, _ = m.Get(gkey)
	if _, ok := raw.(gadget); !ok {
		t.Errorf("gadget key holds %T", raw)
	}
}

// TestTypeMap_Keys verifies deterministic key listing.
func TestTypeMap_Keys(t *testing.T) {
	m := New()
	m.Set(reflect.TypeFor[widget](), widget{})
	m.Set(reflect.TypeFor[gadget](), gadget{})

	keys := m.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys returned %d entries, want 2", len(keys))
	}
	if keys[0].String() > keys[1].String() {
		t.Errorf("Keys not sorted: %v", keys)
	}
}

// TestValue_Hit tests typed recovery of a stored payload.
func TestValue_Hit(t *testing.T) {
	m := New()
	key := reflect.TypeFor[widget]()
	m.Set(key, widget{ID: 42})

	w, ok := Value[widget](m, key)
	if !ok {
		t.Fatal("Value missed a present entry")
	}
	if w.ID != 42 {
		t.Errorf("Value = %+v, want ID 42", w)
	}
}

// TestValue_Miss tests typed recovery of an absent key.
func TestValue_Miss(t *testing.T) {
	m := New()

	w, ok := Value[widget](m, reflect.TypeFor[widget]())
	if ok {
		t.Error("Value reported hit on empty map")
	}
	if w != (widget{}) {
		t.Errorf("Value miss returned %+v, want zero value", w)
	}
}

// TestValue_MismatchPanics verifies the fail-fast on identifier/payload mismatch.
func TestValue_MismatchPanics(t *testing.T) {
	m := New()
	key := reflect.TypeFor[widget]()
	// Deliberately violate the insertion discipline.
	m.Set(key, gadget{Name: "wrong"})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Value did not panic on payload mismatch")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "typemap:") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	_, _ = Value[widget](m, key)
}
