package xl

import "testing"

func TestSharedStringsDedup(t *testing.T) {
	ss := newSharedStrings()
	i1 := ss.GetOrCreateIndex("hello")
	i2 := ss.GetOrCreateIndex("world")
	i3 := ss.GetOrCreateIndex("hello")
	if i1 != i3 {
		t.Errorf("duplicate insert returned a different index: %d vs %d", i1, i3)
	}
	if i1 == i2 {
		t.Error("distinct strings got the same index")
	}
	if ss.Count() != 2 {
		t.Errorf("Count() = %d, want 2", ss.Count())
	}
}

func TestSharedStringsGet(t *testing.T) {
	ss := newSharedStrings()
	i := ss.GetOrCreateIndex("foo")
	v, ok := ss.Get(i)
	if !ok || v != "foo" {
		t.Errorf("Get(%d) = (%q,%v), want (\"foo\",true)", i, v, ok)
	}
	if _, ok := ss.Get(99); ok {
		t.Error("Get out of range should report false")
	}
}

func TestSharedStringsClearKeepsIndexStable(t *testing.T) {
	ss := newSharedStrings()
	i1 := ss.GetOrCreateIndex("a")
	i2 := ss.GetOrCreateIndex("b")
	ss.Clear(i1)

	v, ok := ss.Get(i1)
	if !ok || v != "" {
		t.Errorf("Get after Clear = (%q,%v), want (\"\",true): the slot must stay reserved", v, ok)
	}
	if ss.Exists("a") {
		t.Error("cleared string should no longer be found by Exists")
	}
	// i2 must still resolve correctly; Clear(i1) must not have shifted it.
	v2, ok := ss.Get(i2)
	if !ok || v2 != "b" {
		t.Errorf("Get(i2) after clearing i1 = (%q,%v), want (\"b\",true)", v2, ok)
	}
	if ss.Count() != 2 {
		t.Errorf("Count() after Clear = %d, want 2 (slot retained)", ss.Count())
	}
}

func TestSharedStringsReinsertAfterClear(t *testing.T) {
	ss := newSharedStrings()
	i1 := ss.GetOrCreateIndex("a")
	ss.Clear(i1)
	i2 := ss.GetOrCreateIndex("a")
	if i2 == i1 {
		t.Error("re-inserting a cleared string should allocate a fresh slot, not reuse the cleared one silently")
	}
}
