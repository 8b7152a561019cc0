package cache

import "testing"

func TestLRUEviction(t *testing.T) {
	c := New(2)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3) // evicts "a"

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected a to be evicted")
	}
	for k, want := range map[string]int{"b": 2, "c": 3} {
		v, ok := c.Get(k)
		if !ok || v.(int) != want {
			t.Fatalf("Get(%q) = %v, %v; want %d, true", k, v, ok, want)
		}
	}
}

func TestLRUGetRefreshesRecency(t *testing.T) {
	c := New(2)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a")    // a becomes MRU
	c.Add("c", 3) // should evict b, not a

	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should have survived eviction")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
}

func TestLRUUpdateExisting(t *testing.T) {
	c := New(2)
	c.Add("a", 1)
	c.Add("a", 9)
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	if v, _ := c.Get("a"); v.(int) != 9 {
		t.Fatalf("Get(a) = %v, want 9", v)
	}
}

func TestLRURemoveAndPurge(t *testing.T) {
	c := New(4)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Remove("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("a should be gone after Remove")
	}
	c.Remove("missing") // no-op
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("Len after Purge = %d, want 0", c.Len())
	}
	c.Add("c", 3)
	if v, ok := c.Get("c"); !ok || v.(int) != 3 {
		t.Fatal("cache should be usable after Purge")
	}
}
