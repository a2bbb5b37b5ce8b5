package resource_test

import (
	"sort"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/litecraft/core/resource"
)

func TestCacheTransitions(t *testing.T) {
	c := qt.New(t)
	cache := resource.NewCache[string, int]()

	c.Assert(cache.Lookup("a").State, qt.Equals, resource.StateAbsent)
	c.Assert(cache.Resolve("a", 1), qt.IsFalse)

	c.Assert(cache.Insert("a"), qt.IsTrue)
	c.Assert(cache.Insert("a"), qt.IsFalse)
	c.Assert(cache.Lookup("a").State, qt.Equals, resource.StatePending)
	_, ok := cache.Get("a")
	c.Assert(ok, qt.IsFalse)

	c.Assert(cache.Resolve("a", 1), qt.IsTrue)
	c.Assert(cache.Resolve("a", 2), qt.IsFalse)
	v, ok := cache.Get("a")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, 1)
	c.Assert(cache.Insert("a"), qt.IsFalse)

	c.Assert(cache.Put("b", 2), qt.IsTrue)
	c.Assert(cache.Put("b", 3), qt.IsFalse)
	c.Assert(cache.Insert("c"), qt.IsTrue)

	c.Assert(cache.Len(), qt.Equals, 3)
	c.Assert(cache.Count(resource.StateReady), qt.Equals, 2)
	c.Assert(cache.Count(resource.StatePending), qt.Equals, 1)

	keys := cache.Keys()
	sort.Strings(keys)
	c.Assert(keys, qt.DeepEquals, []string{"a", "b", "c"})

	ready := map[string]int{}
	cache.Each(func(k string, v int) { ready[k] = v })
	c.Assert(ready, qt.DeepEquals, map[string]int{"a": 1, "b": 2})

	cache.Remove("a")
	c.Assert(cache.Lookup("a").State, qt.Equals, resource.StateAbsent)
	cache.Clear()
	c.Assert(cache.Len(), qt.Equals, 0)
}

func TestStateString(t *testing.T) {
	c := qt.New(t)
	c.Assert(resource.StatePending.String(), qt.Equals, "pending")
	c.Assert(resource.StateReady.String(), qt.Equals, "ready")
	c.Assert(resource.StateAbsent.String(), qt.Equals, "absent")
}
