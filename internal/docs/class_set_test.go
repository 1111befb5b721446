package docs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for ClassSet:
// - Add stores classes once and hands them the set's root path
// - Classes are ordered by file, line and column
// - ReplaceFile swaps every class of one file
// - Class and RemoveClass work by name and skip anonymous classes
// - Files lists each file once
// - Concurrent adds are safe

func TestClassSet_AddAndOrder(t *testing.T) {
	t.Parallel()

	set := NewClassSet("/root")
	b := &ClassDefinition{Name: "B", FilePath: "/root/b.js", Line: 1}
	a2 := &ClassDefinition{Name: "A2", FilePath: "/root/a.js", Line: 10}
	a1 := &ClassDefinition{Name: "A1", FilePath: "/root/a.js", Line: 2}

	set.Add(b, a2, a1, nil)
	set.Add(a1)

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, []*ClassDefinition{a1, a2, b}, set.Classes())
	assert.Equal(t, "/root", a1.RootPath)
	assert.Equal(t, []string{"/root/a.js", "/root/b.js"}, set.Files())
	assert.Equal(t, []*ClassDefinition{a1, a2}, set.InFile("/root/a.js"))

	set.SetRootPath("/other")
	assert.Equal(t, "/other", set.RootPath())
	assert.Equal(t, "/other", b.RootPath)
}

func TestClassSet_EmptyClassesIsNotNil(t *testing.T) {
	t.Parallel()

	set := NewClassSet("")
	assert.NotNil(t, set.Classes())
	assert.Empty(t, set.Classes())
	assert.Empty(t, set.Files())
}

func TestClassSet_ReplaceFile(t *testing.T) {
	t.Parallel()

	set := NewClassSet("")
	old := &ClassDefinition{Name: "Old", FilePath: "a.js"}
	keep := &ClassDefinition{Name: "Keep", FilePath: "b.js"}
	set.Add(old, keep)

	fresh := &ClassDefinition{Name: "Fresh", FilePath: "a.js"}
	set.ReplaceFile("a.js", []*ClassDefinition{fresh})

	assert.False(t, set.HasClass("Old"))
	assert.Same(t, fresh, set.Class("Fresh"))
	assert.Same(t, keep, set.Class("Keep"))

	set.ReplaceFile("a.js", nil)
	assert.Equal(t, []*ClassDefinition{keep}, set.Classes())
}

func TestClassSet_ClassByName(t *testing.T) {
	t.Parallel()

	set := NewClassSet("")
	first := &ClassDefinition{Name: "Dup", FilePath: "a.js"}
	second := &ClassDefinition{Name: "Dup", FilePath: "b.js"}
	anon := &ClassDefinition{Name: AnonymousName, FilePath: "c.js"}
	set.Add(second, first, anon)

	assert.Same(t, first, set.Class("Dup"))
	assert.Nil(t, set.Class(AnonymousName))
	assert.False(t, set.HasClass("Missing"))

	assert.True(t, set.RemoveClass("Dup"))
	assert.Same(t, second, set.Class("Dup"))
	assert.False(t, set.RemoveClass(AnonymousName))
	assert.False(t, set.RemoveClass("Missing"))
	assert.Equal(t, 2, set.Len())
}

func TestClassSet_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	set := NewClassSet("")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set.Add(&ClassDefinition{Name: "C", FilePath: "x.js"})
			_ = set.Classes()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, set.Len())
}
