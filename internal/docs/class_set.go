package docs

import (
	"cmp"
	"slices"
	"sync"
)

// ClassSet collects class definitions from many files. It is safe for
// concurrent use. Classes added to the set take over its root path.
type ClassSet struct {
	mu       sync.RWMutex
	rootPath string
	classes  []*ClassDefinition
}

// NewClassSet creates an empty set whose classes are relative to rootPath.
func NewClassSet(rootPath string) *ClassSet {
	return &ClassSet{rootPath: rootPath}
}

// RootPath returns the path classes are rendered relative to.
func (s *ClassSet) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

// SetRootPath changes the root path of the set and of every class in it.
func (s *ClassSet) SetRootPath(rootPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rootPath = rootPath
	for _, c := range s.classes {
		c.RootPath = rootPath
	}
}

// Add stores classes in the set. Adding a class already present is a no-op.
func (s *ClassSet) Add(classes ...*ClassDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range classes {
		if c == nil || slices.Contains(s.classes, c) {
			continue
		}
		c.RootPath = s.rootPath
		s.classes = append(s.classes, c)
	}
}

// ReplaceFile drops every class of filePath and stores classes instead.
func (s *ClassSet) ReplaceFile(filePath string, classes []*ClassDefinition) {
	s.mu.Lock()
	s.classes = slices.DeleteFunc(s.classes, func(c *ClassDefinition) bool {
		return c.FilePath == filePath
	})
	s.mu.Unlock()

	s.Add(classes...)
}

// HasClass reports whether a class with the given name exists.
func (s *ClassSet) HasClass(name string) bool {
	return s.Class(name) != nil
}

// Class returns the first class with the given name, in Classes order, or
// nil. Anonymous classes cannot be looked up by name.
func (s *ClassSet) Class(name string) *ClassDefinition {
	if name == AnonymousName {
		return nil
	}
	for _, c := range s.Classes() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// RemoveClass removes the first class with the given name and reports
// whether one was found.
func (s *ClassSet) RemoveClass(name string) bool {
	target := s.Class(name)
	if target == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.classes, target)
	if i < 0 {
		return false
	}
	s.classes = slices.Delete(s.classes, i, i+1)
	return true
}

// Classes returns the classes ordered by file path and position.
func (s *ClassSet) Classes() []*ClassDefinition {
	s.mu.RLock()
	out := append([]*ClassDefinition{}, s.classes...)
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b *ClassDefinition) int {
		return cmp.Or(
			cmp.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
		)
	})
	return out
}

// InFile returns the classes declared in filePath.
func (s *ClassSet) InFile(filePath string) []*ClassDefinition {
	var out []*ClassDefinition
	for _, c := range s.Classes() {
		if c.FilePath == filePath {
			out = append(out, c)
		}
	}
	return out
}

// Files returns the distinct file paths of the set, sorted.
func (s *ClassSet) Files() []string {
	var files []string
	for _, c := range s.Classes() {
		if len(files) == 0 || files[len(files)-1] != c.FilePath {
			files = append(files, c.FilePath)
		}
	}
	return files
}

// Len returns the number of classes in the set.
func (s *ClassSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.classes)
}
