// Package curriculum defines the course catalog, the derived status model,
// and the prerequisite engine that validates and applies toggle requests.
package curriculum

import "sort"

// Status represents the derived completion state of a course.
// It is never stored; it is recomputed from the catalog and the
// completed set on every evaluation.
type Status string

const (
	// StatusCompleted means the course ID is in the completed set.
	StatusCompleted Status = "completed"
	// StatusLocked means the course has at least one unmet requirement.
	StatusLocked Status = "locked"
	// StatusAvailable means the course is not completed and every
	// requirement (possibly none) is satisfied.
	StatusAvailable Status = "available"
)

// Course is a single unit in the curriculum.
//
// Courses and their requirement lists are immutable configuration,
// supplied once at startup from the catalog file. Requirement lists
// may reference IDs missing from the catalog; such requirements can
// never be satisfied and keep the course locked until the catalog is
// corrected.
type Course struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Semester int      `json:"semester,omitempty" yaml:"semester"`
	Credits  int      `json:"credits,omitempty" yaml:"credits"`
	Requires []string `json:"requires,omitempty" yaml:"requires"`
}

// Label returns the display name for the course, falling back to the
// ID when no name is configured.
func (c Course) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Catalog holds the curriculum's courses in declaration order with an
// ID index for lookups. Build one with NewCatalog and treat it as
// read-only afterwards.
type Catalog struct {
	courses []Course
	index   map[string]int
}

// NewCatalog builds a catalog from courses, preserving declaration
// order. Duplicate IDs are caught by Validate, not here; the index
// keeps the first occurrence.
func NewCatalog(courses []Course) *Catalog {
	index := make(map[string]int, len(courses))
	for i, course := range courses {
		if _, exists := index[course.ID]; !exists {
			index[course.ID] = i
		}
	}
	return &Catalog{courses: courses, index: index}
}

// Courses returns all courses in declaration order.
func (c *Catalog) Courses() []Course {
	return c.courses
}

// Get returns the course with the given ID.
func (c *Catalog) Get(id string) (Course, bool) {
	i, ok := c.index[id]
	if !ok {
		return Course{}, false
	}
	return c.courses[i], true
}

// Has reports whether the catalog contains the given course ID.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of courses in the catalog.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Label resolves a course ID to its display name. It satisfies
// LabelFunc so the catalog can back the engine's label lookup.
func (c *Catalog) Label(id string) (string, bool) {
	course, ok := c.Get(id)
	if !ok {
		return "", false
	}
	return course.Label(), true
}

// CompletedSet is the set of course IDs the user has marked done.
// It is the only mutable state in the system and is mutated solely
// through the engine's toggle operation.
type CompletedSet map[string]struct{}

// NewCompletedSet builds a set from the given IDs.
func NewCompletedSet(ids ...string) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether the ID is in the set.
func (s CompletedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts the ID into the set.
func (s CompletedSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes the ID from the set.
func (s CompletedSet) Remove(id string) {
	delete(s, id)
}

// IDs returns the members in sorted order for stable serialization.
func (s CompletedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy of the set.
func (s CompletedSet) Clone() CompletedSet {
	clone := make(CompletedSet, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}
