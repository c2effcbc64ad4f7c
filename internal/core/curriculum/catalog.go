package curriculum

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of the catalog YAML.
type catalogFile struct {
	Courses []Course `yaml:"courses"`
}

// LoadCatalog reads and validates a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	catalog := NewCatalog(file.Courses)
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return catalog, nil
}

// Validate checks structural catalog invariants: IDs are required and
// unique, and a course may not require itself. Unknown requirement
// references and cycles are deliberately warnings, not errors — the
// engine handles both by keeping the affected courses locked.
func (c *Catalog) Validate() error {
	var errs criterio.FieldErrorsBuilder

	seen := make(map[string]bool, len(c.courses))
	for i, course := range c.courses {
		field := fmt.Sprintf("courses[%d]", i)

		if strings.TrimSpace(course.ID) == "" {
			errs = errs.Append(field+".id", fmt.Errorf("id is required"))
			continue
		}
		if seen[course.ID] {
			errs = errs.Append(field+".id", fmt.Errorf("duplicate course id %q", course.ID))
		}
		seen[course.ID] = true

		for _, req := range course.Requires {
			if req == course.ID {
				errs = errs.Append(field+".requires", fmt.Errorf("course %q requires itself", course.ID))
			}
		}
	}

	return errs.ToError()
}

// ValidationWarning represents a non-fatal catalog issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Warnings returns non-fatal catalog diagnostics: requirement
// references to IDs missing from the catalog (the course can never
// unlock until the catalog is corrected) and requirement cycles (every
// course in the cycle stays permanently locked).
func (c *Catalog) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, course := range c.courses {
		for _, req := range course.Requires {
			if !c.Has(req) {
				warnings = append(warnings, ValidationWarning{
					Category: "Requirements",
					Item:     course.ID,
					Message:  fmt.Sprintf("requires unknown course %q; this course can never unlock", req),
				})
			}
		}
	}

	for _, cycle := range c.cycles() {
		warnings = append(warnings, ValidationWarning{
			Category: "Cycles",
			Item:     cycle[0],
			Message:  fmt.Sprintf("requirement cycle: %s; these courses can never unlock", strings.Join(cycle, " -> ")),
		})
	}

	return warnings
}

// cycles finds requirement cycles among known courses via depth-first
// search. Edges to unknown IDs are skipped; they are reported
// separately as unknown-reference warnings.
func (c *Catalog) cycles() [][]string {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)

	state := make(map[string]int, len(c.courses))
	var found [][]string

	var visit func(id string, path []string)
	visit = func(id string, path []string) {
		state[id] = inStack
		path = append(path, id)

		course, _ := c.Get(id)
		for _, req := range course.Requires {
			if !c.Has(req) {
				continue
			}
			switch state[req] {
			case unvisited:
				visit(req, path)
			case inStack:
				// Trim the path to the cycle's entry point.
				for i, seen := range path {
					if seen == req {
						cycle := append(append([]string{}, path[i:]...), req)
						found = append(found, cycle)
						break
					}
				}
			}
		}

		state[id] = done
	}

	for _, course := range c.courses {
		if state[course.ID] == unvisited {
			visit(course.ID, nil)
		}
	}

	return found
}
