package analyzer

import (
	"github.com/mvp-joe/scout/internal/changes"
	"github.com/mvp-joe/scout/internal/structure"
)

// StructurePayload is the stable machine shape of a structure query, shared
// by the --json flag and the MCP tools.
type StructurePayload struct {
	File       string              `json:"file"`
	Language   string              `json:"language"`
	Classes    []structure.Class   `json:"classes"`
	Functions  []structure.Element `json:"functions"`
	Duplicates []Duplicate         `json:"duplicates"`
	Changes    ChangeRollup        `json:"changes"`
}

// ChangeRollup pairs the tracker state with the whole-file change summary.
type ChangeRollup struct {
	State   changes.State   `json:"state"`
	Summary changes.Summary `json:"summary"`
}

// DuplicatesPayload is the stable machine shape of a duplicates query.
type DuplicatesPayload struct {
	File       string      `json:"file"`
	Duplicates []Duplicate `json:"duplicates"`
}

// Duplicate is one duplicated qualified name with its occurrence locations
// resolved to declaration lines.
type Duplicate struct {
	QualifiedName string       `json:"qualified_name"`
	Count         int          `json:"count"`
	Occurrences   []Occurrence `json:"occurrences"`
}

// Occurrence locates one definition of a duplicated name.
type Occurrence struct {
	Line      int    `json:"line"`
	Container string `json:"container,omitempty"`
}

// ChangesPayload is the stable machine shape of a changes query.
type ChangesPayload struct {
	State   changes.State   `json:"state"`
	Lines   []LineTag       `json:"lines"`
	Summary changes.Summary `json:"summary"`
}

// LineTag is one tagged line in a changes payload.
type LineTag struct {
	Line int         `json:"line"`
	Tag  changes.Tag `json:"tag"`
}

// StructurePayload builds the whole-file machine shape.
func (r *Result) StructurePayload() StructurePayload {
	return StructurePayload{
		File:       r.Path,
		Language:   r.Language,
		Classes:    r.Inventory.Classes,
		Functions:  r.Inventory.Functions(),
		Duplicates: r.duplicateEntries(),
		Changes:    ChangeRollup{State: r.State, Summary: r.Summary()},
	}
}

// DuplicatesPayload builds the machine shape of a duplicates query.
func (r *Result) DuplicatesPayload() DuplicatesPayload {
	return DuplicatesPayload{File: r.Path, Duplicates: r.duplicateEntries()}
}

// duplicateEntries resolves each duplicate group's occurrences to
// declaration lines and containers.
func (r *Result) duplicateEntries() []Duplicate {
	groups := r.Duplicates()
	payload := make([]Duplicate, 0, len(groups))
	for _, g := range groups {
		occ := make([]Occurrence, 0, g.Count())
		for _, idx := range g.Occurrences {
			el := r.Inventory.Elements[idx]
			occ = append(occ, Occurrence{Line: el.DeclarationLine, Container: el.Container})
		}
		payload = append(payload, Duplicate{
			QualifiedName: g.QualifiedName,
			Count:         g.Count(),
			Occurrences:   occ,
		})
	}
	return payload
}

// ChangesPayload builds the machine shape of the per-line change map, lines
// in ascending order.
func (r *Result) ChangesPayload() ChangesPayload {
	lines := make([]LineTag, 0, len(r.Changes))
	for _, n := range r.Changes.Lines() {
		tag, _ := r.Changes.Tag(n)
		lines = append(lines, LineTag{Line: n, Tag: tag})
	}
	return ChangesPayload{
		State:   r.State,
		Lines:   lines,
		Summary: r.Summary(),
	}
}
