package scan

import "strings"

// IsRelevant reports whether a file entry is worth offering to the model for
// documentation analysis: an allow-listed extension, a well-known name
// fragment, or no extension at all (Dockerfile, LICENSE and friends).
func (p *Policy) IsRelevant(e Entry) bool {
	if e.Kind != KindFile {
		return false
	}
	ext := Ext(e.Path)
	if ext == "" {
		return true
	}
	if _, ok := p.allowExts[ext]; ok {
		return true
	}
	lower := strings.ToLower(e.Name)
	for _, marker := range p.nameMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// FilterRelevant narrows a scanned list to relevant files, preserving order.
func (p *Policy) FilterRelevant(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if p.IsRelevant(e) {
			out = append(out, e)
		}
	}
	return out
}
