package usage

import "sort"

// Snippet pairs a definition's source text with the source text of each
// sampled usage's enclosing function. This is the unit handed to the rating
// step.
type Snippet struct {
	ID         MethodIdentifier
	FilePath   string
	IsMethod   bool
	Definition string
	Usages     []string
}

// Snippets extracts source text for a usages mapping, sorted by qualified
// name so iteration order is stable even though sampling is not.
func (r *Resolver) Snippets(usages map[MethodPointer][]CallSiteInfo) []Snippet {
	out := make([]Snippet, 0, len(usages))
	for ptr, sites := range usages {
		sn := Snippet{
			ID:         ptr.ID,
			FilePath:   ptr.FilePath,
			IsMethod:   ptr.IsMethod,
			Definition: r.DefinitionText(ptr),
			Usages:     make([]string, 0, len(sites)),
		}
		for _, cs := range sites {
			if text := cs.EnclosingText(); text != "" {
				sn.Usages = append(sn.Usages, text)
			}
		}
		out = append(out, sn)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
