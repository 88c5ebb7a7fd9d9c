package vcard

// EmptyCategoryLabel is the sentinel group for contacts that carry no
// category tag, so nothing disappears from the review screen.
const EmptyCategoryLabel = "Empty category"

// GroupEntry pairs a contact with its original index in the parsed batch.
// The index is what the confirm round trip keys edits by.
type GroupEntry struct {
	Index   int     `json:"index"`
	Contact Contact `json:"contact"`
}

// GroupByCategory partitions contacts into named groups by category tag,
// preserving batch order inside each group. A contact with several category
// tags appears once per tag; a contact with none lands in the sentinel
// group. Empty input yields an empty map.
func GroupByCategory(contacts []Contact) map[string][]GroupEntry {
	groups := make(map[string][]GroupEntry)

	for i, contact := range contacts {
		categories := contact.Categories
		if len(categories) == 0 {
			categories = []string{EmptyCategoryLabel}
		}
		for _, cat := range categories {
			if cat == "" {
				cat = EmptyCategoryLabel
			}
			groups[cat] = append(groups[cat], GroupEntry{Index: i, Contact: contact})
		}
	}

	return groups
}
