package tui

import (
	"strings"

	"github.com/stefanpenner/quest/pkg/quest"
)

// Section groups goals in the list.
type Section string

const (
	SectionOpen     Section = "OPEN"
	SectionOngoing  Section = "ONGOING"
	SectionComplete Section = "COMPLETE"
)

var sectionOrder = []Section{SectionOpen, SectionOngoing, SectionComplete}

// ListItem is one row of the goal list: a goal or a section header.
type ListItem struct {
	ID              string
	Name            string
	Goal            quest.Goal
	Section         Section
	IsSectionHeader bool
}

// SectionFor places eternal and negative goals under ONGOING since they never complete.
func SectionFor(g quest.Goal) Section {
	switch {
	case g.Kind() == quest.KindEternal || g.Kind() == quest.KindNegative:
		return SectionOngoing
	case g.Completed():
		return SectionComplete
	default:
		return SectionOpen
	}
}

// BuildItems groups goals under section headers, keeping registry order within a section.
// Empty sections are omitted.
func BuildItems(goals []quest.Goal) []ListItem {
	grouped := make(map[Section][]quest.Goal)
	for _, g := range goals {
		s := SectionFor(g)
		grouped[s] = append(grouped[s], g)
	}

	var result []ListItem
	for _, s := range sectionOrder {
		if len(grouped[s]) == 0 {
			continue
		}
		result = append(result, ListItem{
			ID:              "__header_" + strings.ToLower(string(s)),
			Name:            string(s),
			Section:         s,
			IsSectionHeader: true,
		})
		for _, g := range grouped[s] {
			result = append(result, ListItem{
				ID:      g.Name(),
				Name:    g.Name(),
				Goal:    g,
				Section: s,
			})
		}
	}
	return result
}

// FilterItems keeps goals whose name contains query (case-insensitive) and
// the headers of sections that still have a match.
func FilterItems(items []ListItem, query string) []ListItem {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)

	hasMatch := make(map[Section]bool)
	for _, item := range items {
		if !item.IsSectionHeader && strings.Contains(strings.ToLower(item.Name), q) {
			hasMatch[item.Section] = true
		}
	}

	var result []ListItem
	for _, item := range items {
		if item.IsSectionHeader {
			if hasMatch[item.Section] {
				result = append(result, item)
			}
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), q) {
			result = append(result, item)
		}
	}
	return result
}
