// Package categories provides lookup over the product descriptions found in
// an export and the KPI groups configured for a report.
package categories

import (
	"sort"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

// Distinct returns the unique descriptions of txns in first-seen order.
func Distinct(txns []model.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, txn := range txns {
		if seen[txn.Description] {
			continue
		}
		seen[txn.Description] = true
		out = append(out, txn.Description)
	}
	return out
}

// Counts returns the number of transactions per description, keyed by
// description.
func Counts(txns []model.Transaction) map[string]int {
	counts := make(map[string]int)
	for _, txn := range txns {
		counts[txn.Description]++
	}
	return counts
}

// Service provides in-memory lookup over configured KPI groups.
type Service struct {
	groups map[string][]string
	member map[string]bool
}

// NewService creates a Service from group definitions
// (group name -> member descriptions).
func NewService(groups map[string][]string) *Service {
	member := make(map[string]bool)
	for _, members := range groups {
		for _, desc := range members {
			member[desc] = true
		}
	}
	return &Service{groups: groups, member: member}
}

// Groups returns the group definitions.
func (s *Service) Groups() map[string][]string {
	return s.groups
}

// GroupNames returns the group names, sorted.
func (s *Service) GroupNames() []string {
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns the member descriptions of a group.
func (s *Service) Members(name string) ([]string, bool) {
	members, ok := s.groups[name]
	return members, ok
}

// Known reports whether a description belongs to any group.
func (s *Service) Known(description string) bool {
	return s.member[description]
}
