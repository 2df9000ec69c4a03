package app

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"intrack/issue"
)

// filterIssues keeps the issues whose title, author, status or priority
// fuzzily matches the query. An empty query keeps everything.
func filterIssues(issues []issue.Issue, query string) []issue.Issue {
	query = strings.TrimSpace(query)
	if query == "" {
		return issues
	}
	out := make([]issue.Issue, 0, len(issues))
	for _, is := range issues {
		haystack := strings.Join([]string{
			is.Title,
			is.CreatedBy,
			is.Status.String(),
			is.Priority.String(),
		}, " ")
		if fuzzy.MatchFold(query, haystack) {
			out = append(out, is)
		}
	}
	return out
}

// sortIssues orders rows by the given column, ties broken by id so the
// order is stable across redraws.
func sortIssues(rows []issue.Issue, by column, desc bool) {
	less := func(a, b issue.Issue) bool {
		switch by {
		case colTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case colCreated:
			return a.Created.Before(b.Created)
		case colStatus:
			return a.Status < b.Status
		case colPriority:
			return a.Priority < b.Priority
		case colAuthor:
			return strings.ToLower(a.CreatedBy) < strings.ToLower(b.CreatedBy)
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if desc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
}
