package extract

import (
	"strings"

	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/patterns"
)

// maxClauses bounds clause output on pathological documents.
const maxClauses = 20

// Clauses treats lines starting with a numbered, lettered, or literal
// "clause" marker as clause headers and buckets each by the keyword table.
// Output is capped at the first maxClauses matches.
func Clauses(text string) []entity.ContractClause {
	var clauses []entity.ContractClause
	for _, line := range strings.Split(text, "\n") {
		if len(clauses) >= maxClauses {
			break
		}
		for _, marker := range patterns.ClauseMarkers {
			m := marker.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			title := strings.TrimSpace(m[2])
			clauses = append(clauses, entity.ContractClause{
				ClauseNumber: m[1],
				Title:        title,
				Text:         strings.TrimSpace(line),
				Category:     patterns.CategorizeClause(title),
				Confidence:   confClause,
			})
			break
		}
	}
	return clauses
}
