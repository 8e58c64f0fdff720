package extract

import (
	"strings"

	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/patterns"
)

// KeyDates scans line-by-line for the date-type keyword table. A line
// containing a keyword yields at most one date per matched keyword: the
// first date token found on that line, normalized to YYYY-MM-DD.
func KeyDates(text string) []entity.KeyDate {
	var dates []entity.KeyDate
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, dk := range patterns.DateKeywords {
			if !strings.Contains(lower, dk.Keyword) {
				continue
			}
			d, ok := patterns.FindDate(line)
			if !ok {
				continue
			}
			dates = append(dates, entity.KeyDate{
				Date:        d,
				Description: strings.TrimSpace(line),
				DateType:    dk.DateType,
				Confidence:  confKeyDate,
			})
		}
	}
	return dates
}
