package extract

import (
	"strings"

	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/identifiers"
	"github.com/tallydesk/docintake/internal/patterns"
)

// identifierWindow is how many lines either side of a party line are
// searched for an ABN/ACN belonging to that party.
const identifierWindow = 3

// Parties scans line-by-line for "<role keyword>: <name>" and builds one
// party per matching line. A checksum-valid ABN within the window adds
// +0.10 confidence, a valid ACN +0.05. No deduplication: the same name on
// two lines yields two parties.
func Parties(text string) []entity.ContractParty {
	lines := strings.Split(text, "\n")
	var parties []entity.ContractParty

	for i, line := range lines {
		m := patterns.PartyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		party := entity.ContractParty{
			Name:       strings.TrimSpace(m[2]),
			Role:       patterns.RoleForKeyword(m[1]),
			Confidence: confParty,
		}

		lo := max(0, i-identifierWindow)
		hi := min(len(lines), i+identifierWindow+1)
		for _, near := range lines[lo:hi] {
			if party.ABN == "" {
				if am := patterns.ABNToken.FindStringSubmatch(near); am != nil {
					abn := compactDigits(am[1])
					if identifiers.ValidateABN(abn) {
						party.ABN = abn
						party.Confidence += abnBonus
					}
				}
			}
			if party.ACN == "" {
				if cm := patterns.ACNToken.FindStringSubmatch(near); cm != nil {
					acn := compactDigits(cm[1])
					if identifiers.ValidateACN(acn) {
						party.ACN = acn
						party.Confidence += acnBonus
					}
				}
			}
		}
		parties = append(parties, party)
	}
	return parties
}

func compactDigits(s string) string {
	return strings.Join(strings.Fields(s), "")
}
