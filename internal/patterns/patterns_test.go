package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallydesk/docintake/internal/entity"
)

func TestFindDate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"dmy slash", "commencing on 15/03/2024", "2024-03-15", true},
		{"dmy single digits", "dated 1/7/2023", "2023-07-01", true},
		{"iso", "effective 2024-01-31", "2024-01-31", true},
		{"long month name", "signed 5 March 2024", "2024-03-05", true},
		{"abbreviated month", "due 12 Sep 2025", "2025-09-12", true},
		{"abbreviated month with dot", "due 3 Dec. 2024", "2024-12-03", true},
		{"no date", "no dates in this line", "", false},
		{"bare year", "the year 2024 alone", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindDate(tt.in)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"25,000.00", 25000, true},
		{"2,400", 2400, true},
		{"150", 150, true},
		{"0.50", 0.5, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPartyLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantRole entity.PartyRole
		wantName string
	}{
		{"client", "Client: ABC Pty Ltd", entity.RoleClient, "ABC Pty Ltd"},
		{"contractor", "Contractor: XYZ Consulting", entity.RoleContractor, "XYZ Consulting"},
		{"the prefix", "The Supplier: Acme Supplies Pty Ltd", entity.RoleSupplier, "Acme Supplies Pty Ltd"},
		{"two word keyword", "Service Provider: Widget Co", entity.RoleContractor, "Widget Co"},
		{"leading whitespace", "   Vendor: Vendor Holdings", entity.RoleVendor, "Vendor Holdings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := PartyLine.FindStringSubmatch(tt.line)
			require.NotNil(t, m)
			assert.Equal(t, tt.wantRole, RoleForKeyword(m[1]))
			assert.Equal(t, tt.wantName, m[2])
		})
	}

	for _, line := range []string{
		"This agreement is between the client and contractor.",
		"Client:",
		"somebody's client: name",
	} {
		assert.Nil(t, PartyLine.FindStringSubmatch(line), line)
	}
}

func TestContractTypesFirstMatchWins(t *testing.T) {
	text := "SERVICES AGREEMENT\nThis contract sets out the agreement between the parties."
	var label string
	for _, tp := range ContractTypes {
		if tp.Re.MatchString(text) {
			label = tp.Label
			break
		}
	}
	assert.Equal(t, "Service Agreement", label)
}

func TestBareReference(t *testing.T) {
	m := BareReference.FindStringSubmatch("Contract SA-2024-001 between the parties")
	require.NotNil(t, m)
	assert.Equal(t, "SA-2024-001", m[1])

	assert.Nil(t, BareReference.FindStringSubmatch("phone 0412-3456-78"))
}

func TestCategorizeClause(t *testing.T) {
	tests := []struct {
		title string
		want  entity.ClauseCategory
	}{
		{"Payment Terms", entity.ClausePayment},
		{"Fees and Invoicing", entity.ClausePayment},
		{"Termination for Convenience", entity.ClauseTermination},
		{"Limitation of Liability", entity.ClauseLiability},
		{"Indemnification", entity.ClauseLiability},
		{"Intellectual Property Rights", entity.ClauseIP},
		{"Governing Law", entity.ClauseOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategorizeClause(tt.title), tt.title)
	}
}

func TestCountOccurrences(t *testing.T) {
	text := "this tax invoice lists the invoice number and the invoice total"
	assert.Equal(t, 3, CountOccurrences(text, "invoice"))
	assert.Equal(t, 1, CountOccurrences(text, "tax invoice"))
	assert.Equal(t, 1, CountOccurrences(text, "invoice number"))
	assert.Equal(t, 0, CountOccurrences(text, "not a table phrase"))
}

func TestEffectiveLife(t *testing.T) {
	m := EffectiveLife.FindStringSubmatch("effective life of 4 years")
	require.NotNil(t, m)
	assert.Equal(t, "4", m[1])

	m = EffectiveLife.FindStringSubmatch("depreciated over 10 years effective life")
	require.NotNil(t, m)
	assert.Equal(t, "10", m[2])
}
