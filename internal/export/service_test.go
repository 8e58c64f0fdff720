package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/repository"
)

func sampleRecords() []*repository.ContractRecord {
	pct := 25.0
	life := 4
	return []*repository.ContractRecord{
		{
			ID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			SourcePath:   "contracts/sa-2024-001.pdf",
			DocumentType: constants.DocTypeContract,
			Contract: entity.ExtractedContract{
				ContractType:   entity.NewField("Service Agreement", 0.85, "type_pattern"),
				ContractNumber: entity.NewField("SA-2024-001", 0.80, "number_label"),
				TotalValue:     entity.NewField(25000.0, 0.80, "value_label"),
				Parties: []entity.ContractParty{
					{Name: "ABC Pty Ltd", Role: entity.RoleClient, ABN: "51824753556", Confidence: 0.85},
					{Name: "XYZ Consulting", Role: entity.RoleContractor, Confidence: 0.75},
				},
				KeyDates: []entity.KeyDate{
					{Date: "2024-03-15", DateType: entity.DateCommencement, Description: "Commencement date: 15/03/2024", Confidence: 0.75},
				},
				PaymentSchedules: []entity.PaymentSchedule{
					{Description: "Milestone 1: 25%", Percentage: &pct, IsMilestone: true, Confidence: 0.60},
				},
				DepreciationAssets: []entity.DepreciationInfo{
					{AssetDescription: "Laptop computer", AssetValue: 2400, EffectiveLifeYears: &life, DepreciationMethod: entity.MethodPrimeCost, Confidence: 0.80},
				},
				OverallConfidence: 0.80,
				DocumentType:      entity.SourcePDF,
			},
			Validation: entity.ContractValidationResult{IsValid: true, SuggestedAction: constants.ActionAccept},
			CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:           uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			SourcePath:   "contracts/empty.txt",
			DocumentType: constants.DocTypeInvoice,
			Contract: entity.ExtractedContract{
				OverallConfidence: 0.30,
				DocumentType:      entity.SourceUnknown,
			},
			Validation: entity.ContractValidationResult{SuggestedAction: constants.ActionManualEntry},
			CreatedAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewService(nil).WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", first[0])
	assert.Equal(t, "contract", first[2])
	assert.Equal(t, "Service Agreement", first[3])
	assert.Equal(t, "SA-2024-001", first[4])
	assert.Equal(t, "25000.00", first[7])
	assert.Equal(t, "2", first[8])
	assert.Equal(t, "0.80", first[9])
	assert.Equal(t, "accept", first[10])

	second := rows[2]
	assert.Empty(t, second[3])
	assert.Empty(t, second[7])
	assert.Equal(t, "0", second[8])
	assert.Equal(t, "manual_entry", second[10])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewService(nil).WriteJSON(&buf, sampleRecords()))

	var decoded []*repository.ContractRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "contracts/sa-2024-001.pdf", decoded[0].SourcePath)
	require.NotNil(t, decoded[0].Contract.ContractType)
	assert.Equal(t, "Service Agreement", decoded[0].Contract.ContractType.Value)
}

func TestBuildXLSX(t *testing.T) {
	data, err := NewService(nil).BuildXLSX(sampleRecords())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Contracts", "Parties", "Key Dates", "Payments", "Assets"}, f.GetSheetList())

	cell, err := f.GetCellValue("Contracts", "A2")
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", cell)

	name, err := f.GetCellValue("Parties", "B2")
	require.NoError(t, err)
	assert.Equal(t, "ABC Pty Ltd", name)

	abn, err := f.GetCellValue("Parties", "D2")
	require.NoError(t, err)
	assert.Equal(t, "51824753556", abn)

	date, err := f.GetCellValue("Key Dates", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", date)

	asset, err := f.GetCellValue("Assets", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Laptop computer", asset)
}
