// Package export renders stored extraction results for downstream
// consumers: JSON for machine hand-off, CSV for spreadsheets, and an XLSX
// workbook with one sheet per list-valued field family.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/repository"
)

// Service is a small façade that turns contract records into export bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteJSON streams the records as a JSON array.
func (s *Service) WriteJSON(w io.Writer, recs []*repository.ContractRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

var csvHeader = []string{
	"ID", "Source Path", "Document Type", "Contract Type", "Contract Number",
	"Start Date", "End Date", "Total Value", "Parties", "Overall Confidence",
	"Suggested Action", "Created At",
}

// WriteCSV writes one summary row per record.
func (s *Service) WriteCSV(w io.Writer, recs []*repository.ContractRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		row := []string{
			rec.ID.String(),
			rec.SourcePath,
			string(rec.DocumentType),
			fieldValue(rec.Contract.ContractType),
			fieldValue(rec.Contract.ContractNumber),
			fieldValue(rec.Contract.StartDate),
			fieldValue(rec.Contract.EndDate),
			floatValue(rec.Contract.TotalValue),
			strconv.Itoa(len(rec.Contract.Parties)),
			fmt.Sprintf("%.2f", rec.Contract.OverallConfidence),
			string(rec.Validation.SuggestedAction),
			rec.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildXLSX returns a workbook with a summary sheet plus one sheet each for
// parties, key dates, payments, and assets.
func (s *Service) BuildXLSX(recs []*repository.ContractRecord) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()

	const summary = "Contracts"
	if err := renameDefaultSheet(f, summary); err != nil {
		return nil, err
	}
	writeRow(f, summary, 1, csvHeader)
	for i, rec := range recs {
		writeRow(f, summary, i+2, []any{
			rec.ID.String(), rec.SourcePath, string(rec.DocumentType),
			fieldValue(rec.Contract.ContractType), fieldValue(rec.Contract.ContractNumber),
			fieldValue(rec.Contract.StartDate), fieldValue(rec.Contract.EndDate),
			floatValue(rec.Contract.TotalValue), len(rec.Contract.Parties),
			rec.Contract.OverallConfidence, string(rec.Validation.SuggestedAction),
			rec.CreatedAt.Format(time.RFC3339),
		})
	}

	if err := s.writePartiesSheet(f, recs); err != nil {
		return nil, err
	}
	if err := s.writeKeyDatesSheet(f, recs); err != nil {
		return nil, err
	}
	if err := s.writePaymentsSheet(f, recs); err != nil {
		return nil, err
	}
	if err := s.writeAssetsSheet(f, recs); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("export.xlsx.built", "records", len(recs), "elapsed", time.Since(start))
	return buf.Bytes(), nil
}

func (s *Service) writePartiesSheet(f *excelize.File, recs []*repository.ContractRecord) error {
	const sheet = "Parties"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeRow(f, sheet, 1, []string{"Contract ID", "Name", "Role", "ABN", "ACN", "Confidence"})
	row := 2
	for _, rec := range recs {
		for _, p := range rec.Contract.Parties {
			writeRow(f, sheet, row, []any{rec.ID.String(), p.Name, string(p.Role), p.ABN, p.ACN, p.Confidence})
			row++
		}
	}
	return nil
}

func (s *Service) writeKeyDatesSheet(f *excelize.File, recs []*repository.ContractRecord) error {
	const sheet = "Key Dates"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeRow(f, sheet, 1, []string{"Contract ID", "Date", "Type", "Description", "Confidence"})
	row := 2
	for _, rec := range recs {
		for _, d := range rec.Contract.KeyDates {
			writeRow(f, sheet, row, []any{rec.ID.String(), d.Date, string(d.DateType), d.Description, d.Confidence})
			row++
		}
	}
	return nil
}

func (s *Service) writePaymentsSheet(f *excelize.File, recs []*repository.ContractRecord) error {
	const sheet = "Payments"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeRow(f, sheet, 1, []string{"Contract ID", "Description", "Amount", "Due Date", "Percentage", "Milestone", "Confidence"})
	row := 2
	for _, rec := range recs {
		for _, ps := range rec.Contract.PaymentSchedules {
			pct := ""
			if ps.Percentage != nil {
				pct = fmt.Sprintf("%.1f", *ps.Percentage)
			}
			writeRow(f, sheet, row, []any{rec.ID.String(), ps.Description, ps.Amount, ps.DueDate, pct, ps.IsMilestone, ps.Confidence})
			row++
		}
	}
	return nil
}

func (s *Service) writeAssetsSheet(f *excelize.File, recs []*repository.ContractRecord) error {
	const sheet = "Assets"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeRow(f, sheet, 1, []string{"Contract ID", "Description", "Value", "Effective Life", "Method", "Immediate Deduction", "Low Value Pool", "Confidence"})
	row := 2
	for _, rec := range recs {
		for _, a := range rec.Contract.DepreciationAssets {
			life := ""
			if a.EffectiveLifeYears != nil {
				life = strconv.Itoa(*a.EffectiveLifeYears)
			}
			writeRow(f, sheet, row, []any{
				rec.ID.String(), a.AssetDescription, a.AssetValue, life,
				string(a.DepreciationMethod), a.IsImmediateDeduction, a.IsLowValuePool, a.Confidence,
			})
			row++
		}
	}
	return nil
}

func renameDefaultSheet(f *excelize.File, name string) error {
	return f.SetSheetName(f.GetSheetName(0), name)
}

func writeRow[T any](f *excelize.File, sheet string, row int, values []T) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func fieldValue(f *entity.Field[string]) string {
	if f == nil {
		return ""
	}
	return f.Value
}

func floatValue(f *entity.Field[float64]) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", f.Value)
}
