// Package repository persists extraction results. List-valued fields
// (parties, dates, payments, assets, clauses) are serialized as independent
// JSON blobs alongside queryable scalar columns; the core itself never
// reads these rows back into its own control flow.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/entity"
)

// ContractRecord is one stored extraction outcome: the aggregate, the
// validation verdict derived from it, and where the text came from.
type ContractRecord struct {
	ID           uuid.UUID                       `json:"id"`
	SourcePath   string                          `json:"source_path"`
	DocumentType constants.DocumentType          `json:"document_type"`
	Contract     entity.ExtractedContract        `json:"contract"`
	Validation   entity.ContractValidationResult `json:"validation"`
	CreatedAt    time.Time                       `json:"created_at"`
}

// ContractRepository stores and lists extraction results.
type ContractRepository interface {
	SaveContract(ctx context.Context, rec *ContractRecord) error
	GetContract(ctx context.Context, id uuid.UUID) (*ContractRecord, error)
	ListContracts(ctx context.Context) ([]*ContractRecord, error)
}

// contractHeader carries the scalar Field values through serialization so a
// round trip preserves confidence and provenance alongside the plain
// columns used for querying.
type contractHeader struct {
	ContractType   *entity.Field[string]  `json:"contract_type,omitempty"`
	ContractNumber *entity.Field[string]  `json:"contract_number,omitempty"`
	ContractDate   *entity.Field[string]  `json:"contract_date,omitempty"`
	StartDate      *entity.Field[string]  `json:"start_date,omitempty"`
	EndDate        *entity.Field[string]  `json:"end_date,omitempty"`
	TotalValue     *entity.Field[float64] `json:"total_value,omitempty"`
}

type contractBlobs struct {
	header     []byte
	parties    []byte
	keyDates   []byte
	payments   []byte
	assets     []byte
	clauses    []byte
	validation []byte
}

func marshalBlobs(rec *ContractRecord) (contractBlobs, error) {
	var b contractBlobs
	var err error
	c := rec.Contract

	if b.header, err = json.Marshal(contractHeader{
		ContractType:   c.ContractType,
		ContractNumber: c.ContractNumber,
		ContractDate:   c.ContractDate,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		TotalValue:     c.TotalValue,
	}); err != nil {
		return b, err
	}
	if b.parties, err = json.Marshal(c.Parties); err != nil {
		return b, err
	}
	if b.keyDates, err = json.Marshal(c.KeyDates); err != nil {
		return b, err
	}
	if b.payments, err = json.Marshal(c.PaymentSchedules); err != nil {
		return b, err
	}
	if b.assets, err = json.Marshal(c.DepreciationAssets); err != nil {
		return b, err
	}
	if b.clauses, err = json.Marshal(c.Clauses); err != nil {
		return b, err
	}
	if b.validation, err = json.Marshal(rec.Validation); err != nil {
		return b, err
	}
	return b, nil
}

func unmarshalBlobs(rec *ContractRecord, b contractBlobs) error {
	var h contractHeader
	if err := json.Unmarshal(b.header, &h); err != nil {
		return err
	}
	rec.Contract.ContractType = h.ContractType
	rec.Contract.ContractNumber = h.ContractNumber
	rec.Contract.ContractDate = h.ContractDate
	rec.Contract.StartDate = h.StartDate
	rec.Contract.EndDate = h.EndDate
	rec.Contract.TotalValue = h.TotalValue

	if err := json.Unmarshal(b.parties, &rec.Contract.Parties); err != nil {
		return err
	}
	if err := json.Unmarshal(b.keyDates, &rec.Contract.KeyDates); err != nil {
		return err
	}
	if err := json.Unmarshal(b.payments, &rec.Contract.PaymentSchedules); err != nil {
		return err
	}
	if err := json.Unmarshal(b.assets, &rec.Contract.DepreciationAssets); err != nil {
		return err
	}
	if err := json.Unmarshal(b.clauses, &rec.Contract.Clauses); err != nil {
		return err
	}
	return json.Unmarshal(b.validation, &rec.Validation)
}
