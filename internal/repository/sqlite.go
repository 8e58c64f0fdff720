package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/common"
	"github.com/tallydesk/docintake/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contracts (
	id                 TEXT PRIMARY KEY,
	source_path        TEXT NOT NULL DEFAULT '',
	document_type      TEXT NOT NULL,
	contract_type      TEXT,
	contract_number    TEXT,
	contract_date      TEXT,
	start_date         TEXT,
	end_date           TEXT,
	total_value        REAL,
	overall_confidence REAL NOT NULL,
	source_type        TEXT NOT NULL,
	raw_text           TEXT NOT NULL,
	header_json        TEXT NOT NULL,
	parties_json       TEXT NOT NULL,
	key_dates_json     TEXT NOT NULL,
	payments_json      TEXT NOT NULL,
	assets_json        TEXT NOT NULL,
	clauses_json       TEXT NOT NULL,
	validation_json    TEXT NOT NULL,
	suggested_action   TEXT NOT NULL,
	created_at         TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contracts_created_at ON contracts(created_at);
`

// SQLiteStore is the embedded backend used by the CLI and tests.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and migrates) a SQLite database. Use ":memory:" for an
// ephemeral store.
func OpenSQLite(ctx context.Context, dsn string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite")
	}
	// SQLite is single-writer; one pooled connection also keeps a
	// ":memory:" database from fragmenting across the pool.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "ping sqlite")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "migrate sqlite")
	}
	logger.Info("sqlite store ready", "dsn", dsn)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveContract(ctx context.Context, rec *ContractRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(rec.Contract)
	if err != nil {
		return common.WrapError(err, "marshal contract")
	}
	if err := ValidateContractPayload(payload); err != nil {
		return common.WrapError(err, common.ErrValidation.Error())
	}

	blobs, err := marshalBlobs(rec)
	if err != nil {
		return common.WrapError(err, "marshal blobs")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contracts (
			id, source_path, document_type,
			contract_type, contract_number, contract_date, start_date, end_date, total_value,
			overall_confidence, source_type, raw_text,
			header_json, parties_json, key_dates_json, payments_json, assets_json, clauses_json,
			validation_json, suggested_action, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.SourcePath, string(rec.DocumentType),
		fieldString(rec.Contract.ContractType), fieldString(rec.Contract.ContractNumber),
		fieldString(rec.Contract.ContractDate), fieldString(rec.Contract.StartDate),
		fieldString(rec.Contract.EndDate), fieldFloat(rec.Contract.TotalValue),
		rec.Contract.OverallConfidence, string(rec.Contract.DocumentType), rec.Contract.RawText,
		string(blobs.header), string(blobs.parties), string(blobs.keyDates),
		string(blobs.payments), string(blobs.assets), string(blobs.clauses),
		string(blobs.validation), string(rec.Validation.SuggestedAction), rec.CreatedAt,
	)
	if err != nil {
		s.logger.Error("store.save.failed", "id", rec.ID, "error", err)
		return common.WrapError(err, common.ErrDatabase.Error())
	}
	s.logger.Debug("store.save.ok", "id", rec.ID, "source_path", rec.SourcePath)
	return nil
}

func (s *SQLiteStore) GetContract(ctx context.Context, id uuid.UUID) (*ContractRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_path, document_type, overall_confidence, source_type, raw_text,
		       header_json, parties_json, key_dates_json, payments_json, assets_json, clauses_json,
		       validation_json, created_at
		FROM contracts WHERE id = ?`, id.String())
	rec, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contract %s: %w", id, common.ErrNotFound)
	}
	return rec, err
}

func (s *SQLiteStore) ListContracts(ctx context.Context) ([]*ContractRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_path, document_type, overall_confidence, source_type, raw_text,
		       header_json, parties_json, key_dates_json, payments_json, assets_json, clauses_json,
		       validation_json, created_at
		FROM contracts ORDER BY created_at`)
	if err != nil {
		return nil, common.WrapError(err, common.ErrDatabase.Error())
	}
	defer rows.Close()

	var recs []*ContractRecord
	for rows.Next() {
		rec, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*ContractRecord, error) {
	var (
		rec     ContractRecord
		idStr   string
		docType string
		srcType string
		b       contractBlobs
	)
	err := row.Scan(
		&idStr, &rec.SourcePath, &docType,
		&rec.Contract.OverallConfidence, &srcType, &rec.Contract.RawText,
		&b.header, &b.parties, &b.keyDates, &b.payments, &b.assets, &b.clauses,
		&b.validation, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, common.WrapError(err, "parse record id")
	}
	rec.DocumentType = constants.DocumentType(docType)
	rec.Contract.DocumentType = entity.SourceType(srcType)
	if err := unmarshalBlobs(&rec, b); err != nil {
		return nil, common.WrapError(err, "decode blobs")
	}
	return &rec, nil
}

func fieldString(f *entity.Field[string]) any {
	if f == nil {
		return nil
	}
	return f.Value
}

func fieldFloat(f *entity.Field[float64]) any {
	if f == nil {
		return nil
	}
	return f.Value
}
