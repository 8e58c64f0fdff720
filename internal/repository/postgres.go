package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/common"
	"github.com/tallydesk/docintake/internal/entity"
)

// PoolConfig mirrors the pgx pool knobs exposed through configuration.
type PoolConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS contracts (
	id                 UUID PRIMARY KEY,
	source_path        TEXT NOT NULL DEFAULT '',
	document_type      TEXT NOT NULL,
	contract_type      TEXT,
	contract_number    TEXT,
	contract_date      TEXT,
	start_date         TEXT,
	end_date           TEXT,
	total_value        DOUBLE PRECISION,
	overall_confidence DOUBLE PRECISION NOT NULL,
	source_type        TEXT NOT NULL,
	raw_text           TEXT NOT NULL,
	header_json        JSONB NOT NULL,
	parties_json       JSONB NOT NULL,
	key_dates_json     JSONB NOT NULL,
	payments_json      JSONB NOT NULL,
	assets_json        JSONB NOT NULL,
	clauses_json       JSONB NOT NULL,
	validation_json    JSONB NOT NULL,
	suggested_action   TEXT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contracts_created_at ON contracts(created_at);
`

// PostgresStore is the shared-database backend.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates a pgx pool, migrates the schema, and returns the store.
func OpenPostgres(ctx context.Context, cfg PoolConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "dsn", cfg.DSN)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "docintake"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, common.WrapError(err, "migrate postgres")
	}

	logger.Info("successfully connected to database")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

// HealthCheck pings the pool to catch DSN issues early.
func (s *PostgresStore) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) SaveContract(ctx context.Context, rec *ContractRecord) error {
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

	_, err = s.pool.Exec(ctx, `
		INSERT INTO contracts (
			id, source_path, document_type,
			contract_type, contract_number, contract_date, start_date, end_date, total_value,
			overall_confidence, source_type, raw_text,
			header_json, parties_json, key_dates_json, payments_json, assets_json, clauses_json,
			validation_json, suggested_action, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		rec.ID, rec.SourcePath, string(rec.DocumentType),
		fieldString(rec.Contract.ContractType), fieldString(rec.Contract.ContractNumber),
		fieldString(rec.Contract.ContractDate), fieldString(rec.Contract.StartDate),
		fieldString(rec.Contract.EndDate), fieldFloat(rec.Contract.TotalValue),
		rec.Contract.OverallConfidence, string(rec.Contract.DocumentType), rec.Contract.RawText,
		blobs.header, blobs.parties, blobs.keyDates, blobs.payments, blobs.assets, blobs.clauses,
		blobs.validation, string(rec.Validation.SuggestedAction), rec.CreatedAt,
	)
	if err != nil {
		s.logger.Error("store.save.failed", "id", rec.ID, "error", err)
		return common.WrapError(err, common.ErrDatabase.Error())
	}
	return nil
}

func (s *PostgresStore) GetContract(ctx context.Context, id uuid.UUID) (*ContractRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id::text, source_path, document_type, overall_confidence, source_type, raw_text,
		       header_json, parties_json, key_dates_json, payments_json, assets_json, clauses_json,
		       validation_json, created_at
		FROM contracts WHERE id = $1`, id)
	rec, err := scanPgContract(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("contract %s: %w", id, common.ErrNotFound)
	}
	return rec, err
}

func (s *PostgresStore) ListContracts(ctx context.Context) ([]*ContractRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, source_path, document_type, overall_confidence, source_type, raw_text,
		       header_json, parties_json, key_dates_json, payments_json, assets_json, clauses_json,
		       validation_json, created_at
		FROM contracts ORDER BY created_at`)
	if err != nil {
		return nil, common.WrapError(err, common.ErrDatabase.Error())
	}
	defer rows.Close()

	var recs []*ContractRecord
	for rows.Next() {
		rec, err := scanPgContract(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanPgContract(row pgx.Row) (*ContractRecord, error) {
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
