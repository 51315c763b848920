package delivery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/models"
)

var ErrVaultInsertFailed = errors.New("VAULT_INSERT_FAILED")

const vaultSchema = `
CREATE TABLE IF NOT EXISTS battlecards (
	lead_id        TEXT PRIMARY KEY,
	region         TEXT NOT NULL,
	path           TEXT NOT NULL,
	email          TEXT NOT NULL,
	priority_score INTEGER NOT NULL,
	payload        JSONB NOT NULL,
	generated_at   TIMESTAMPTZ NOT NULL
)`

const vaultInsert = `
INSERT INTO battlecards (lead_id, region, path, email, priority_score, payload, generated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// VaultSink persists the full battlecard to the operator data vault.
type VaultSink struct {
	db     *sql.DB
	logger logger.Logger
}

func NewVaultSink(db *sql.DB, log logger.Logger) *VaultSink {
	return &VaultSink{db: db, logger: log}
}

func (s *VaultSink) Name() string { return "vault" }

// EnsureSchema creates the battlecards table when missing.
func (s *VaultSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, vaultSchema); err != nil {
		return fmt.Errorf("create battlecards table: %w", err)
	}
	return nil
}

func (s *VaultSink) Deliver(ctx context.Context, card *models.Battlecard) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("%w: encode battlecard: %v", ErrVaultInsertFailed, err)
	}

	_, err = s.db.ExecContext(ctx, vaultInsert,
		card.LeadID,
		string(card.Region),
		string(card.Path),
		card.Email,
		card.PriorityScore,
		payload,
		card.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVaultInsertFailed, err)
	}
	return nil
}
