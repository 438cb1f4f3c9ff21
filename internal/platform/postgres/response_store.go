package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/karthiknish/aroosi-swift-sub004/internal/domain"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
	"github.com/karthiknish/aroosi-swift-sub004/internal/store"
)

// PostgresResponseStore implements the store.ResponseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresResponseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResponseStore creates a new PostgreSQL implementation of the ResponseStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresResponseStore(db store.DBTX, logger *slog.Logger) *PostgresResponseStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresResponseStore{
		db:     db,
		logger: logger.With(slog.String("component", "response_store")),
	}
}

// Ensure PostgresResponseStore implements store.ResponseStore interface
var _ store.ResponseStore = (*PostgresResponseStore)(nil)

// SaveResponse implements store.ResponseStore.SaveResponse.
// A single upsert statement replaces any earlier snapshot for the user.
func (s *PostgresResponseStore) SaveResponse(ctx context.Context, response *domain.CompatibilityResponse) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if response == nil {
		return fmt.Errorf("%w: response cannot be nil", store.ErrInvalidEntity)
	}
	if err := response.Validate(); err != nil {
		log.Warn("response validation failed during save",
			slog.String("error", err.Error()),
			slog.String("user_id", response.UserID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	payload, err := json.Marshal(response.Responses)
	if err != nil {
		return fmt.Errorf("%w: failed to encode responses: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO compatibility_responses (user_id, responses, completed_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET responses = EXCLUDED.responses,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		response.UserID,
		string(payload),
		response.CompletedAt.UTC(),
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to save response",
			slog.String("error", err.Error()),
			slog.String("user_id", response.UserID))
		return store.NewStoreError("response", "save", "failed to upsert response", MapError(err))
	}

	log.Info("response saved",
		slog.String("user_id", response.UserID),
		slog.Int("answers", len(response.Responses)))
	return nil
}

// GetResponse implements store.ResponseStore.GetResponse.
// Returns store.ErrResponseNotFound if the user has no stored response.
func (s *PostgresResponseStore) GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving response", slog.String("user_id", userID))

	query := `
		SELECT user_id, responses, completed_at
		FROM compatibility_responses
		WHERE user_id = $1
	`

	var (
		resp    domain.CompatibilityResponse
		payload []byte
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&resp.UserID, &payload, &resp.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("response not found", slog.String("user_id", userID))
			return nil, store.ErrResponseNotFound
		}
		log.Error("failed to get response",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("response", "get", "failed to query response", MapError(err))
	}

	if err := json.Unmarshal(payload, &resp.Responses); err != nil {
		log.Error("stored responses could not be decoded",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("response", "get", "failed to decode responses", err)
	}
	resp.CompletedAt = resp.CompletedAt.UTC()

	log.Debug("response retrieved",
		slog.String("user_id", userID),
		slog.Int("answers", len(resp.Responses)))
	return &resp, nil
}
