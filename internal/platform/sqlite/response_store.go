package sqlite

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

// ResponseStore implements store.ResponseStore on SQLite.
type ResponseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewResponseStore creates a ResponseStore over db. If logger is nil,
// slog.Default() is used.
func NewResponseStore(db store.DBTX, logger *slog.Logger) *ResponseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ResponseStore{
		db:     db,
		logger: logger.With(slog.String("component", "response_store")),
	}
}

var _ store.ResponseStore = (*ResponseStore)(nil)

// SaveResponse upserts the user's response in a single statement.
func (s *ResponseStore) SaveResponse(ctx context.Context, response *domain.CompatibilityResponse) error {
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

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compatibility_responses (user_id, responses, completed_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET responses = excluded.responses,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at
	`,
		response.UserID,
		string(payload),
		response.CompletedAt.UnixNano(),
		time.Now().UnixNano(),
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

// GetResponse returns store.ErrResponseNotFound when the user has none.
func (s *ResponseStore) GetResponse(ctx context.Context, userID string) (*domain.CompatibilityResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving response", slog.String("user_id", userID))

	var (
		resp        domain.CompatibilityResponse
		payload     string
		completedAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, responses, completed_at
		FROM compatibility_responses
		WHERE user_id = ?
	`, userID).Scan(&resp.UserID, &payload, &completedAt)
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

	if err := json.Unmarshal([]byte(payload), &resp.Responses); err != nil {
		return nil, store.NewStoreError("response", "get", "failed to decode responses", err)
	}
	resp.CompletedAt = time.Unix(0, completedAt).UTC()

	return &resp, nil
}
