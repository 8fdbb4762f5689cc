package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/novatidelabs/synkpay-banking-service/internal/pkg/validate"
)

const keyPrefix = "session:"

type KVStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type Service struct {
	store KVStore
	log   *zap.Logger
}

func NewService(store KVStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// Key builds the store key for a caller's record of the given kind.
func Key(callerID string, kind Kind) string {
	return keyPrefix + callerID + ":" + string(kind)
}

// GetSession reads the caller's access record with a single store lookup.
func (s *Service) GetSession(ctx context.Context, callerID string) (SessionRecord, error) {
	var record SessionRecord
	found, err := s.load(ctx, Key(callerID, KindAccess), &record)
	if err != nil {
		return SessionRecord{}, err
	}
	if !found {
		s.log.Warn("session not found in store", zap.String("caller_id", callerID))
		return SessionRecord{}, ErrSessionNotFound
	}
	if record.invalidExpiry != "" {
		s.log.Warn("session expiry is unreadable, keeping token",
			zap.String("caller_id", callerID),
			zap.String("expires_at", record.invalidExpiry),
		)
	}
	return record, nil
}

func (s *Service) GetRefresh(ctx context.Context, callerID string) (RefreshRecord, error) {
	var record RefreshRecord
	found, err := s.load(ctx, Key(callerID, KindRefresh), &record)
	if err != nil {
		return RefreshRecord{}, err
	}
	if !found {
		s.log.Warn("refresh record not found in store", zap.String("caller_id", callerID))
		return RefreshRecord{}, ErrRefreshNotFound
	}
	if record.invalidExpiry != "" {
		s.log.Warn("refresh expiry is unreadable, keeping token",
			zap.String("caller_id", callerID),
			zap.String("expires_at", record.invalidExpiry),
		)
	}
	return record, nil
}

func (s *Service) SaveSession(ctx context.Context, callerID string, record SessionRecord, ttl time.Duration) error {
	if !validate.Required(callerID) || !validate.Required(record.AccessToken) {
		return ErrInvalidInput
	}
	if err := s.store.Set(ctx, Key(callerID, KindAccess), record, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Service) SaveRefresh(ctx context.Context, callerID string, record RefreshRecord, ttl time.Duration) error {
	if !validate.Required(callerID) || !validate.Required(record.RefreshToken) {
		return ErrInvalidInput
	}
	if err := s.store.Set(ctx, Key(callerID, KindRefresh), record, ttl); err != nil {
		return fmt.Errorf("save refresh record: %w", err)
	}
	return nil
}

func (s *Service) HasSession(ctx context.Context, callerID string) (bool, error) {
	exists, err := s.store.Exists(ctx, Key(callerID, KindAccess))
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return exists, nil
}

// Clear removes both records of the caller.
func (s *Service) Clear(ctx context.Context, callerID string) error {
	if !validate.Required(callerID) {
		return ErrInvalidInput
	}
	if err := s.store.Delete(ctx, Key(callerID, KindAccess), Key(callerID, KindRefresh)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info("session cleared", zap.String("caller_id", callerID))
	return nil
}

func (s *Service) load(ctx context.Context, key string, target any) (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("session store is nil")
	}

	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
