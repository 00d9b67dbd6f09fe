package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coldmail/job-application-helper/internal/models"
)

// SessionRepository keeps per-user history. Get returns an empty session for an
// unknown id so a first visit never fails; only Save stores it.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

const DefaultSessionTTL = 2 * time.Hour

type sessionRecord struct {
	ID      string                    `json:"id"`
	History []models.GenerationResult `json:"history"`
}

func encodeSession(sess *models.Session) ([]byte, error) {
	data, err := json.Marshal(sessionRecord{
		ID:      sess.ID,
		History: sess.History.Entries(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session %s: %w", sess.ID, err)
	}
	return data, nil
}

func decodeSession(data []byte) (*models.Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &models.Session{
		ID:      rec.ID,
		History: models.NewHistory(rec.History...),
	}, nil
}
