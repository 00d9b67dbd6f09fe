package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"coldmail/job-application-helper/internal/models"
)

const sessionKeyPrefix = "coldmail:session:"

type valkeySessionRepository struct {
	client valkey.Client
	ttl    time.Duration
}

// NewValkeySessionRepository stores each session as one JSON value that expires
// ttl after its last save.
func NewValkeySessionRepository(ctx context.Context, address, password string, ttl time.Duration) (SessionRepository, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &valkeySessionRepository{client: client, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// expirySeconds rounds ttl up to whole seconds; EX rejects zero.
func expirySeconds(ttl time.Duration) int64 {
	secs := int64((ttl + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Get implements SessionRepository.
func (r *valkeySessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	cmd := r.client.B().Get().Key(sessionKey(id)).Build()

	data, err := r.client.Do(ctx, cmd).AsBytes()
	if valkey.IsValkeyNil(err) {
		return models.NewSession(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load session %s: %w", id, err)
	}

	sess, err := decodeSession(data)
	if err != nil {
		return nil, err
	}
	sess.ID = id
	return sess, nil
}

// Save implements SessionRepository.
func (r *valkeySessionRepository) Save(ctx context.Context, sess *models.Session) error {
	data, err := encodeSession(sess)
	if err != nil {
		return err
	}

	cmd := r.client.B().Set().
		Key(sessionKey(sess.ID)).
		Value(valkey.BinaryString(data)).
		ExSeconds(expirySeconds(r.ttl)).
		Build()

	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("unable to save session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete implements SessionRepository.
func (r *valkeySessionRepository) Delete(ctx context.Context, id string) error {
	cmd := r.client.B().Del().Key(sessionKey(id)).Build()

	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("unable to delete session %s: %w", id, err)
	}
	return nil
}

// Close implements SessionRepository.
func (r *valkeySessionRepository) Close() error {
	r.client.Close()
	return nil
}
