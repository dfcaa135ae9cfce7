package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// DefaultDraftTTL is how long an untouched saved draft survives. Every save
// resets the clock.
const DefaultDraftTTL = 30 * 24 * time.Hour

// RedisDraftRepository stores saved drafts as JSON blobs keyed per user.
// Drafts are working copies, not records; losing the store loses only
// unfinished applications.
type RedisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) portsrepo.DraftRepositoryFacade {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &RedisDraftRepository{client: client, ttl: ttl}
}

var _ portsrepo.DraftRepositoryFacade = (*RedisDraftRepository)(nil)

func draftKey(userID, draftID string) string {
	return fmt.Sprintf("drafts:%s:%s", userID, draftID)
}

func draftPattern(userID string) string {
	return fmt.Sprintf("drafts:%s:*", userID)
}

func (r *RedisDraftRepository) ListDrafts(ctx context.Context, userID string) ([]domain.SavedDraft, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, draftPattern(userID), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan drafts for user %s: %w", userID, err)
	}

	drafts := []domain.SavedDraft{}
	for _, key := range keys {
		raw, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// expired between SCAN and GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read draft %s: %w", key, err)
		}
		var draft domain.SavedDraft
		if err := json.Unmarshal(raw, &draft); err != nil {
			return nil, fmt.Errorf("failed to decode draft %s: %w", key, err)
		}
		drafts = append(drafts, draft)
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].SavedAt.After(drafts[j].SavedAt)
	})
	return drafts, nil
}

func (r *RedisDraftRepository) SaveDraft(ctx context.Context, userID string, draft domain.SavedDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", draft.DraftID, err)
	}
	if err := r.client.Set(ctx, draftKey(userID, draft.DraftID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft %s: %w", draft.DraftID, err)
	}
	return nil
}

func (r *RedisDraftRepository) FindDraftByID(ctx context.Context, userID, draftID string) (*domain.SavedDraft, error) {
	raw, err := r.client.Get(ctx, draftKey(userID, draftID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft %s: %w", draftID, err)
	}
	var draft domain.SavedDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", draftID, err)
	}
	return &draft, nil
}

func (r *RedisDraftRepository) DeleteDraft(ctx context.Context, userID, draftID string) error {
	deleted, err := r.client.Del(ctx, draftKey(userID, draftID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", draftID, err)
	}
	if deleted == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
