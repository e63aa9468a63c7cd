package store

import (
	"context"
	"fmt"
	"time"

	"github.com/moodroute/moodroute/internal/profile"
	"github.com/moodroute/moodroute/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// Caches
	userCache    *cache.Cache // cache for users, keyed by id
	profileCache *cache.Cache // cache for user profiles, keyed by user id
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	// Default cache settings
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
		OnEviction:      nil,
	}

	store := &Store{
		driver:       driver,
		profile:      profile,
		cacheConfig:  cacheConfig,
		userCache:    cache.New(cacheConfig),
		profileCache: cache.New(cacheConfig),
	}

	return store
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	// Stop all cache cleanup goroutines
	s.userCache.Close()
	s.profileCache.Close()

	return s.driver.Close()
}

func userCacheKey(id int32) string {
	return fmt.Sprintf("user-%d", id)
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	now := time.Now().Unix()
	if create.CreatedTs == 0 {
		create.CreatedTs = now
	}
	if create.UpdatedTs == 0 {
		create.UpdatedTs = now
	}
	user, err := s.driver.CreateUser(ctx, create)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(ctx, userCacheKey(user.ID), user)
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	// Only lookups by ID go through the cache; the other find fields are
	// used rarely enough that a database roundtrip is fine.
	if find.ID != nil && find.Email == nil && find.Username == nil && find.GithubID == nil {
		if value, ok := s.userCache.Get(ctx, userCacheKey(*find.ID)); ok {
			return value.(*User), nil
		}
	}
	user, err := s.driver.GetUser(ctx, find)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.userCache.Set(ctx, userCacheKey(user.ID), user)
	}
	return user, nil
}

func (s *Store) UpdateUser(ctx context.Context, update *UpdateUser) (*User, error) {
	user, err := s.driver.UpdateUser(ctx, update)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(ctx, userCacheKey(user.ID), user)
	return user, nil
}

func (s *Store) DeleteUser(ctx context.Context, delete *DeleteUser) error {
	if err := s.driver.DeleteUser(ctx, delete); err != nil {
		return err
	}
	s.userCache.Delete(ctx, userCacheKey(delete.ID))
	s.profileCache.Delete(ctx, userCacheKey(delete.ID))
	return nil
}

func (s *Store) CreateSession(ctx context.Context, create *Session) (*Session, error) {
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	return s.driver.CreateSession(ctx, create)
}

func (s *Store) GetSession(ctx context.Context, find *FindSession) (*Session, error) {
	return s.driver.GetSession(ctx, find)
}

func (s *Store) DeleteSession(ctx context.Context, delete *DeleteSession) error {
	return s.driver.DeleteSession(ctx, delete)
}

// DeleteExpiredSessions removes sessions whose expiry is at or before nowTs
// and reports how many were removed.
func (s *Store) DeleteExpiredSessions(ctx context.Context, nowTs int64) (int64, error) {
	return s.driver.DeleteExpiredSessions(ctx, nowTs)
}

func (s *Store) CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error) {
	now := time.Now().Unix()
	if create.CreatedTs == 0 {
		create.CreatedTs = now
	}
	if create.UpdatedTs == 0 {
		create.UpdatedTs = now
	}
	return s.driver.CreateConversation(ctx, create)
}

func (s *Store) ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error) {
	return s.driver.ListConversations(ctx, find)
}

func (s *Store) GetConversation(ctx context.Context, find *FindConversation) (*Conversation, error) {
	return s.driver.GetConversation(ctx, find)
}

func (s *Store) UpdateConversation(ctx context.Context, update *UpdateConversation) (*Conversation, error) {
	return s.driver.UpdateConversation(ctx, update)
}

// DeleteConversation removes the conversation and its messages, returning
// the number of conversations deleted (0 when none matched).
func (s *Store) DeleteConversation(ctx context.Context, delete *DeleteConversation) (int64, error) {
	return s.driver.DeleteConversation(ctx, delete)
}

func (s *Store) CreateMessage(ctx context.Context, create *Message) (*Message, error) {
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	return s.driver.CreateMessage(ctx, create)
}

func (s *Store) ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error) {
	return s.driver.ListMessages(ctx, find)
}

func (s *Store) CountMessages(ctx context.Context, conversationID int32) (int64, error) {
	return s.driver.CountMessages(ctx, conversationID)
}

func (s *Store) DeleteMessages(ctx context.Context, delete *DeleteMessage) error {
	return s.driver.DeleteMessages(ctx, delete)
}

func (s *Store) GetUserProfile(ctx context.Context, find *FindUserProfile) (*UserProfile, error) {
	if value, ok := s.profileCache.Get(ctx, userCacheKey(find.UserID)); ok {
		return value.(*UserProfile), nil
	}
	userProfile, err := s.driver.GetUserProfile(ctx, find)
	if err != nil {
		return nil, err
	}
	if userProfile != nil {
		s.profileCache.Set(ctx, userCacheKey(find.UserID), userProfile)
	}
	return userProfile, nil
}

func (s *Store) UpsertUserProfile(ctx context.Context, upsert *UpsertUserProfile) (*UserProfile, error) {
	userProfile, err := s.driver.UpsertUserProfile(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.profileCache.Set(ctx, userCacheKey(userProfile.UserID), userProfile)
	return userProfile, nil
}
