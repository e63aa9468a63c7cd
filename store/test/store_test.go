package teststore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodroute/moodroute/internal/profile"
	"github.com/moodroute/moodroute/store"
	"github.com/moodroute/moodroute/store/db"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dir := t.TempDir()
	testProfile := &profile.Profile{
		Mode:   "prod",
		Driver: "sqlite",
		Data:   dir,
		DSN:    filepath.Join(dir, "moodroute_test.db"),
	}

	dbDriver, err := db.NewDBDriver(testProfile)
	require.NoError(t, err)

	storeInstance := store.New(dbDriver, testProfile)
	require.NoError(t, storeInstance.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = storeInstance.Close()
	})
	return storeInstance
}

func createTestUser(t *testing.T, ts *store.Store, email, username string) *store.User {
	t.Helper()
	user, err := ts.CreateUser(context.Background(), &store.User{
		Email:        email,
		Username:     username,
		PasswordHash: "test-hash",
	})
	require.NoError(t, err)
	return user
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t)

	user := createTestUser(t, ts, "kari@example.com", "kari")
	assert.NotZero(t, user.ID)
	assert.NotZero(t, user.CreatedTs)
	assert.Equal(t, "local", user.Provider())

	found, err := ts.GetUser(ctx, &store.FindUser{Email: &user.Email})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missingEmail := "nobody@example.com"
	missing, err := ts.GetUser(ctx, &store.FindUser{Email: &missingEmail})
	require.NoError(t, err)
	assert.Nil(t, missing)

	githubID := "998877"
	now := time.Now().Unix()
	updated, err := ts.UpdateUser(ctx, &store.UpdateUser{
		ID:        user.ID,
		GithubID:  &githubID,
		UpdatedTs: &now,
	})
	require.NoError(t, err)
	assert.Equal(t, "github", updated.Provider())

	byGithub, err := ts.GetUser(ctx, &store.FindUser{GithubID: &githubID})
	require.NoError(t, err)
	require.NotNil(t, byGithub)
	assert.Equal(t, user.ID, byGithub.ID)

	require.NoError(t, ts.DeleteUser(ctx, &store.DeleteUser{ID: user.ID}))
	gone, err := ts.GetUser(ctx, &store.FindUser{ID: &user.ID})
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t)
	user := createTestUser(t, ts, "ola@example.com", "ola")

	active, err := ts.CreateSession(ctx, &store.Session{
		UserID:    user.ID,
		TokenHash: "hash-active",
		ExpiresTs: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	assert.NotZero(t, active.ID)

	expired, err := ts.CreateSession(ctx, &store.Session{
		UserID:    user.ID,
		TokenHash: "hash-expired",
		ExpiresTs: time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	tokenHash := "hash-active"
	found, err := ts.GetSession(ctx, &store.FindSession{TokenHash: &tokenHash})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.UserID)

	deleted, err := ts.DeleteExpiredSessions(ctx, time.Now().Unix())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	expiredHash := "hash-expired"
	goneSession, err := ts.GetSession(ctx, &store.FindSession{TokenHash: &expiredHash})
	require.NoError(t, err)
	assert.Nil(t, goneSession)

	require.NoError(t, ts.DeleteSession(ctx, &store.DeleteSession{ID: &expired.ID}))
}

func TestConversationStore(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t)
	owner := createTestUser(t, ts, "owner@example.com", "owner")
	other := createTestUser(t, ts, "other@example.com", "other")

	first, err := ts.CreateConversation(ctx, &store.Conversation{
		UID:    "conv-first",
		UserID: owner.ID,
		Title:  "New MoodRoute Chat",
	})
	require.NoError(t, err)
	second, err := ts.CreateConversation(ctx, &store.Conversation{
		UID:    "conv-second",
		UserID: owner.ID,
		Title:  "Rainy Bergen walk",
	})
	require.NoError(t, err)

	_, err = ts.CreateMessage(ctx, &store.Message{
		UID:            "msg-1",
		ConversationID: first.ID,
		Role:           store.MessageRoleUser,
		Content:        "I feel cozy, suggest a walk in Bergen",
	})
	require.NoError(t, err)
	_, err = ts.CreateMessage(ctx, &store.Message{
		UID:            "msg-2",
		ConversationID: first.ID,
		Role:           store.MessageRoleAssistant,
		Content:        "Option 1: Bryggen wander",
	})
	require.NoError(t, err)

	count, err := ts.CountMessages(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Bump the first conversation so it sorts before the second.
	bumped := time.Now().Unix() + 100
	_, err = ts.UpdateConversation(ctx, &store.UpdateConversation{ID: first.ID, UpdatedTs: &bumped})
	require.NoError(t, err)

	list, err := ts.ListConversations(ctx, &store.FindConversation{UserID: &owner.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "Option 1: Bryggen wander", list[0].LastMessage)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Empty(t, list[1].LastMessage)

	// Ownership guard: a different user cannot see or delete it.
	notFound, err := ts.GetConversation(ctx, &store.FindConversation{ID: &first.ID, UserID: &other.ID})
	require.NoError(t, err)
	assert.Nil(t, notFound)

	deleted, err := ts.DeleteConversation(ctx, &store.DeleteConversation{ID: first.ID, UserID: other.ID})
	require.NoError(t, err)
	assert.Zero(t, deleted)
	count, err = ts.CountMessages(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "messages must survive a failed delete by a non-owner")

	deleted, err = ts.DeleteConversation(ctx, &store.DeleteConversation{ID: first.ID, UserID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	count, err = ts.CountMessages(ctx, first.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMessageStore(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t)
	owner := createTestUser(t, ts, "mona@example.com", "mona")

	conversation, err := ts.CreateConversation(ctx, &store.Conversation{
		UID:    "conv-msgs",
		UserID: owner.ID,
		Title:  "Oslo evening",
	})
	require.NoError(t, err)

	contents := []string{"one", "two", "three", "four"}
	for i, content := range contents {
		_, err = ts.CreateMessage(ctx, &store.Message{
			UID:            content,
			ConversationID: conversation.ID,
			Role:           store.MessageRoleUser,
			Content:        content,
			CreatedTs:      int64(1000 + i),
		})
		require.NoError(t, err)
	}

	ascending, err := ts.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	require.Len(t, ascending, 4)
	assert.Equal(t, "one", ascending[0].Content)
	assert.Equal(t, "four", ascending[3].Content)

	limit := 2
	recent, err := ts.ListMessages(ctx, &store.FindMessage{
		ConversationID: &conversation.ID,
		Limit:          &limit,
		Descending:     true,
	})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "four", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)

	require.NoError(t, ts.DeleteMessages(ctx, &store.DeleteMessage{ConversationID: &conversation.ID}))
	remaining, err := ts.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestUserProfileStore(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t)
	user := createTestUser(t, ts, "nora@example.com", "nora")

	missing, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: user.ID})
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{
		UserID:            user.ID,
		DefaultCity:       "Bergen",
		DefaultVibe:       "cozy",
		VisitedPlacesJSON: `["Bryggen"]`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bergen", created.DefaultCity)
	assert.Equal(t, []string{"Bryggen"}, created.VisitedPlaces())

	updated, err := ts.UpsertUserProfile(ctx, &store.UpsertUserProfile{
		UserID:            user.ID,
		DefaultCity:       "Oslo",
		DefaultVibe:       "energetic",
		VisitedPlacesJSON: `["Bryggen","Vigelandsparken"]`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Oslo", updated.DefaultCity)
	assert.Len(t, updated.VisitedPlaces(), 2)

	fetched, err := ts.GetUserProfile(ctx, &store.FindUserProfile{UserID: user.ID})
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Oslo", fetched.DefaultCity)
}
