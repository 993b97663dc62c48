package service

import (
	"errors"
	"testing"
	"time"

	"socialbook/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	svc      PostService
	userRepo *fakeUserRepo
	postRepo *fakePostRepo
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo(userRepo)
	return &postFixture{
		svc:      NewPostService(postRepo, userRepo, "https://social.example.com"),
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

func (f *postFixture) addUser(t *testing.T, name string) *model.User {
	t.Helper()
	user := &model.User{Email: name + "@example.com", Name: name, PasswordHash: "hash", IsActive: true}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func strPtr(s string) *string { return &s }

func TestCreatePost(t *testing.T) {
	f := newPostFixture(t)
	alice := f.addUser(t, "alice")

	resp, err := f.svc.CreatePost(alice.ID, CreatePostRequest{Content: strPtr("hello world")})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, alice.ID, resp.User.ID)
	require.NotNil(t, resp.Content)
	assert.Equal(t, "hello world", *resp.Content)
	assert.Nil(t, resp.Image)
}

func TestCreatePostImageOnly(t *testing.T) {
	f := newPostFixture(t)
	alice := f.addUser(t, "alice")

	resp, err := f.svc.CreatePost(alice.ID, CreatePostRequest{Image: strPtr("https://cdn.example.com/a.webp")})
	require.NoError(t, err)
	assert.Nil(t, resp.Content)
	require.NotNil(t, resp.Image)
}

func TestCreatePostUnknownUser(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.CreatePost("no-such-user", CreatePostRequest{Content: strPtr("hi")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFeedSeparation(t *testing.T) {
	f := newPostFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	_, err := f.svc.CreatePost(alice.ID, CreatePostRequest{Content: strPtr("alice post")})
	require.NoError(t, err)
	_, err = f.svc.CreatePost(bob.ID, CreatePostRequest{Content: strPtr("bob post 1")})
	require.NoError(t, err)
	_, err = f.svc.CreatePost(bob.ID, CreatePostRequest{Content: strPtr("bob post 2")})
	require.NoError(t, err)

	own, err := f.svc.ListOwnPosts(alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID, own[0].User.ID)

	// The global feed never contains the caller's own posts
	feed, err := f.svc.ListGlobalFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.Equal(t, bob.ID, p.User.ID)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	f := newPostFixture(t)
	alice := f.addUser(t, "alice")
	bob := f.addUser(t, "bob")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, content := range []string{"oldest", "middle", "newest"} {
		post := &model.Post{
			UserID:    alice.ID,
			Content:   strPtr(content),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.postRepo.Create(post))
	}

	own, err := f.svc.ListOwnPosts(alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 3)
	assert.Equal(t, "newest", *own[0].Content)
	assert.Equal(t, "middle", *own[1].Content)
	assert.Equal(t, "oldest", *own[2].Content)

	feed, err := f.svc.ListGlobalFeed(bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "newest", *feed[0].Content)
	assert.Equal(t, "oldest", *feed[2].Content)
}

func TestSharePost(t *testing.T) {
	f := newPostFixture(t)
	alice := f.addUser(t, "alice")

	post, err := f.svc.CreatePost(alice.ID, CreatePostRequest{
		Content: strPtr("beach day"),
		Image:   strPtr("https://cdn.example.com/beach.webp"),
	})
	require.NoError(t, err)

	share, err := f.svc.SharePost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Check out this post: beach day", share.Message)
	assert.Equal(t, "https://social.example.com/api/v1/posts/"+post.ID, share.URL)
	require.NotNil(t, share.Image)
	assert.Equal(t, "https://cdn.example.com/beach.webp", *share.Image)
}

func TestSharePostNotFound(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.SharePost("no-such-post")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
