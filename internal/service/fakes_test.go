package service

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"socialbook/internal/model"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the database-backed behavior the
// services rely on: IDs are assigned on create, lookups return an error on
// absence, and user edges are populated the way Preload would.

var errRecordNotFound = errors.New("record not found")

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errRecordNotFound
}

func (r *fakeUserRepo) Search(keyword string) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		if u.Email == keyword || containsFold(u.Name, keyword) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type fakeFriendRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*model.FriendRequest
	users    *fakeUserRepo
}

func newFakeFriendRequestRepo(users *fakeUserRepo) *fakeFriendRequestRepo {
	return &fakeFriendRequestRepo{requests: make(map[string]*model.FriendRequest), users: users}
}

func (r *fakeFriendRequestRepo) Create(request *model.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeFriendRequestRepo) FindByID(id string) (*model.FriendRequest, error) {
	r.mu.Lock()
	fr, ok := r.requests[id]
	r.mu.Unlock()
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *fr
	r.loadEdges(&cp)
	return &cp, nil
}

func (r *fakeFriendRequestRepo) ExistsFromTo(fromUserID, toUserID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fr := range r.requests {
		if fr.FromUserID == fromUserID && fr.ToUserID == toUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFriendRequestRepo) FindIncoming(toUserID string) ([]*model.FriendRequest, error) {
	r.mu.Lock()
	var out []*model.FriendRequest
	for _, fr := range r.requests {
		if fr.ToUserID == toUserID && !fr.Accepted {
			cp := *fr
			out = append(out, &cp)
		}
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for _, fr := range out {
		r.loadEdges(fr)
	}
	return out, nil
}

func (r *fakeFriendRequestRepo) Update(request *model.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return errRecordNotFound
	}
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeFriendRequestRepo) loadEdges(fr *model.FriendRequest) {
	if u, err := r.users.FindByID(fr.FromUserID); err == nil {
		fr.FromUser = *u
	}
	if u, err := r.users.FindByID(fr.ToUserID); err == nil {
		fr.ToUser = *u
	}
}

type fakeFriendshipRepo struct {
	mu          sync.Mutex
	friendships map[string]*model.Friendship
	users       *fakeUserRepo
}

func newFakeFriendshipRepo(users *fakeUserRepo) *fakeFriendshipRepo {
	return &fakeFriendshipRepo{friendships: make(map[string]*model.Friendship), users: users}
}

func (r *fakeFriendshipRepo) Create(friendship *model.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if friendship.ID == "" {
		friendship.ID = uuid.New().String()
	}
	friendship.CreatedAt = time.Now()
	cp := *friendship
	r.friendships[friendship.ID] = &cp
	return nil
}

func (r *fakeFriendshipRepo) ExistsBetween(userID1, userID2 string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.friendships {
		if (f.User1ID == userID1 && f.User2ID == userID2) ||
			(f.User1ID == userID2 && f.User2ID == userID1) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFriendshipRepo) FindByUserID(userID string) ([]*model.Friendship, error) {
	r.mu.Lock()
	var out []*model.Friendship
	for _, f := range r.friendships {
		if f.User1ID == userID || f.User2ID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	r.mu.Unlock()
	for _, f := range out {
		if u, err := r.users.FindByID(f.User1ID); err == nil {
			f.User1 = *u
		}
		if u, err := r.users.FindByID(f.User2ID); err == nil {
			f.User2 = *u
		}
	}
	return out, nil
}

func (r *fakeFriendshipRepo) DeleteBetween(userID1, userID2 string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, f := range r.friendships {
		if (f.User1ID == userID1 && f.User2ID == userID2) ||
			(f.User1ID == userID2 && f.User2ID == userID1) {
			delete(r.friendships, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	users *fakeUserRepo
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*model.Post), users: users}
}

func (r *fakePostRepo) Create(post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) FindByID(id string) (*model.Post, error) {
	r.mu.Lock()
	p, ok := r.posts[id]
	r.mu.Unlock()
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *p
	if u, err := r.users.FindByID(cp.UserID); err == nil {
		cp.User = *u
	}
	return &cp, nil
}

func (r *fakePostRepo) FindByUserID(userID string) ([]*model.Post, error) {
	return r.filter(func(p *model.Post) bool { return p.UserID == userID })
}

func (r *fakePostRepo) FindExcludingUserID(userID string) ([]*model.Post, error) {
	return r.filter(func(p *model.Post) bool { return p.UserID != userID })
}

func (r *fakePostRepo) FindByIDs(ids []string) ([]*model.Post, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(p *model.Post) bool { return want[p.ID] })
}

func (r *fakePostRepo) filter(keep func(*model.Post) bool) ([]*model.Post, error) {
	r.mu.Lock()
	var out []*model.Post
	for _, p := range r.posts {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for _, p := range out {
		if u, err := r.users.FindByID(p.UserID); err == nil {
			p.User = *u
		}
	}
	return out, nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]*model.Like
	users *fakeUserRepo
}

func newFakeLikeRepo(users *fakeUserRepo) *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]*model.Like), users: users}
}

func (r *fakeLikeRepo) Create(like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	like.CreatedAt = time.Now()
	cp := *like
	r.likes[like.ID] = &cp
	return nil
}

func (r *fakeLikeRepo) FindByUserAndPost(userID, postID string) (*model.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == userID && l.PostID == postID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, errRecordNotFound
}

func (r *fakeLikeRepo) FindByPostID(postID string) ([]*model.Like, error) {
	r.mu.Lock()
	var out []*model.Like
	for _, l := range r.likes {
		if l.PostID == postID {
			cp := *l
			out = append(out, &cp)
		}
	}
	r.mu.Unlock()
	for _, l := range out {
		if u, err := r.users.FindByID(l.UserID); err == nil {
			l.User = *u
		}
	}
	return out, nil
}

func (r *fakeLikeRepo) DeleteByUserAndPost(userID, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, l := range r.likes {
		if l.UserID == userID && l.PostID == postID {
			delete(r.likes, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*model.Comment
	users    *fakeUserRepo
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*model.Comment), users: users}
}

func (r *fakeCommentRepo) Create(comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) FindByPostID(postID string) ([]*model.Comment, error) {
	r.mu.Lock()
	var out []*model.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for _, c := range out {
		if u, err := r.users.FindByID(c.UserID); err == nil {
			c.User = *u
		}
	}
	return out, nil
}

type fakeSaveRepo struct {
	mu    sync.Mutex
	saves map[string]*model.Save
}

func newFakeSaveRepo() *fakeSaveRepo {
	return &fakeSaveRepo{saves: make(map[string]*model.Save)}
}

func (r *fakeSaveRepo) Create(save *model.Save) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if save.ID == "" {
		save.ID = uuid.New().String()
	}
	save.CreatedAt = time.Now()
	cp := *save
	r.saves[save.ID] = &cp
	return nil
}

func (r *fakeSaveRepo) FindPostIDsByUserID(userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.saves {
		if s.UserID == userID {
			out = append(out, s.PostID)
		}
	}
	return out, nil
}

func (r *fakeSaveRepo) DeleteByUserAndPost(userID, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, s := range r.saves {
		if s.UserID == userID && s.PostID == postID {
			delete(r.saves, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeCounterStore counts increments per key and ignores the window.
type fakeCounterStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: make(map[string]int64)}
}

func (c *fakeCounterStore) Count(key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key], nil
}

func (c *fakeCounterStore) Increment(key string, window time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return nil
}
