package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/posting/internal/cache"
	"github.com/d60-Lab/posting/internal/model"
	"github.com/d60-Lab/posting/internal/repository"
)

func contents(posts []model.PostDTO) []string {
	res := make([]string, len(posts))
	for i, p := range posts {
		res[i] = p.Content
	}
	return res
}

func authors(posts []model.PostDTO) []string {
	res := make([]string, len(posts))
	for i, p := range posts {
		res[i] = p.Username
	}
	return res
}

func followedNames(t *testing.T, f *fixture, username string) []string {
	t.Helper()
	ctx := context.Background()
	u, err := f.store.Users().FindByUsername(ctx, username)
	require.NoError(t, err)
	users, err := f.store.Follows().ListFollowed(ctx, u.ID)
	require.NoError(t, err)
	res := make([]string, len(users))
	for i, fu := range users {
		res[i] = fu.Username
	}
	return res
}

func TestNewPostCreatesUserAndPost(t *testing.T) {
	f := newFixture(t, nil)
	f.post(t, "testUser", "post content")

	var users, posts int64
	require.NoError(t, f.db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, f.db.Model(&model.Post{}).Count(&posts).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, posts)

	wall, err := f.svc.GetCompleteWall(context.Background(), "testUser")
	require.NoError(t, err)
	require.Len(t, wall, 1)
	assert.Equal(t, "testUser", wall[0].Username)
	assert.Equal(t, "post content", wall[0].Content)
	assert.False(t, wall[0].CreatedDate.Time().IsZero())
}

func TestNewPostExistingUserAppendsInOrder(t *testing.T) {
	f := newFixture(t, nil)
	f.post(t, "testUser", "post content 1", "post content 2", "post content 3")

	var users int64
	require.NoError(t, f.db.Model(&model.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)

	wall, err := f.svc.GetCompleteWall(context.Background(), "testUser")
	require.NoError(t, err)
	assert.Equal(t, []string{"post content 3", "post content 2", "post content 1"}, contents(wall))
}

func TestCompleteWallScenario(t *testing.T) {
	f := newFixture(t, nil)
	f.post(t, "alice", "p1", "p2")
	f.post(t, "bob", "hello")

	wall, err := f.svc.GetCompleteWall(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, wall, 2)
	assert.Equal(t, model.PostDTO{Username: "alice", Content: "p2", CreatedDate: wall[0].CreatedDate}, wall[0])
	assert.Equal(t, model.PostDTO{Username: "alice", Content: "p1", CreatedDate: wall[1].CreatedDate}, wall[1])
	assert.True(t, wall[0].CreatedDate.Time().After(wall[1].CreatedDate.Time()))
}

func TestFollow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.post(t, "user1", "a")
	f.post(t, "user2", "b")
	f.post(t, "user3", "c")

	require.NoError(t, f.svc.Follow(ctx, "user1", "user3"))
	require.NoError(t, f.svc.Follow(ctx, "user1", "user2"))

	assert.Equal(t, []string{"user3", "user2"}, followedNames(t, f, "user1"))
	assert.Empty(t, followedNames(t, f, "user2"))

	// 重复关注追加一条边
	require.NoError(t, f.svc.Follow(ctx, "user1", "user2"))
	assert.Equal(t, []string{"user3", "user2", "user2"}, followedNames(t, f, "user1"))
}

func TestFollowSelfAlwaysFails(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Follow(ctx, "ghost", "ghost"), ErrFollowSelf)

	f.post(t, "alice", "hi")
	err := f.svc.Follow(ctx, "alice", "alice")
	assertInvalidRequest(t, err, "Can't follow yourself, sorry")
	assert.Empty(t, followedNames(t, f, "alice"))
}

func TestFollowUnknownUsers(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	// 两个都不存在时报请求方
	assertInvalidRequest(t, f.svc.Follow(ctx, "user1", "user2"), "User [user1] does not exist")

	f.post(t, "user2", "post")
	assertInvalidRequest(t, f.svc.Follow(ctx, "user1", "user2"), "User [user1] does not exist")
	assert.Empty(t, followedNames(t, f, "user2"))

	assertInvalidRequest(t, f.svc.Follow(ctx, "user2", "user3"), "User [user3] does not exist")
	assert.Empty(t, followedNames(t, f, "user2"))
}

func TestUnknownUserReads(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.GetCompleteWall(ctx, "ghost")
	assertInvalidRequest(t, err, "User [ghost] does not exist")
	_, err = f.svc.GetCompleteTimeline(ctx, "ghost")
	assertInvalidRequest(t, err, "User [ghost] does not exist")
	_, err = f.svc.GetWall(ctx, "ghost", 0, 10)
	assertInvalidRequest(t, err, "User [ghost] does not exist")

	// 用户校验先于分页校验
	_, err = f.svc.GetTimeline(ctx, "ghost", -1, 0)
	assertInvalidRequest(t, err, "User [ghost] does not exist")
}

func TestGetWallPagination(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.post(t, "u", "p1", "p2", "p3", "p4")

	page, err := f.svc.GetWall(ctx, "u", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p3"}, contents(page))

	page, err = f.svc.GetWall(ctx, "u", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, contents(page))

	_, err = f.svc.GetWall(ctx, "u", 2, 2)
	assertInvalidRequest(t, err, "Page number too high, max value of the 'page' parameter is [1]")

	_, err = f.svc.GetWall(ctx, "u", -1, 2)
	assertInvalidRequest(t, err, "Page index must not be less than zero")

	_, err = f.svc.GetWall(ctx, "u", 0, 0)
	assertInvalidRequest(t, err, "Page size must not be less than one")
}

func TestTimeline(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.post(t, "alice", "a1")
	f.post(t, "bob", "b1")
	f.post(t, "carol", "c1")
	f.post(t, "alice", "a2")
	f.post(t, "bob", "b2")
	f.post(t, "dave", "d1")
	f.post(t, "carol", "c2")

	require.NoError(t, f.svc.Follow(ctx, "alice", "bob"))
	require.NoError(t, f.svc.Follow(ctx, "alice", "carol"))
	require.NoError(t, f.svc.Follow(ctx, "alice", "bob"))

	timeline, err := f.svc.GetCompleteTimeline(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "b2", "c1", "b1"}, contents(timeline))
	assert.Equal(t, []string{"carol", "bob", "carol", "bob"}, authors(timeline))
	for i := 1; i < len(timeline); i++ {
		assert.True(t, timeline[i-1].CreatedDate.Time().After(timeline[i].CreatedDate.Time()))
	}

	page, err := f.svc.GetTimeline(ctx, "alice", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, contents(page))

	_, err = f.svc.GetTimeline(ctx, "alice", 2, 3)
	assertInvalidRequest(t, err, "Page number too high, max value of the 'page' parameter is [1]")

	// 没有关注任何人
	timeline, err = f.svc.GetCompleteTimeline(ctx, "dave")
	require.NoError(t, err)
	assert.NotNil(t, timeline)
	assert.Empty(t, timeline)

	_, err = f.svc.GetTimeline(ctx, "dave", 0, 5)
	assertInvalidRequest(t, err, "Page number too high, max value of the 'page' parameter is [-1]")
}

func TestNewPostAcceptsAnyUsername(t *testing.T) {
	f := newFixture(t, nil)
	name := strings.Repeat("x", 200)
	f.post(t, name, "")

	wall, err := f.svc.GetCompleteWall(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, contents(wall))
}

func TestReadsUseUserDirectory(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	dir := cache.NewUserDirectory(client, "posting:")
	f := newFixture(t, dir)
	ctx := context.Background()

	f.post(t, "alice", "p1")
	_, err := f.svc.GetCompleteWall(ctx, "alice")
	require.NoError(t, err)
	ok, err := dir.Contains(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	// 目录命中时跳过数据库存在性检查
	require.NoError(t, dir.Add(ctx, "cached-only"))
	wall, err := f.svc.GetCompleteWall(ctx, "cached-only")
	require.NoError(t, err)
	assert.Empty(t, wall)
}

func TestDeletedUserCascades(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.post(t, "alice", "a1")
	f.post(t, "bob", "b1")
	require.NoError(t, f.svc.Follow(ctx, "bob", "alice"))

	require.NoError(t, f.store.Users().Delete(ctx, "alice"))

	_, err := f.svc.GetCompleteWall(ctx, "alice")
	assertInvalidRequest(t, err, "User [alice] does not exist")
	timeline, err := f.svc.GetCompleteTimeline(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, timeline)
	assert.ErrorIs(t, f.store.Users().Delete(ctx, "alice"), repository.ErrUserNotFound)
}
