package service

import (
    "context"
    "errors"
    "time"

    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/attribute"
    "go.opentelemetry.io/otel/codes"
    "go.opentelemetry.io/otel/trace"
    "go.uber.org/zap"

    "github.com/d60-Lab/posting/internal/model"
    "github.com/d60-Lab/posting/internal/repository"
    "github.com/d60-Lab/posting/pkg/logger"
)

var tracer = otel.Tracer("github.com/d60-Lab/posting/internal/service")

// PostingService 发帖、关注、墙和时间线；每个操作一个事务
type PostingService interface {
    NewPost(ctx context.Context, username, content string) error
    Follow(ctx context.Context, requester, followed string) error
    GetCompleteWall(ctx context.Context, username string) ([]model.PostDTO, error)
    GetWall(ctx context.Context, username string, page, size int) ([]model.PostDTO, error)
    GetCompleteTimeline(ctx context.Context, username string) ([]model.PostDTO, error)
    GetTimeline(ctx context.Context, username string, page, size int) ([]model.PostDTO, error)
}

// Option 可选配置
type Option func(*postingService)

// WithClock 替换创建时间的时钟（测试用）
func WithClock(now func() time.Time) Option {
    return func(s *postingService) { s.now = now }
}

type postingService struct {
    store     repository.Store
    validator *Validator
    now       func() time.Time
}

func NewPostingService(store repository.Store, validator *Validator, opts ...Option) PostingService {
    s := &postingService{store: store, validator: validator, now: time.Now}
    for _, opt := range opts {
        opt(s)
    }
    return s
}

func (s *postingService) NewPost(ctx context.Context, username, content string) (err error) {
    ctx, span := s.start(ctx, "PostingService.NewPost", username)
    defer func() { s.end(span, "new post", username, err) }()

    return s.store.Transaction(ctx, false, func(st repository.Store) error {
        user, err := st.Users().FindOrCreate(ctx, username)
        if err != nil {
            return err
        }
        post := &model.Post{
            UserID:      user.ID,
            Content:     content,
            CreatedDate: s.now().UTC().Truncate(time.Microsecond),
        }
        return st.Posts().Create(ctx, post)
    })
}

func (s *postingService) Follow(ctx context.Context, requester, followed string) (err error) {
    ctx, span := s.start(ctx, "PostingService.Follow", requester)
    span.SetAttributes(attribute.String("posting.followed", followed))
    defer func() { s.end(span, "follow", requester, err) }()

    if err := s.validator.ValidateFollowingUsernames(requester, followed); err != nil {
        return err
    }
    return s.store.Transaction(ctx, false, func(st repository.Store) error {
        from, err := s.findExistingUser(ctx, st, requester)
        if err != nil {
            return err
        }
        to, err := s.findExistingUser(ctx, st, followed)
        if err != nil {
            return err
        }
        return st.Follows().Create(ctx, from.ID, to.ID)
    })
}

func (s *postingService) findExistingUser(ctx context.Context, st repository.Store, username string) (*model.User, error) {
    u, err := st.Users().FindByUsername(ctx, username)
    if errors.Is(err, repository.ErrUserNotFound) {
        return nil, s.validator.UnknownUsername(username)
    }
    return u, err
}

func (s *postingService) GetCompleteWall(ctx context.Context, username string) (res []model.PostDTO, err error) {
    ctx, span := s.start(ctx, "PostingService.GetCompleteWall", username)
    defer func() { s.end(span, "get complete wall", username, err) }()

    return s.findAll(ctx, username, func(st repository.Store) ([]*model.Post, error) {
        return st.Posts().FindByUsername(ctx, username)
    })
}

func (s *postingService) GetWall(ctx context.Context, username string, page, size int) (res []model.PostDTO, err error) {
    ctx, span := s.start(ctx, "PostingService.GetWall", username)
    defer func() { s.end(span, "get wall", username, err) }()

    return s.findPage(ctx, username, page, size, func(st repository.Store) (*repository.Page, error) {
        return st.Posts().FindPageByUsername(ctx, username, page, size)
    })
}

func (s *postingService) GetCompleteTimeline(ctx context.Context, username string) (res []model.PostDTO, err error) {
    ctx, span := s.start(ctx, "PostingService.GetCompleteTimeline", username)
    defer func() { s.end(span, "get complete timeline", username, err) }()

    return s.findAll(ctx, username, func(st repository.Store) ([]*model.Post, error) {
        return st.Posts().FindByFollowed(ctx, username)
    })
}

func (s *postingService) GetTimeline(ctx context.Context, username string, page, size int) (res []model.PostDTO, err error) {
    ctx, span := s.start(ctx, "PostingService.GetTimeline", username)
    defer func() { s.end(span, "get timeline", username, err) }()

    return s.findPage(ctx, username, page, size, func(st repository.Store) (*repository.Page, error) {
        return st.Posts().FindPageByFollowed(ctx, username, page, size)
    })
}

func (s *postingService) findAll(ctx context.Context, username string, fetch func(repository.Store) ([]*model.Post, error)) ([]model.PostDTO, error) {
    var res []model.PostDTO
    err := s.store.Transaction(ctx, true, func(st repository.Store) error {
        if err := s.validator.ValidateUserExists(ctx, st.Users(), username); err != nil {
            return err
        }
        posts, err := fetch(st)
        if err != nil {
            return err
        }
        res = model.ToPostDTOs(posts)
        return nil
    })
    if err != nil {
        return nil, err
    }
    return res, nil
}

// findPage 顺序：用户存在 -> 分页参数 -> 取数（含总数）-> 页码范围
func (s *postingService) findPage(ctx context.Context, username string, page, size int, fetch func(repository.Store) (*repository.Page, error)) ([]model.PostDTO, error) {
    var res []model.PostDTO
    err := s.store.Transaction(ctx, true, func(st repository.Store) error {
        if err := s.validator.ValidateUserExists(ctx, st.Users(), username); err != nil {
            return err
        }
        if err := s.validator.ValidatePageRequest(page, size); err != nil {
            return err
        }
        p, err := fetch(st)
        if err != nil {
            return err
        }
        if err := s.validator.ValidatePageNumber(page, p.TotalPages); err != nil {
            return err
        }
        res = model.ToPostDTOs(p.Posts)
        return nil
    })
    if err != nil {
        return nil, err
    }
    return res, nil
}

func (s *postingService) start(ctx context.Context, name, username string) (context.Context, trace.Span) {
    ctx, span := tracer.Start(ctx, name)
    span.SetAttributes(attribute.String("posting.username", username))
    return ctx, span
}

// end 非法请求属于正常结果，只有意外错误才记录并标记 span
func (s *postingService) end(span trace.Span, op, username string, err error) {
    defer span.End()
    if err == nil || IsInvalidRequest(err) {
        return
    }
    span.RecordError(err)
    span.SetStatus(codes.Error, err.Error())
    logger.Error(op+" failed", zap.String("username", username), zap.Error(err))
}
