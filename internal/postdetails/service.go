// Package postdetails is the view model of an open post: it owns the cached
// post details of every session and keeps their comment forest and counters in
// sync with confirmed backend mutations.
package postdetails

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"xwitter/internal/backend"
	"xwitter/internal/core"
	"xwitter/internal/metrics"
	"xwitter/internal/store"
	"xwitter/pkg/commenttree"
)

var (
	ErrEmptyContent = errors.New("comment content is empty")
	ErrNotWired     = errors.New("postdetails: backend client and store are required")
)

const (
	reasonLoad    = "load"
	reasonRefresh = "refresh"
	reasonMiss    = "structural_miss"
)

// MutationResult describes what happened to the cached post after a confirmed
// comment mutation.
type MutationResult struct {
	CommentCount int  `json:"commentCount"`
	Applied      bool `json:"applied"`
	Refetched    bool `json:"refetched"`
}

type Service struct {
	Logger *slog.Logger
	Client *backend.Client
	Store  *store.Store

	backend core.PostBackend
	posts   core.PostStore
	locks   *keyedMutex
}

// New builds a ready to use Service outside of the application container.
func New(logger *slog.Logger, b core.PostBackend, posts core.PostStore) *Service {
	s := &Service{Logger: logger, backend: b, posts: posts}
	s.setup()
	return s
}

func (s *Service) Init(_ context.Context) error {
	if s.Client == nil || s.Store == nil {
		return ErrNotWired
	}

	s.backend = s.Client
	s.posts = s.Store
	s.setup()

	return nil
}

func (s *Service) setup() {
	s.Logger = s.Logger.With("component", "postdetails.Service")
	s.locks = newKeyedMutex()
}

// Load returns the cached details of postID, fetching them when nothing is
// cached or refresh is set.
func (s *Service) Load(ctx context.Context, session core.Session, postID string, refresh bool) (core.PostDetails, error) {
	key := session.Key(postID)

	unlock := s.locks.Lock(key)
	defer unlock()

	if !refresh {
		if post, ok := s.cached(ctx, key); ok {
			return post, nil
		}
		return s.refetch(ctx, session, postID, reasonLoad)
	}

	return s.refetch(ctx, session, postID, reasonRefresh)
}

// CreateComment publishes a comment, or a reply when parentID is set, and
// inserts the confirmed comment into the cached forest. When the parent is not
// part of the cached forest the post is refetched instead.
func (s *Service) CreateComment(ctx context.Context, session core.Session, postID, content, parentID string) (commenttree.Node, MutationResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return commenttree.Node{}, MutationResult{}, ErrEmptyContent
	}

	raw, err := s.backend.CreateComment(ctx, session.Token, core.CreateCommentRequest{
		PostID:          postID,
		Content:         content,
		ParentCommentID: parentID,
	})
	if err != nil {
		return commenttree.Node{}, MutationResult{}, err
	}

	comment := commenttree.NormalizeIncoming(raw, s.fallbackAuthor(ctx, session, raw))

	key := session.Key(postID)
	unlock := s.locks.Lock(key)
	defer unlock()

	post, ok := s.cached(ctx, key)
	if !ok {
		post, err := s.refetch(ctx, session, postID, reasonLoad)
		return comment, MutationResult{CommentCount: post.CommentCount, Refetched: err == nil}, err
	}

	comments, inserted := commenttree.Insert(post.Comments, comment, parentID)
	if !inserted {
		metrics.TreeMutations.WithLabelValues("insert", "miss").Inc()
		s.Logger.Info("parent comment not cached, refetching post", "post", postID, "parent", parentID)

		post, err := s.resync(ctx, session, postID)
		return comment, MutationResult{CommentCount: post.CommentCount, Refetched: err == nil}, err
	}
	metrics.TreeMutations.WithLabelValues("insert", "inserted").Inc()

	post.Comments = comments
	post.CommentCount++
	s.store(ctx, key, post)

	return comment, MutationResult{CommentCount: post.CommentCount, Applied: true}, nil
}

// DeleteComment deletes a comment and removes it with all its replies from the
// cached forest, decrementing the counter by the size of the removed subtree.
func (s *Service) DeleteComment(ctx context.Context, session core.Session, postID, commentID string) (string, MutationResult, error) {
	msg, err := s.backend.DeleteComment(ctx, session.Token, commentID)
	if err != nil {
		return "", MutationResult{}, err
	}

	key := session.Key(postID)
	unlock := s.locks.Lock(key)
	defer unlock()

	post, ok := s.cached(ctx, key)
	if !ok {
		return msg, MutationResult{}, nil
	}

	comments, removed, count := commenttree.Remove(post.Comments, commentID)
	if !removed {
		metrics.TreeMutations.WithLabelValues("remove", "miss").Inc()
		s.Logger.Info("deleted comment not cached, refetching post", "post", postID, "comment", commentID)

		post, err := s.resync(ctx, session, postID)
		return msg, MutationResult{CommentCount: post.CommentCount, Refetched: err == nil}, err
	}
	metrics.TreeMutations.WithLabelValues("remove", "removed").Inc()

	post.Comments = comments
	post.CommentCount = commenttree.Decrement(post.CommentCount, count)
	s.store(ctx, key, post)

	return msg, MutationResult{CommentCount: post.CommentCount, Applied: true}, nil
}

func (s *Service) Like(ctx context.Context, session core.Session, postID string) (string, error) {
	msg, err := s.backend.LikePost(ctx, session.Token, postID)
	if err != nil {
		return "", err
	}

	s.update(ctx, session.Key(postID), func(post *core.PostDetails) {
		if !post.IsLiked {
			post.IsLiked = true
			post.LikeCount++
		}
	})
	return msg, nil
}

func (s *Service) Unlike(ctx context.Context, session core.Session, postID string) (string, error) {
	msg, err := s.backend.UnlikePost(ctx, session.Token, postID)
	if err != nil {
		return "", err
	}

	s.update(ctx, session.Key(postID), func(post *core.PostDetails) {
		if post.IsLiked {
			post.IsLiked = false
			post.LikeCount = max(0, post.LikeCount-1)
		}
	})
	return msg, nil
}

func (s *Service) Repost(ctx context.Context, session core.Session, postID string) (core.Repost, error) {
	repost, err := s.backend.Repost(ctx, session.Token, postID)
	if err != nil {
		return core.Repost{}, err
	}

	s.update(ctx, session.Key(postID), func(post *core.PostDetails) {
		if !post.IsReposted {
			post.RepostCount++
		}
		post.IsReposted = true
		post.RepostID = &repost.ID
	})
	return repost, nil
}

// DeleteRepost undoes a repost. postID is optional and only used to patch the
// cached post.
func (s *Service) DeleteRepost(ctx context.Context, session core.Session, postID, repostID string) (string, error) {
	msg, err := s.backend.DeleteRepost(ctx, session.Token, repostID)
	if err != nil {
		return "", err
	}

	if postID == "" {
		return msg, nil
	}

	s.update(ctx, session.Key(postID), func(post *core.PostDetails) {
		if post.IsReposted {
			post.RepostCount = max(0, post.RepostCount-1)
		}
		post.IsReposted = false
		post.RepostID = nil
	})
	return msg, nil
}

// Forget drops the cached details of postID.
func (s *Service) Forget(ctx context.Context, session core.Session, postID string) error {
	return s.posts.Delete(ctx, session.Key(postID))
}

func (s *Service) update(ctx context.Context, key string, fn func(post *core.PostDetails)) {
	unlock := s.locks.Lock(key)
	defer unlock()

	post, ok := s.cached(ctx, key)
	if !ok {
		return
	}

	fn(&post)
	s.store(ctx, key, post)
}

// resync refetches a post whose cached forest no longer matches the backend.
// The stale copy is dropped when the refetch fails so the next Load goes back
// to the backend.
func (s *Service) resync(ctx context.Context, session core.Session, postID string) (core.PostDetails, error) {
	post, err := s.refetch(ctx, session, postID, reasonMiss)
	if err == nil {
		return post, nil
	}

	key := session.Key(postID)
	s.Logger.Warn("failed to refetch post, dropping cached copy", "post", postID, "error", err)
	if delErr := s.posts.Delete(ctx, key); delErr != nil {
		s.Logger.Warn("failed to drop cached post", "key", key, "error", delErr)
	}
	return core.PostDetails{}, err
}

func (s *Service) refetch(ctx context.Context, session core.Session, postID, reason string) (core.PostDetails, error) {
	metrics.Refetches.WithLabelValues(reason).Inc()

	post, err := s.backend.GetPost(ctx, session.Token, postID)
	if err != nil {
		return core.PostDetails{}, err
	}

	s.store(ctx, session.Key(postID), post)
	return post, nil
}

// cached treats store failures as a miss: the cache is never the source of
// truth.
func (s *Service) cached(ctx context.Context, key string) (core.PostDetails, bool) {
	post, ok, err := s.posts.Get(ctx, key)
	if err != nil {
		s.Logger.Warn("failed to read cached post", "key", key, "error", err)
		return core.PostDetails{}, false
	}
	return post, ok
}

func (s *Service) store(ctx context.Context, key string, post core.PostDetails) {
	if err := s.posts.Put(ctx, key, post); err != nil {
		s.Logger.Warn("failed to cache post", "key", key, "error", err)
	}
}

func (s *Service) fallbackAuthor(ctx context.Context, session core.Session, raw commenttree.RawNode) core.Author {
	if !needsAuthor(raw) {
		return UnknownAuthor
	}

	user, err := s.backend.Me(ctx, session.Token)
	if err != nil {
		s.Logger.Debug("current user unavailable, using placeholder author", "error", err)
		return UnknownAuthor
	}
	return FallbackAuthor(user)
}
