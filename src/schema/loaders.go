package schema

import (
	"context"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"
)

const batchWait = 2 * time.Millisecond

// loaders batch and cache the per-object lookups of a single request. They
// must not outlive it. Mutations clear the keys they change so later fields
// in the same document see the new state.
type loaders struct {
	users          *dataloader.Loader[uuid.UUID, models.User]
	posts          *dataloader.Loader[uuid.UUID, models.Post]
	followersCount *dataloader.Loader[uuid.UUID, int]
	followingCount *dataloader.Loader[uuid.UUID, int]
	isFollowing    *dataloader.Loader[uuid.UUID, bool]
	postsByAuthor  *dataloader.Loader[uuid.UUID, []models.Post]
	likesByPost    *dataloader.Loader[uuid.UUID, []models.Like]
	commentsByPost *dataloader.Loader[uuid.UUID, []models.Comment]
}

type loadersKey struct{}

func newLoaders(svc Services, viewer auth.Identity, authenticated bool) *loaders {
	followedBy := func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
		if !authenticated {
			return nil, nil
		}
		return svc.Follows.FollowedBy(ctx, viewer.UserID, ids)
	}

	return &loaders{
		users:          newLoader(strict(svc.Users.ByIDs, "User matching query does not exist.")),
		posts:          newLoader(strict(svc.Posts.ByIDs, "Post matching query does not exist.")),
		followersCount: newLoader(lenient(svc.Follows.FollowersCounts)),
		followingCount: newLoader(lenient(svc.Follows.FollowingCounts)),
		isFollowing:    newLoader(lenient(followedBy)),
		postsByAuthor:  newLoader(lenient(svc.Posts.ByAuthors)),
		likesByPost:    newLoader(lenient(svc.Posts.LikesByPosts)),
		commentsByPost: newLoader(lenient(svc.Posts.CommentsByPosts)),
	}
}

func newLoader[V any](fn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(fn, dataloader.WithWait[uuid.UUID, V](batchWait))
}

// lenient resolves keys missing from the fetch result to the zero value.
func lenient[V any](fetch func(context.Context, []uuid.UUID) (map[uuid.UUID]V, error)) dataloader.BatchFunc[uuid.UUID, V] {
	return batch(fetch, "")
}

// strict resolves keys missing from the fetch result to NOT_FOUND.
func strict[V any](fetch func(context.Context, []uuid.UUID) (map[uuid.UUID]V, error), notFound string) dataloader.BatchFunc[uuid.UUID, V] {
	return batch(fetch, notFound)
}

func batch[V any](fetch func(context.Context, []uuid.UUID) (map[uuid.UUID]V, error), notFound string) dataloader.BatchFunc[uuid.UUID, V] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[V] {
		out := make([]*dataloader.Result[V], len(keys))
		found, err := fetch(ctx, keys)
		for i, k := range keys {
			if err != nil {
				out[i] = &dataloader.Result[V]{Error: err}
				continue
			}
			v, ok := found[k]
			if !ok && notFound != "" {
				out[i] = &dataloader.Result[V]{Error: apperrors.New(apperrors.NotFound, notFound)}
				continue
			}
			out[i] = &dataloader.Result[V]{Data: v}
		}
		return out
	}
}

func withLoaders(ctx context.Context, l *loaders) context.Context {
	return context.WithValue(ctx, loadersKey{}, l)
}

func loadersFrom(ctx context.Context) *loaders {
	return ctx.Value(loadersKey{}).(*loaders)
}

func loadUser(ctx context.Context, id uuid.UUID) (*userResolver, error) {
	u, err := loadersFrom(ctx).users.Load(ctx, id)()
	if err != nil {
		return nil, err
	}
	return &userResolver{m: u}, nil
}

func loadPost(ctx context.Context, id uuid.UUID) (*postResolver, error) {
	p, err := loadersFrom(ctx).posts.Load(ctx, id)()
	if err != nil {
		return nil, err
	}
	return &postResolver{m: p}, nil
}
