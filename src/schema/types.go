package schema

import (
	"context"
	"strings"

	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
)

func toID(id uuid.UUID) graphql.ID {
	return graphql.ID(id.String())
}

type userResolver struct {
	m models.User
}

func (r *userResolver) ID() graphql.ID { return toID(r.m.ID) }
func (r *userResolver) Username() string { return r.m.Username }
func (r *userResolver) Email() string { return r.m.Email }
func (r *userResolver) Bio() string { return r.m.Bio }
func (r *userResolver) Avatar() *string { return r.m.AvatarURL }
func (r *userResolver) IsVerified() bool { return r.m.IsVerified }

func (r *userResolver) FollowersCount(ctx context.Context) (*int32, error) {
	n, err := loadersFrom(ctx).followersCount.Load(ctx, r.m.ID)()
	if err != nil {
		return nil, err
	}
	c := int32(n)
	return &c, nil
}

func (r *userResolver) FollowingCount(ctx context.Context) (*int32, error) {
	n, err := loadersFrom(ctx).followingCount.Load(ctx, r.m.ID)()
	if err != nil {
		return nil, err
	}
	c := int32(n)
	return &c, nil
}

// IsFollowing is false for anonymous viewers.
func (r *userResolver) IsFollowing(ctx context.Context) (*bool, error) {
	following, err := loadersFrom(ctx).isFollowing.Load(ctx, r.m.ID)()
	if err != nil {
		return nil, err
	}
	return &following, nil
}

func (r *userResolver) PostSet(ctx context.Context) (*[]*postResolver, error) {
	rows, err := loadersFrom(ctx).postsByAuthor.Load(ctx, r.m.ID)()
	if err != nil {
		return nil, err
	}
	out := postList(rows)
	return &out, nil
}

type postResolver struct {
	m models.Post
}

func postList(rows []models.Post) []*postResolver {
	out := make([]*postResolver, len(rows))
	for i := range rows {
		out[i] = &postResolver{m: rows[i]}
	}
	return out
}

func (r *postResolver) ID() graphql.ID { return toID(r.m.ID) }
func (r *postResolver) Content() string { return r.m.Content }
func (r *postResolver) Image() *string { return r.m.ImageURL }
func (r *postResolver) CreatedAt() DateTime { return DateTime{r.m.CreatedAt} }

func (r *postResolver) Author(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.AuthorID)
}

func (r *postResolver) Likes(ctx context.Context) ([]*likeResolver, error) {
	rows, err := loadersFrom(ctx).likesByPost.Load(ctx, r.m.ID)()
	if err != nil {
		return nil, err
	}
	out := make([]*likeResolver, len(rows))
	for i := range rows {
		out[i] = &likeResolver{m: rows[i]}
	}
	return out, nil
}

func (r *postResolver) Comments(ctx context.Context) ([]*commentResolver, error) {
	rows, err := loadersFrom(ctx).commentsByPost.Load(ctx, r.m.ID)()
	if err != nil {
		return nil, err
	}
	out := make([]*commentResolver, len(rows))
	for i := range rows {
		out[i] = &commentResolver{m: rows[i]}
	}
	return out, nil
}

type likeResolver struct {
	m models.Like
}

func (r *likeResolver) ID() graphql.ID { return toID(r.m.ID) }

func (r *likeResolver) User(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.UserID)
}

func (r *likeResolver) Post(ctx context.Context) (*postResolver, error) {
	return loadPost(ctx, r.m.PostID)
}

type commentResolver struct {
	m models.Comment
}

func (r *commentResolver) ID() graphql.ID { return toID(r.m.ID) }
func (r *commentResolver) Text() string { return r.m.Text }
func (r *commentResolver) CreatedAt() DateTime { return DateTime{r.m.CreatedAt} }

func (r *commentResolver) Author(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.AuthorID)
}

func (r *commentResolver) Post(ctx context.Context) (*postResolver, error) {
	return loadPost(ctx, r.m.PostID)
}

type shareResolver struct {
	m models.Share
}

func (r *shareResolver) ID() graphql.ID { return toID(r.m.ID) }
func (r *shareResolver) Message() *string { return r.m.Message }
func (r *shareResolver) CreatedAt() DateTime { return DateTime{r.m.CreatedAt} }

func (r *shareResolver) OriginalPost(ctx context.Context) (*postResolver, error) {
	return loadPost(ctx, r.m.OriginalPostID)
}

func (r *shareResolver) SharedBy(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.SharedByID)
}

type notificationResolver struct {
	m models.Notification
}

func (r *notificationResolver) ID() graphql.ID { return toID(r.m.ID) }
func (r *notificationResolver) NotificationType() string { return strings.ToUpper(string(r.m.Type)) }
func (r *notificationResolver) IsRead() bool { return r.m.IsRead }
func (r *notificationResolver) CreatedAt() DateTime { return DateTime{r.m.CreatedAt} }

func (r *notificationResolver) Recipient(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.RecipientID)
}

func (r *notificationResolver) Sender(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.SenderID)
}

// Post is null for follow notifications.
func (r *notificationResolver) Post(ctx context.Context) (*postResolver, error) {
	if r.m.PostID == nil {
		return nil, nil
	}
	return loadPost(ctx, *r.m.PostID)
}

type messageResolver struct {
	m models.Message
}

func (r *messageResolver) ID() graphql.ID { return toID(r.m.ID) }
func (r *messageResolver) Content() string { return r.m.Content }
func (r *messageResolver) IsRead() bool { return r.m.IsRead }
func (r *messageResolver) CreatedAt() DateTime { return DateTime{r.m.CreatedAt} }

func (r *messageResolver) Sender(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.SenderID)
}

func (r *messageResolver) Receiver(ctx context.Context) (*userResolver, error) {
	return loadUser(ctx, r.m.ReceiverID)
}
