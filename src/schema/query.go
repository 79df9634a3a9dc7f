package schema

import (
	"context"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the root of both the query and the mutation type.
type Resolver struct {
	svc Services
}

func parseID(id graphql.ID) (uuid.UUID, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.InvalidInput, "Invalid ID", err)
	}
	return parsed, nil
}

func (r *Resolver) AllPosts(ctx context.Context) (*[]*postResolver, error) {
	rows, err := r.svc.Posts.All(ctx)
	if err != nil {
		return nil, err
	}
	out := postList(rows)
	return &out, nil
}

// MyNotifications is empty for anonymous callers.
func (r *Resolver) MyNotifications(ctx context.Context) (*[]*notificationResolver, error) {
	out := []*notificationResolver{}
	viewer, ok := auth.FromContext(ctx)
	if !ok {
		return &out, nil
	}
	rows, err := r.svc.Notifications.ForRecipient(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out = append(out, &notificationResolver{m: rows[i]})
	}
	return &out, nil
}

func (r *Resolver) GetMessages(ctx context.Context, args struct{ FriendID graphql.ID }) (*[]*messageResolver, error) {
	viewer, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}
	friendID, err := parseID(args.FriendID)
	if err != nil {
		return nil, err
	}
	rows, err := r.svc.Messages.Conversation(ctx, viewer.UserID, friendID)
	if err != nil {
		return nil, err
	}
	out := make([]*messageResolver, len(rows))
	for i := range rows {
		out[i] = &messageResolver{m: rows[i]}
	}
	return &out, nil
}

func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*userResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	return loadUser(ctx, id)
}

func (r *Resolver) DebugCheck() *string {
	s := "I am working!"
	return &s
}
