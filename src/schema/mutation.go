package schema

import (
	"context"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/gemgeek/gemconnect-backend/src/modules/authentication"
	graphql "github.com/graph-gophers/graphql-go"
)

// actor is the caller of a mutation that needs a logged-in user.
func actor(ctx context.Context) (auth.Identity, error) {
	if err := writable(ctx); err != nil {
		return auth.Identity{}, err
	}
	return auth.Require(ctx)
}

type createPostPayload struct{ post *postResolver }

func (p *createPostPayload) Post() *postResolver { return p.post }

func (r *Resolver) CreatePost(ctx context.Context, args struct {
	Content   string
	ImageData *string
}) (*createPostPayload, error) {
	viewer, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	post, err := r.svc.Posts.CreatePost(ctx, viewer.UserID, args.Content, args.ImageData)
	if err != nil {
		return nil, err
	}
	loadersFrom(ctx).postsByAuthor.Clear(ctx, viewer.UserID)
	return &createPostPayload{post: &postResolver{m: *post}}, nil
}

type createCommentPayload struct{ comment *commentResolver }

func (p *createCommentPayload) Comment() *commentResolver { return p.comment }

func (r *Resolver) CreateComment(ctx context.Context, args struct {
	PostID graphql.ID
	Text   string
}) (*createCommentPayload, error) {
	viewer, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	postID, err := parseID(args.PostID)
	if err != nil {
		return nil, err
	}
	comment, err := r.svc.Posts.CreateComment(ctx, viewer.UserID, postID, args.Text)
	if err != nil {
		return nil, err
	}
	loadersFrom(ctx).commentsByPost.Clear(ctx, postID)
	return &createCommentPayload{comment: &commentResolver{m: *comment}}, nil
}

type likePostPayload struct {
	user  *userResolver
	post  *postResolver
	liked bool
}

func (p *likePostPayload) User() *userResolver { return p.user }
func (p *likePostPayload) Post() *postResolver { return p.post }
func (p *likePostPayload) Liked() *bool { return &p.liked }

func (r *Resolver) LikePost(ctx context.Context, args struct{ PostID graphql.ID }) (*likePostPayload, error) {
	viewer, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	postID, err := parseID(args.PostID)
	if err != nil {
		return nil, err
	}
	liked, err := r.svc.Posts.ToggleLike(ctx, viewer.UserID, postID)
	if err != nil {
		return nil, err
	}
	loadersFrom(ctx).likesByPost.Clear(ctx, postID)
	user, err := loadUser(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	post, err := loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &likePostPayload{user: user, post: post, liked: liked}, nil
}

type followUserPayload struct{ ok bool }

func (p *followUserPayload) Ok() *bool { return &p.ok }

func (r *Resolver) FollowUser(ctx context.Context, args struct{ UserID graphql.ID }) (*followUserPayload, error) {
	viewer, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	targetID, err := parseID(args.UserID)
	if err != nil {
		return nil, err
	}
	following, err := r.svc.Follows.ToggleFollow(ctx, viewer.UserID, targetID)
	if err != nil {
		return nil, err
	}
	l := loadersFrom(ctx)
	l.followersCount.Clear(ctx, targetID)
	l.followingCount.Clear(ctx, viewer.UserID)
	l.isFollowing.Clear(ctx, targetID)
	return &followUserPayload{ok: following}, nil
}

type registerUserPayload struct{ user *userResolver }

func (p *registerUserPayload) User() *userResolver { return p.user }

func (r *Resolver) RegisterUser(ctx context.Context, args struct {
	Username string
	Password string
	Email    string
}) (*registerUserPayload, error) {
	if err := writable(ctx); err != nil {
		return nil, err
	}
	user, err := r.svc.Auth.Register(ctx, authentication.RegisterInput{
		Username: args.Username,
		Email:    args.Email,
		Password: args.Password,
	})
	if err != nil {
		return nil, err
	}
	return &registerUserPayload{user: &userResolver{m: *user}}, nil
}

type sharePostPayload struct{ share *shareResolver }

func (p *sharePostPayload) Share() *shareResolver { return p.share }

func (r *Resolver) SharePost(ctx context.Context, args struct {
	PostID  graphql.ID
	Message *string
}) (*sharePostPayload, error) {
	viewer, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	postID, err := parseID(args.PostID)
	if err != nil {
		return nil, err
	}
	share, err := r.svc.Posts.SharePost(ctx, viewer.UserID, postID, args.Message)
	if err != nil {
		return nil, err
	}
	return &sharePostPayload{share: &shareResolver{m: *share}}, nil
}

type sendMessagePayload struct{ message *messageResolver }

func (p *sendMessagePayload) Message() *messageResolver { return p.message }

func (r *Resolver) SendMessage(ctx context.Context, args struct {
	ReceiverID graphql.ID
	Content    string
}) (*sendMessagePayload, error) {
	viewer, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	receiverID, err := parseID(args.ReceiverID)
	if err != nil {
		return nil, err
	}
	msg, err := r.svc.Messages.SendMessage(ctx, viewer.UserID, receiverID, args.Content)
	if err != nil {
		return nil, err
	}
	return &sendMessagePayload{message: &messageResolver{m: *msg}}, nil
}

type tokenPayload struct{ t *auth.Token }

func (p *tokenPayload) Token() string { return p.t.Token }
func (p *tokenPayload) Payload() GenericScalar { return GenericScalar(p.t.Payload) }
func (p *tokenPayload) RefreshExpiresIn() int32 { return int32(p.t.RefreshExpiresIn) }

func (r *Resolver) TokenAuth(ctx context.Context, args struct {
	Username string
	Password string
}) (*tokenPayload, error) {
	if err := writable(ctx); err != nil {
		return nil, err
	}
	tok, err := r.svc.Auth.ObtainToken(ctx, args.Username, args.Password)
	if err != nil {
		return nil, err
	}
	return &tokenPayload{t: tok}, nil
}

type verifyPayload struct{ payload auth.Payload }

func (p *verifyPayload) Payload() GenericScalar { return GenericScalar(p.payload) }

func tokenArg(token *string) (string, error) {
	if token == nil || *token == "" {
		return "", apperrors.New(apperrors.Unauthenticated, "Token is required")
	}
	return *token, nil
}

func (r *Resolver) VerifyToken(ctx context.Context, args struct{ Token *string }) (*verifyPayload, error) {
	if err := writable(ctx); err != nil {
		return nil, err
	}
	token, err := tokenArg(args.Token)
	if err != nil {
		return nil, err
	}
	payload, err := r.svc.Auth.Verify(token)
	if err != nil {
		return nil, err
	}
	return &verifyPayload{payload: payload}, nil
}

func (r *Resolver) RefreshToken(ctx context.Context, args struct{ Token *string }) (*tokenPayload, error) {
	if err := writable(ctx); err != nil {
		return nil, err
	}
	token, err := tokenArg(args.Token)
	if err != nil {
		return nil, err
	}
	tok, err := r.svc.Auth.Refresh(token)
	if err != nil {
		return nil, err
	}
	return &tokenPayload{t: tok}, nil
}
