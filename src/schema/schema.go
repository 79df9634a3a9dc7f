// Package schema serves the GraphQL API over the module services.
package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/gemgeek/gemconnect-backend/src/core/helpers"
	"github.com/gemgeek/gemconnect-backend/src/modules/authentication"
	connection "github.com/gemgeek/gemconnect-backend/src/modules/connections"
	"github.com/gemgeek/gemconnect-backend/src/modules/messages"
	"github.com/gemgeek/gemconnect-backend/src/modules/notifications"
	"github.com/gemgeek/gemconnect-backend/src/modules/posts"
	"github.com/gemgeek/gemconnect-backend/src/modules/users"
	"github.com/gofiber/fiber/v2"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"
)

//go:embed schema.graphql
var sdl string

// Services are the collaborators the resolvers delegate to.
type Services struct {
	Users         *users.Service
	Posts         *posts.Service
	Follows       *connection.Service
	Messages      *messages.Service
	Notifications *notifications.Service
	Auth          *authentication.Service
}

type Schema struct {
	schema *graphql.Schema
	svc    Services
}

// New parses the SDL and checks it against the resolvers.
func New(svc Services) (*Schema, error) {
	s, err := graphql.ParseSchema(sdl, &Resolver{svc: svc}, graphql.MaxParallelism(20))
	if err != nil {
		return nil, err
	}
	return &Schema{schema: s, svc: svc}, nil
}

// Request is the JSON body of a GraphQL call.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Exec runs one operation with a fresh set of loaders for the caller in ctx.
func (s *Schema) Exec(ctx context.Context, req Request) *graphql.Response {
	viewer, ok := auth.FromContext(ctx)
	ctx = withLoaders(ctx, newLoaders(s.svc, viewer, ok))

	resp := s.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	for _, qe := range resp.Errors {
		if qe.ResolverError == nil {
			continue
		}
		if apperrors.KindOf(qe.ResolverError) == apperrors.Internal {
			logrus.WithError(qe.ResolverError).WithField("path", qe.Path).Error("Resolver failed")
			qe.Message = "Internal server error"
			qe.Extensions = map[string]interface{}{"code": string(apperrors.Internal)}
			continue
		}
		var appErr *apperrors.Error
		errors.As(qe.ResolverError, &appErr)
		qe.Message = appErr.Message
		if appErr.Kind == apperrors.InvalidInput && appErr.Err != nil {
			if qe.Extensions == nil {
				qe.Extensions = appErr.Extensions()
			}
			qe.Extensions["detail"] = appErr.Err.Error()
		}
	}
	return resp
}

type readOnlyKey struct{}

var errMutationOverGet = apperrors.New(apperrors.InvalidOperation, "Can only perform a mutation operation from a POST request.")

// writable rejects mutations on requests that must not change state.
func writable(ctx context.Context) error {
	if ro, _ := ctx.Value(readOnlyKey{}).(bool); ro {
		return errMutationOverGet
	}
	return nil
}

// Handler serves GraphQL over POST (JSON body) and GET (query string). GET
// requests are read-only: mutations are refused with 405.
func (s *Schema) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req Request
		ctx := c.UserContext()
		if c.Method() == fiber.MethodGet {
			ctx = context.WithValue(ctx, readOnlyKey{}, true)
			req.Query = c.Query("query")
			req.OperationName = c.Query("operationName")
			if v := c.Query("variables"); v != "" {
				if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
					return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid variables", err)
				}
			}
		} else if err := c.BodyParser(&req); err != nil {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
		}

		if req.Query == "" {
			return helpers.HandleError(c, fiber.StatusBadRequest, "Must provide query string", nil)
		}
		resp := s.Exec(ctx, req)
		for _, qe := range resp.Errors {
			if qe.ResolverError == error(errMutationOverGet) {
				c.Status(fiber.StatusMethodNotAllowed)
				c.Set(fiber.HeaderAllow, fiber.MethodPost)
				break
			}
		}
		return c.JSON(resp)
	}
}
