package lmsapi

import (
	"context"
	"net/url"

	"github.com/trezcool/masomo-portal/core/cache"
)

func (c *Client) Users(role string) *Query[[]User] {
	return subscribe[[]User](c, queryDef{
		path:  "/users",
		query: values("role", role),
		field: "users",
		tags:  staticTags(cache.TypeTag(TagUser)),
	})
}

func (c *Client) User(id string) *Query[User] {
	return subscribe[User](c, queryDef{
		path:  "/users/" + url.PathEscape(id),
		field: "user",
		tags:  staticTags(cache.Tag{Type: TagUser, ID: id}),
	})
}

func (c *Client) UpdateUser(ctx context.Context, id string, in UserUpdate) (User, error) {
	var u User
	err := c.mutate(ctx, request{method: "PUT", path: "/users/" + url.PathEscape(id), body: in}, "user", &u,
		cache.TypeTag(TagUser))
	return u, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.mutate(ctx, request{method: "DELETE", path: "/users/" + url.PathEscape(id)}, "", nil,
		cache.TypeTag(TagUser))
}
