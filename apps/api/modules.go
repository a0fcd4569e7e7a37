package lmsapi

import (
	"context"
	"net/url"

	"github.com/trezcool/masomo-portal/core/cache"
)

func courseModulesPath(courseID string) string {
	return "/modules/courses/" + url.PathEscape(courseID) + "/modules"
}

func (c *Client) Modules(courseID string) *Query[[]Module] {
	return subscribe[[]Module](c, queryDef{
		path:  courseModulesPath(courseID),
		field: "modules",
		tags:  staticTags(cache.Tag{Type: TagModule, ID: courseID}),
	})
}

func (c *Client) Module(id, courseID string) *Query[Module] {
	return subscribe[Module](c, queryDef{
		path:  "/modules/" + url.PathEscape(id),
		query: values("courseId", courseID),
		field: "module",
		tags:  staticTags(cache.Tag{Type: TagModule, ID: id}),
	})
}

func (c *Client) CreateModule(ctx context.Context, courseID string, in ModuleInput) (Module, error) {
	in.CourseID = ""
	var mod Module
	err := c.mutate(ctx, request{method: "POST", path: courseModulesPath(courseID), body: in}, "module", &mod,
		cache.Tag{Type: TagModule, ID: courseID})
	return mod, err
}

// UpdateModule needs in.CourseID.
func (c *Client) UpdateModule(ctx context.Context, id string, in ModuleInput) (Module, error) {
	var mod Module
	err := c.mutate(ctx, request{method: "PUT", path: "/modules/" + url.PathEscape(id), body: in}, "module", &mod,
		cache.Tag{Type: TagModule, ID: id})
	return mod, err
}

func (c *Client) DeleteModule(ctx context.Context, id, courseID string) error {
	req := request{method: "DELETE", path: "/modules/" + url.PathEscape(id), query: values("courseId", courseID)}
	return c.mutate(ctx, req, "", nil, cache.Tag{Type: TagModule, ID: courseID})
}
