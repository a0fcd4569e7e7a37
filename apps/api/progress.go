package lmsapi

import (
	"context"
	"net/url"

	"github.com/trezcool/masomo-portal/core/cache"
)

// Progress lists the signed-in student's progress records, for courseID or all courses.
// Scoped to the user and dropped once unused.
func (c *Client) Progress(courseID string) *Query[[]Progress] {
	uid := c.sessions.UserID()
	scope := courseID
	if scope == "" {
		scope = "ALL"
	}
	return subscribe[[]Progress](c, queryDef{
		path:  "/progress",
		query: values("courseId", courseID),
		scope: url.Values{userParam: {uid}},
		field: "progress",
		tags: listTags("progress", cache.Tag{Type: TagProgress, ID: uid + "-" + scope}, func(p Progress) cache.Tag {
			return cache.Tag{Type: TagProgress, ID: uid + "-" + p.ProgressID}
		}),
		retention: cache.DropWhenUnused,
	})
}

// ProgressStats is the completion summary of courseID for the signed-in student.
func (c *Client) ProgressStats(courseID string) *Query[ProgressStats] {
	return subscribe[ProgressStats](c, queryDef{
		path:  "/progress/stats",
		query: values("courseId", courseID),
		scope: url.Values{userParam: {c.sessions.UserID()}},
		field: "stats",
		tags:  staticTags(cache.TypeTag(TagProgress)),
	})
}

func (c *Client) CreateProgress(ctx context.Context, in ProgressInput) (Progress, error) {
	var p Progress
	err := c.mutate(ctx, request{method: "POST", path: "/progress", body: in}, "progress", &p,
		cache.TypeTag(TagProgress))
	return p, err
}

func (c *Client) MarkProgressComplete(ctx context.Context, courseID, moduleID string) (Progress, error) {
	var p Progress
	body := ProgressInput{CourseID: courseID, ModuleID: moduleID}
	err := c.mutate(ctx, request{method: "POST", path: "/progress/complete", body: body}, "progress", &p,
		cache.TypeTag(TagProgress))
	return p, err
}
