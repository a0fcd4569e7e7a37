package lmsapi

import (
	"context"
	"net/url"

	"github.com/trezcool/masomo-portal/core/cache"
)

// Enrollments lists the signed-in student's enrollments, or those of courseID for an instructor.
// Scoped to the user and dropped once unused.
func (c *Client) Enrollments(courseID string) *Query[[]Enrollment] {
	uid := c.sessions.UserID()
	return subscribe[[]Enrollment](c, queryDef{
		path:  "/enrollments",
		query: values("courseId", courseID),
		scope: url.Values{userParam: {uid}},
		field: "enrollments",
		tags: listTags("enrollments", cache.Tag{Type: TagEnrollment, ID: cache.ListID}, func(e Enrollment) cache.Tag {
			return cache.Tag{Type: TagEnrollment, ID: uid + "-" + e.EnrollmentID}
		}),
		retention: cache.DropWhenUnused,
	})
}

func (c *Client) CreateEnrollment(ctx context.Context, courseID string) (Enrollment, error) {
	var enr Enrollment
	body := map[string]string{"courseId": courseID}
	err := c.mutate(ctx, request{method: "POST", path: "/enrollments", body: body}, "enrollment", &enr,
		cache.TypeTag(TagEnrollment), cache.TypeTag(TagCourse))
	return enr, err
}

func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	return c.mutate(ctx, request{method: "DELETE", path: "/enrollments/" + url.PathEscape(id)}, "", nil,
		cache.TypeTag(TagEnrollment))
}
