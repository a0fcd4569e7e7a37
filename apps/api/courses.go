package lmsapi

import (
	"context"
	"net/url"

	"github.com/trezcool/masomo-portal/core/cache"
)

// CourseFilter narrows the course list. The API also filters by the caller's role.
type CourseFilter struct {
	InstructorID string
	Category     string
}

// Courses lists the courses visible to the signed-in user.
// Its key and tags are scoped to the instructor filter or the user, and it is dropped once unused.
func (c *Client) Courses(f CourseFilter) *Query[[]Course] {
	uid := c.sessions.UserID()
	scope := "all"
	switch {
	case f.InstructorID != "":
		scope = "instructor-" + f.InstructorID
	case uid != "":
		scope = "user-" + uid
	}

	return subscribe[[]Course](c, queryDef{
		path:  "/courses",
		query: values("instructorId", f.InstructorID, "category", f.Category),
		scope: url.Values{userParam: {uid}},
		field: "courses",
		tags: listTags("courses", cache.Tag{Type: TagCourse, ID: scope}, func(crs Course) cache.Tag {
			return cache.Tag{Type: TagCourse, ID: scope + "-" + crs.CourseID}
		}),
		retention: cache.DropWhenUnused,
	})
}

func (c *Client) Course(id string) *Query[Course] {
	return subscribe[Course](c, queryDef{
		path:  "/courses/" + url.PathEscape(id),
		field: "course",
		tags:  staticTags(cache.Tag{Type: TagCourse, ID: id}),
	})
}

func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (Course, error) {
	var crs Course
	err := c.mutate(ctx, request{method: "POST", path: "/courses", body: in}, "course", &crs,
		cache.TypeTag(TagCourse))
	return crs, err
}

func (c *Client) UpdateCourse(ctx context.Context, id string, in CourseInput) (Course, error) {
	var crs Course
	err := c.mutate(ctx, request{method: "PUT", path: "/courses/" + url.PathEscape(id), body: in}, "course", &crs,
		cache.Tag{Type: TagCourse, ID: id})
	return crs, err
}

// DeleteCourse also invalidates specializations, whose views embed course lists.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.mutate(ctx, request{method: "DELETE", path: "/courses/" + url.PathEscape(id)}, "", nil,
		cache.TypeTag(TagCourse), cache.TypeTag(TagSpecialization))
}
