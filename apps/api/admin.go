package lmsapi

import (
	"context"
	"net/url"

	"github.com/trezcool/masomo-portal/core/cache"
)

func (c *Client) AddStudent(ctx context.Context, in NewStudent) (User, error) {
	var u User
	err := c.mutate(ctx, request{method: "POST", path: "/admin/students", body: in}, "user", &u,
		cache.TypeTag(TagUser), cache.TypeTag(TagAdmin))
	return u, err
}

// AddInstructor creates an instructor and assigns the given courses.
func (c *Client) AddInstructor(ctx context.Context, in NewInstructor) (User, error) {
	var u User
	err := c.mutate(ctx, request{method: "POST", path: "/admin/instructors", body: in}, "user", &u,
		cache.TypeTag(TagUser), cache.TypeTag(TagAdmin), cache.TypeTag(TagCourse))
	return u, err
}

// AdminUsers lists every user, or only those of role when set.
func (c *Client) AdminUsers(role string) *Query[[]User] {
	return subscribe[[]User](c, queryDef{
		path:  "/admin/users",
		query: values("role", role),
		field: "users",
		tags:  staticTags(cache.TypeTag(TagUser), cache.TypeTag(TagAdmin)),
	})
}

func (c *Client) ChangeUserPassword(ctx context.Context, userID, password string) error {
	req := request{
		method: "PUT",
		path:   "/admin/users/" + url.PathEscape(userID) + "/password",
		body:   map[string]string{"password": password},
	}
	return c.mutate(ctx, req, "", nil, cache.TypeTag(TagUser))
}

// Specializations

func (c *Client) Specializations() *Query[[]Specialization] {
	return subscribe[[]Specialization](c, queryDef{
		path:  "/admin/specializations",
		field: "specializations",
		tags:  staticTags(cache.TypeTag(TagSpecialization)),
	})
}

func (c *Client) CreateSpecialization(ctx context.Context, in SpecializationInput) (Specialization, error) {
	var s Specialization
	err := c.mutate(ctx, request{method: "POST", path: "/admin/specializations", body: in}, "specialization", &s,
		cache.TypeTag(TagSpecialization))
	return s, err
}

func (c *Client) UpdateSpecialization(ctx context.Context, id string, in SpecializationInput) (Specialization, error) {
	var s Specialization
	req := request{method: "PUT", path: "/admin/specializations/" + url.PathEscape(id), body: in}
	err := c.mutate(ctx, req, "specialization", &s, cache.TypeTag(TagSpecialization))
	return s, err
}

func (c *Client) DeleteSpecialization(ctx context.Context, id string) error {
	req := request{method: "DELETE", path: "/admin/specializations/" + url.PathEscape(id)}
	return c.mutate(ctx, req, "", nil, cache.TypeTag(TagSpecialization))
}

// SpecializationCourses lists the courses of a specialization.
func (c *Client) SpecializationCourses(id string) *Query[[]Course] {
	return subscribe[[]Course](c, queryDef{
		path:  "/admin/specializations/" + url.PathEscape(id) + "/courses",
		field: "courses",
		tags:  staticTags(cache.Tag{Type: TagCourse, ID: id}),
	})
}

// Courses

// AdminCreateCourse creates a course inside a specialization (in.SpecializationID).
func (c *Client) AdminCreateCourse(ctx context.Context, in CourseInput) (Course, error) {
	var crs Course
	err := c.mutate(ctx, request{method: "POST", path: "/admin/courses", body: in}, "course", &crs,
		cache.TypeTag(TagCourse), cache.TypeTag(TagSpecialization))
	return crs, err
}

func (c *Client) AdminDeleteCourse(ctx context.Context, id string) error {
	req := request{method: "DELETE", path: "/admin/courses/" + url.PathEscape(id)}
	return c.mutate(ctx, req, "", nil, cache.TypeTag(TagCourse), cache.TypeTag(TagSpecialization))
}

func (c *Client) UpdateCourseInstructor(ctx context.Context, courseID, instructorID string) (Course, error) {
	var crs Course
	req := request{
		method: "PUT",
		path:   "/admin/courses/" + url.PathEscape(courseID) + "/instructor",
		body:   map[string]string{"instructorId": instructorID},
	}
	err := c.mutate(ctx, req, "course", &crs,
		cache.TypeTag(TagCourse), cache.TypeTag(TagUser), cache.TypeTag(TagAdmin))
	return crs, err
}

// SeedCourses asks the API to create the demo catalog.
func (c *Client) SeedCourses(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	err := c.mutate(ctx, request{method: "POST", path: "/admin/seed-courses"}, "", &res,
		cache.TypeTag(TagCourse), cache.TypeTag(TagUser), cache.TypeTag(TagSpecialization))
	return res, err
}
