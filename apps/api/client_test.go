package lmsapi

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/cache"
	"github.com/trezcool/masomo-portal/core/session"
	"github.com/trezcool/masomo-portal/storage/kv"
	"github.com/trezcool/masomo-portal/tests"
)

const pwd = "Passw0rd!"

type navRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (n *navRecorder) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *navRecorder) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

func setup(t *testing.T) (*testutil.FakeAPI, *Client, *navRecorder) {
	api := testutil.NewFakeAPI(t)

	conf := &core.Config{TestMode: true}
	conf.API.BaseURL = api.URL + "/"
	conf.API.Timeout = 5 * time.Second

	nav := new(navRecorder)
	c := New(conf, session.NewManager(kv.NewMemStore()), WithNavigator(nav))
	t.Cleanup(c.Close)
	return api, c, nav
}

func login(t *testing.T, c *Client, usr testutil.FakeUser) LoginResult {
	res, err := c.Login(context.Background(), Credentials{Email: usr.Email, Password: pwd})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	return res
}

func TestClient_Login(t *testing.T) {
	api, c, nav := setup(t)
	usr := api.AddUser("Jane Doe", "jane@example.com", pwd, session.RoleStudent)

	res := login(t, c, usr)
	assert.Equal(t, "Login successful", res.Message)
	assert.NotEmpty(t, res.Token)

	sess, ok := c.Sessions().Current()
	require.True(t, ok)
	assert.Equal(t, res.Token, sess.Token)
	assert.Equal(t, session.User{UserID: usr.UserID, Name: "Jane Doe", Email: "jane@example.com", Role: "student"}, sess.User)

	// bad credentials: the 401 is returned untouched and the session survives
	_, err := c.Login(context.Background(), Credentials{Email: usr.Email, Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "api: 401 Invalid credentials", err.Error())
	assert.Empty(t, nav.Paths())
	assert.Equal(t, res.Token, c.Sessions().Token())

	require.NoError(t, c.Logout())
	_, ok = c.Sessions().Current()
	assert.False(t, ok)
}

func TestClient_headers(t *testing.T) {
	api, c, _ := setup(t)
	usr := api.AddUser("Jane Doe", "jane@example.com", pwd, session.RoleStudent)

	h := func() http.Header { return api.LastHeader("POST", "/auth/login") }
	login(t, c, usr)
	assert.Empty(t, h().Get("Authorization"), "no bearer before signing in")

	_, err := Fetch(context.Background(), c.Courses(CourseFilter{}))
	require.NoError(t, err)

	hdr := api.LastHeader("GET", "/courses")
	assert.Equal(t, "Bearer "+c.Sessions().Token(), hdr.Get("Authorization"))
	assert.Equal(t, "application/json", hdr.Get("Accept"))
	_, err = uuid.Parse(hdr.Get("X-Request-ID"))
	assert.NoError(t, err, "X-Request-ID")
}

func TestClient_unauthorizedSignsOut(t *testing.T) {
	api, c, nav := setup(t)
	usr := api.AddUser("Jane Doe", "jane@example.com", pwd, session.RoleStudent)
	api.AddCourse("Go 101", "", "")

	res := login(t, c, usr)
	users := c.Users("")
	_, err := users.Wait(context.Background())
	require.NoError(t, err)
	users.Close()
	require.Equal(t, 1, c.Cache().Len())

	api.Revoke(res.Token)
	_, err = Fetch(context.Background(), c.Courses(CourseFilter{}))
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	_, ok := c.Sessions().Current()
	assert.False(t, ok, "session cleared")
	assert.Equal(t, 0, c.Cache().Len(), "cache reset")
	assert.Equal(t, []string{session.LoginPath}, nav.Paths())
}

func TestClient_deleteCourseInvalidates(t *testing.T) {
	api, c, _ := setup(t)
	admin := api.AddUser("Ada Admin", "admin@example.com", pwd, session.RoleAdmin)
	spec := api.AddSpecialization("Data Analytics", "MSC-DA")
	crs := api.AddCourse("Statistics", "", spec.SpecializationID)
	ctx := context.Background()

	login(t, c, admin)

	courses := c.Courses(CourseFilter{})
	t.Cleanup(courses.Close)
	list, err := courses.Wait(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	specCourses, err := Fetch(ctx, c.SpecializationCourses(spec.SpecializationID))
	require.NoError(t, err)
	require.Len(t, specCourses, 1)
	_, err = Fetch(ctx, c.Users(""))
	require.NoError(t, err)

	specKey := cache.NewKey("/admin/specializations/"+spec.SpecializationID+"/courses", nil)
	usersKey := cache.NewKey("/users", nil)
	_, hit := c.Cache().Lookup(specKey)
	require.True(t, hit)

	require.NoError(t, c.DeleteCourse(ctx, crs.CourseID))

	_, hit = c.Cache().Lookup(specKey)
	assert.False(t, hit, "specialization courses must miss")
	_, hit = c.Cache().Lookup(usersKey)
	assert.True(t, hit, "users must still hit")

	// the mounted course list refetches
	assert.Eventually(t, func() bool { return api.Hits("GET", "/courses") == 2 }, time.Second, 10*time.Millisecond)
	list, err = courses.Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_failedMutationKeepsCache(t *testing.T) {
	api, c, _ := setup(t)
	admin := api.AddUser("Ada Admin", "admin@example.com", pwd, session.RoleAdmin)
	ctx := context.Background()
	login(t, c, admin)

	_, err := Fetch(ctx, c.Users(""))
	require.NoError(t, err)

	err = c.DeleteCourse(ctx, "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = Fetch(ctx, c.Users(""))
	require.NoError(t, err)
	assert.Equal(t, 1, api.Hits("GET", "/users"))
}

func TestClient_sessionIsolation(t *testing.T) {
	api, c, _ := setup(t)
	alice := api.AddUser("Alice", "alice@example.com", pwd, session.RoleStudent)
	bob := api.AddUser("Bob", "bob@example.com", pwd, session.RoleStudent)
	crs := api.AddCourse("Go 101", "", "")
	enr := api.Enroll(alice.UserID, crs.CourseID)
	ctx := context.Background()

	login(t, c, alice)
	got, err := Fetch(ctx, c.Enrollments(""))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, enr.EnrollmentID, got[0].EnrollmentID)

	require.NoError(t, c.Logout())
	login(t, c, bob)

	got, err = Fetch(ctx, c.Enrollments(""))
	require.NoError(t, err)
	assert.Empty(t, got, "bob must not see alice's enrollments")
	assert.Equal(t, 2, api.Hits("GET", "/enrollments"))
}

// Switching the stored session without a logout keeps the cache, so only the
// per-user keys stop bob from reading alice's cached lists.
func TestClient_userScopedKeys(t *testing.T) {
	api, c, _ := setup(t)
	alice := api.AddUser("Alice", "alice@example.com", pwd, session.RoleStudent)
	bob := api.AddUser("Bob", "bob@example.com", pwd, session.RoleStudent)
	ian := api.AddUser("Ian Instructor", "ian@example.com", pwd, session.RoleInstructor)
	ivy := api.AddUser("Ivy Instructor", "ivy@example.com", pwd, session.RoleInstructor)
	crs := api.AddCourse("Go 101", ian.UserID, "")
	mod := api.AddModule(crs.CourseID, "Basics", 1)
	api.Enroll(alice.UserID, crs.CourseID)
	ctx := context.Background()

	switchTo := func(usr testutil.FakeUser) {
		t.Helper()
		err := c.Sessions().Save(session.Session{
			Token: testutil.Token(t, usr, time.Hour),
			User:  session.User{UserID: usr.UserID, Name: usr.Name, Email: usr.Email, Role: usr.Role},
		})
		require.NoError(t, err)
	}

	t.Run("enrollments and progress", func(t *testing.T) {
		login(t, c, alice)
		_, err := c.MarkProgressComplete(ctx, crs.CourseID, mod.ModuleID)
		require.NoError(t, err)

		enrollments := c.Enrollments("")
		t.Cleanup(enrollments.Close)
		got, err := enrollments.Wait(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)

		progress := c.Progress("")
		t.Cleanup(progress.Close)
		records, err := progress.Wait(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)

		switchTo(bob)

		got, err = Fetch(ctx, c.Enrollments(""))
		require.NoError(t, err)
		assert.Empty(t, got, "bob must not see alice's enrollments")
		assert.Equal(t, 2, api.Hits("GET", "/enrollments"))

		records, err = Fetch(ctx, c.Progress(""))
		require.NoError(t, err)
		assert.Empty(t, records, "bob must not see alice's progress")
		assert.Equal(t, 2, api.Hits("GET", "/progress"))
	})

	t.Run("courses", func(t *testing.T) {
		switchTo(ian)
		courses := c.Courses(CourseFilter{})
		t.Cleanup(courses.Close)
		got, err := courses.Wait(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, crs.CourseID, got[0].CourseID)

		switchTo(ivy)
		got, err = Fetch(ctx, c.Courses(CourseFilter{}))
		require.NoError(t, err)
		assert.Empty(t, got, "ivy must not see ian's courses")
		assert.Equal(t, 2, api.Hits("GET", "/courses"))
	})
}

func TestClient_enrollAndProgress(t *testing.T) {
	api, c, _ := setup(t)
	student := api.AddUser("Alice", "alice@example.com", pwd, session.RoleStudent)
	crs := api.AddCourse("Go 101", "", "")
	mod := api.AddModule(crs.CourseID, "Basics", 1)
	api.AddModule(crs.CourseID, "Concurrency", 2)
	ctx := context.Background()
	login(t, c, student)

	modules, err := Fetch(ctx, c.Modules(crs.CourseID))
	require.NoError(t, err)
	assert.Len(t, modules, 2)

	enr, err := c.CreateEnrollment(ctx, crs.CourseID)
	require.NoError(t, err)
	assert.Equal(t, student.UserID, enr.StudentID)

	stats := c.ProgressStats(crs.CourseID)
	t.Cleanup(stats.Close)
	s, err := stats.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, ProgressStats{Completed: 0, Total: 2}, s)

	p, err := c.MarkProgressComplete(ctx, crs.CourseID, mod.ModuleID)
	require.NoError(t, err)
	assert.Equal(t, ProgressCompleted, p.Status)

	assert.Eventually(t, func() bool { return api.Hits("GET", "/progress/stats") == 2 }, time.Second, 10*time.Millisecond)
	s, err = stats.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, ProgressStats{Completed: 1, Total: 2, Percentage: 50}, s)

	records, err := Fetch(ctx, c.Progress(crs.CourseID))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, mod.ModuleID, records[0].ModuleID)
}

func TestClient_UploadFile(t *testing.T) {
	api, c, _ := setup(t)
	login(t, c, api.AddUser("Ian Instructor", "ian@example.com", pwd, session.RoleInstructor))

	u, err := c.UploadFile(context.Background(), Upload{
		FileName:   "notes.txt",
		Content:    strings.NewReader("hello"),
		FolderPath: "materials",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/materials/notes.txt", u)
	assert.Equal(t, testutil.Upload{FileName: "notes.txt", Content: "hello", FolderPath: "materials"}, api.LastUpload())
	assert.True(t, strings.HasPrefix(api.LastHeader("POST", "/upload").Get("Content-Type"), "multipart/form-data"))

	_, err = c.UploadFile(context.Background(), Upload{})
	assert.Error(t, err)
}

func TestClient_admin(t *testing.T) {
	api, c, _ := setup(t)
	login(t, c, api.AddUser("Ada Admin", "admin@example.com", pwd, session.RoleAdmin))
	ctx := context.Background()

	users := c.AdminUsers(session.RoleStudent)
	t.Cleanup(users.Close)
	list, err := users.Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	spec, err := c.CreateSpecialization(ctx, SpecializationInput{Name: "Data Analytics", Code: "MSC-DA"})
	require.NoError(t, err)

	stud, err := c.AddStudent(ctx, NewStudent{
		Name: "Sam Student", Email: "sam@example.com", Password: pwd, SpecializationID: spec.SpecializationID,
	})
	require.NoError(t, err)
	assert.Equal(t, session.RoleStudent, stud.Role)

	assert.Eventually(t, func() bool { return api.Hits("GET", "/admin/users") == 2 }, time.Second, 10*time.Millisecond)
	list, err = users.Wait(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sam@example.com", list[0].Email)

	require.NoError(t, c.ChangeUserPassword(ctx, stud.UserID, "N3wPassw0rd!"))
	_, err = c.Login(ctx, Credentials{Email: "sam@example.com", Password: "N3wPassw0rd!"})
	assert.NoError(t, err)
}

func TestClient_forbidden(t *testing.T) {
	api, c, nav := setup(t)
	login(t, c, api.AddUser("Sam Student", "sam@example.com", pwd, session.RoleStudent))

	_, err := Fetch(context.Background(), c.Specializations())
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	assert.Empty(t, nav.Paths(), "403 is not a sign-out")
	assert.NotEmpty(t, c.Sessions().Token())
}

func TestClient_connectionError(t *testing.T) {
	conf := &core.Config{}
	conf.API.BaseURL = "http://127.0.0.1:1"
	conf.API.Timeout = time.Second
	c := New(conf, session.NewManager(kv.NewMemStore()))
	defer c.Close()

	_, err := Fetch(context.Background(), c.Courses(CourseFilter{}))
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Error
	}{
		{name: "error field", status: 400, body: `{"error": "Title is required"}`, want: Error{400, "Title is required"}},
		{name: "message field", status: 409, body: `{"message": "exists"}`, want: Error{409, "exists"}},
		{name: "plain body", status: 502, body: "bad gateway\n", want: Error{502, "bad gateway"}},
		{name: "empty body", status: 404, body: "", want: Error{404, "Not Found"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newError(tt.status, []byte(tt.body)); *got != tt.want {
				t.Errorf("newError() = %v, want %v", *got, tt.want)
			}
		})
	}
}
