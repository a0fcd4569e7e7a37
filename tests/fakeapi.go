package testutil

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/masomo-portal/core/session"
)

var signingKey = []byte("fake-api-secret")

var passwordCost = bcrypt.MinCost

// Claims is carried by the tokens the fake API issues.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

type (
	FakeUser struct {
		UserID           string   `json:"userId"`
		Email            string   `json:"email"`
		Name             string   `json:"name"`
		Role             string   `json:"role"`
		SpecializationID string   `json:"specializationId,omitempty"`
		CourseIDs        []string `json:"courseIds,omitempty"`
		PasswordHash     []byte   `json:"-"`
	}

	FakeCourse struct {
		CourseID         string `json:"courseId"`
		Title            string `json:"title"`
		Description      string `json:"description"`
		Category         string `json:"category,omitempty"`
		InstructorID     string `json:"instructorId,omitempty"`
		SpecializationID string `json:"specializationId,omitempty"`
	}

	FakeModule struct {
		ModuleID    string `json:"moduleId"`
		CourseID    string `json:"courseId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Order       int    `json:"order"`
	}

	FakeEnrollment struct {
		EnrollmentID string `json:"enrollmentId"`
		StudentID    string `json:"studentId"`
		CourseID     string `json:"courseId"`
		Status       string `json:"status"`
	}

	FakeProgress struct {
		ProgressID string `json:"progressId"`
		StudentID  string `json:"studentId"`
		CourseID   string `json:"courseId"`
		ModuleID   string `json:"moduleId"`
		Status     string `json:"status"`
	}

	FakeSpecialization struct {
		SpecializationID string `json:"specializationId"`
		Name             string `json:"name"`
		Code             string `json:"code"`
		Description      string `json:"description,omitempty"`
	}

	// Upload is the last multipart upload received.
	Upload struct {
		FileName   string
		Content    string
		FolderPath string
	}
)

// FakeAPI is an in-memory LMS backend served over httptest.
type FakeAPI struct {
	*httptest.Server

	mu              sync.Mutex
	app             *echo.Echo
	seq             int
	hits            map[string]int
	headers         map[string]http.Header
	revoked         map[string]bool
	users           map[string]*FakeUser
	courses         map[string]*FakeCourse
	modules         map[string]*FakeModule
	enrollments     map[string]*FakeEnrollment
	progress        map[string]*FakeProgress
	specializations map[string]*FakeSpecialization
	lastUpload      Upload
}

// NewFakeAPI starts a fake API and closes it with the test.
func NewFakeAPI(t *testing.T) *FakeAPI {
	api := &FakeAPI{
		app:             echo.New(),
		hits:            make(map[string]int),
		headers:         make(map[string]http.Header),
		revoked:         make(map[string]bool),
		users:           make(map[string]*FakeUser),
		courses:         make(map[string]*FakeCourse),
		modules:         make(map[string]*FakeModule),
		enrollments:     make(map[string]*FakeEnrollment),
		progress:        make(map[string]*FakeProgress),
		specializations: make(map[string]*FakeSpecialization),
	}
	api.setup()
	api.Server = httptest.NewServer(api.app)
	t.Cleanup(api.Close)
	return api
}

func (api *FakeAPI) setup() {
	api.app.HideBanner = true
	api.app.Logger.SetLevel(log.OFF)
	api.app.HTTPErrorHandler = httpErrorHandler
	api.app.Pre(middleware.RemoveTrailingSlash())
	api.app.Use(api.record)

	jwtAuth := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    signingKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
		ErrorHandler: func(err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
	auth := []echo.MiddlewareFunc{jwtAuth, api.checkRevoked}
	admin := append(auth, requireRole(session.RoleAdmin))

	api.app.POST("/auth/login", api.login)
	api.app.POST("/auth/register", api.register)
	api.app.POST("/auth/change-password", api.changePassword, auth...)

	api.app.GET("/users", api.listUsers, auth...)
	api.app.GET("/users/:id", api.getUser, auth...)

	api.app.GET("/courses", api.listCourses, auth...)
	api.app.GET("/courses/:id", api.getCourse, auth...)
	api.app.POST("/courses", api.createCourse, auth...)
	api.app.PUT("/courses/:id", api.updateCourse, auth...)
	api.app.DELETE("/courses/:id", api.deleteCourse, auth...)

	api.app.GET("/modules/courses/:courseId/modules", api.listModules, auth...)
	api.app.POST("/modules/courses/:courseId/modules", api.createModule, auth...)

	api.app.GET("/enrollments", api.listEnrollments, auth...)
	api.app.POST("/enrollments", api.createEnrollment, auth...)

	api.app.GET("/progress", api.listProgress, auth...)
	api.app.POST("/progress/complete", api.completeProgress, auth...)
	api.app.GET("/progress/stats", api.progressStats, auth...)

	api.app.POST("/upload", api.upload, auth...)

	api.app.POST("/admin/students", api.addUser(session.RoleStudent), admin...)
	api.app.POST("/admin/instructors", api.addUser(session.RoleInstructor), admin...)
	api.app.GET("/admin/users", api.listUsers, admin...)
	api.app.PUT("/admin/users/:id/password", api.setPassword, admin...)
	api.app.GET("/admin/specializations", api.listSpecializations, admin...)
	api.app.POST("/admin/specializations", api.createSpecialization, admin...)
	api.app.GET("/admin/specializations/:id/courses", api.specializationCourses, admin...)
	api.app.DELETE("/admin/courses/:id", api.deleteCourse, admin...)
}

// httpErrorHandler renders errors as {"error": "..."}, like the real API.
func httpErrorHandler(err error, ctx echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if herr, ok := errors.Cause(err).(*echo.HTTPError); ok {
		code = herr.Code
		msg = fmt.Sprint(herr.Message)
	}
	if !ctx.Response().Committed {
		_ = ctx.JSON(code, echo.Map{"error": msg})
	}
}

func (api *FakeAPI) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		key := req.Method + " " + req.URL.Path
		api.mu.Lock()
		api.hits[key]++
		api.headers[key] = req.Header.Clone()
		api.mu.Unlock()
		return next(ctx)
	}
}

func (api *FakeAPI) checkRevoked(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token := strings.TrimPrefix(ctx.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		api.mu.Lock()
		revoked := api.revoked[token]
		api.mu.Unlock()
		if revoked {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
		}
		return next(ctx)
	}
}

func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if claims(ctx).Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied")
			}
			return next(ctx)
		}
	}
}

func claims(ctx echo.Context) *Claims {
	if token, ok := ctx.Get("userToken").(*jwt.Token); ok {
		if c, ok := token.Claims.(*Claims); ok {
			return c
		}
	}
	return &Claims{}
}

// =========================================================================
// Test helpers

func (api *FakeAPI) nextID(prefix string) string {
	api.seq++
	return prefix + "-" + strconv.Itoa(api.seq)
}

// Hits returns how many times method path was requested.
func (api *FakeAPI) Hits(method, path string) int {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.hits[method+" "+path]
}

// LastHeader returns the headers of the last method path request.
func (api *FakeAPI) LastHeader(method, path string) http.Header {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.headers[method+" "+path]
}

// Revoke makes every later request bearing token fail with a 401.
func (api *FakeAPI) Revoke(token string) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.revoked[token] = true
}

func (api *FakeAPI) LastUpload() Upload {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.lastUpload
}

// AddUser registers a user who can log in with pwd.
func (api *FakeAPI) AddUser(name, email, pwd, role string) FakeUser {
	usr := &FakeUser{Name: name, Email: email, Role: role}
	if err := usr.SetPassword(pwd); err != nil {
		panic(err)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	usr.UserID = api.nextID("user")
	api.users[usr.UserID] = usr
	return *usr
}

func (api *FakeAPI) AddCourse(title, instructorID, specializationID string) FakeCourse {
	api.mu.Lock()
	defer api.mu.Unlock()
	crs := &FakeCourse{
		CourseID:         api.nextID("course"),
		Title:            title,
		Description:      title + " description",
		InstructorID:     instructorID,
		SpecializationID: specializationID,
	}
	api.courses[crs.CourseID] = crs
	return *crs
}

func (api *FakeAPI) AddSpecialization(name, code string) FakeSpecialization {
	api.mu.Lock()
	defer api.mu.Unlock()
	spec := &FakeSpecialization{SpecializationID: api.nextID("spec"), Name: name, Code: code}
	api.specializations[spec.SpecializationID] = spec
	return *spec
}

func (api *FakeAPI) AddModule(courseID, title string, order int) FakeModule {
	api.mu.Lock()
	defer api.mu.Unlock()
	mod := &FakeModule{ModuleID: api.nextID("module"), CourseID: courseID, Title: title, Order: order}
	api.modules[mod.ModuleID] = mod
	return *mod
}

// Enroll enrolls a student directly.
func (api *FakeAPI) Enroll(studentID, courseID string) FakeEnrollment {
	api.mu.Lock()
	defer api.mu.Unlock()
	return *api.enroll(studentID, courseID)
}

func (api *FakeAPI) enroll(studentID, courseID string) *FakeEnrollment {
	enr := &FakeEnrollment{EnrollmentID: api.nextID("enrollment"), StudentID: studentID, CourseID: courseID, Status: "active"}
	api.enrollments[enr.EnrollmentID] = enr
	return enr
}

// Token issues a token for usr, expiring after ttl.
func Token(t *testing.T, usr FakeUser, ttl time.Duration) string {
	token, err := generateToken(usr, ttl)
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	return token
}

func (u *FakeUser) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), passwordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *FakeUser) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func generateToken(usr FakeUser, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   usr.UserID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Role: usr.Role,
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// =========================================================================
// Handlers

func (api *FakeAPI) login(ctx echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	api.mu.Lock()
	var usr *FakeUser
	for _, u := range api.users {
		if strings.EqualFold(u.Email, body.Email) {
			usr = u
		}
	}
	api.mu.Unlock()
	if usr == nil || usr.CheckPassword(body.Password) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := generateToken(*usr, time.Hour)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Login successful", "user": usr, "token": token})
}

func (api *FakeAPI) register(ctx echo.Context) error {
	return echo.NewHTTPError(http.StatusForbidden, "Public registration is disabled")
}

func (api *FakeAPI) changePassword(ctx echo.Context) error {
	var body struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	usr, ok := api.users[claims(ctx).Subject]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if usr.CheckPassword(body.OldPassword) != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	}
	if err := usr.SetPassword(body.NewPassword); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

func (api *FakeAPI) listUsers(ctx echo.Context) error {
	role := ctx.QueryParam("role")
	api.mu.Lock()
	defer api.mu.Unlock()
	users := make([]FakeUser, 0, len(api.users))
	for _, u := range api.users {
		if role == "" || u.Role == role {
			users = append(users, *u)
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"users": users})
}

func (api *FakeAPI) getUser(ctx echo.Context) error {
	api.mu.Lock()
	defer api.mu.Unlock()
	usr, ok := api.users[ctx.Param("id")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": usr})
}

func (api *FakeAPI) addUser(role string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var body struct {
			FakeUser
			Password string `json:"password"`
		}
		if err := ctx.Bind(&body); err != nil || body.Email == "" || body.Password == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Name, email and password are required")
		}
		usr := body.FakeUser
		if err := usr.SetPassword(body.Password); err != nil {
			return err
		}

		api.mu.Lock()
		defer api.mu.Unlock()
		for _, u := range api.users {
			if strings.EqualFold(u.Email, usr.Email) {
				return echo.NewHTTPError(http.StatusConflict, "User already exists")
			}
		}
		usr.UserID = api.nextID("user")
		usr.Role = role
		api.users[usr.UserID] = &usr
		for _, id := range usr.CourseIDs {
			if crs, ok := api.courses[id]; ok {
				crs.InstructorID = usr.UserID
			}
		}
		return ctx.JSON(http.StatusCreated, echo.Map{"user": usr})
	}
}

func (api *FakeAPI) setPassword(ctx echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := ctx.Bind(&body); err != nil || body.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Password is required")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	usr, ok := api.users[ctx.Param("id")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err := usr.SetPassword(body.Password); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}

func (api *FakeAPI) listCourses(ctx echo.Context) error {
	c := claims(ctx)
	instructorID := ctx.QueryParam("instructorId")
	if c.Role == session.RoleInstructor && instructorID == "" {
		instructorID = c.Subject
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	courses := make([]FakeCourse, 0, len(api.courses))
	for _, crs := range api.courses {
		if instructorID != "" && crs.InstructorID != instructorID {
			continue
		}
		courses = append(courses, *crs)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"courses": courses})
}

func (api *FakeAPI) getCourse(ctx echo.Context) error {
	api.mu.Lock()
	defer api.mu.Unlock()
	crs, ok := api.courses[ctx.Param("id")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"course": crs})
}

func (api *FakeAPI) createCourse(ctx echo.Context) error {
	var crs FakeCourse
	if err := ctx.Bind(&crs); err != nil || crs.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and description are required")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	crs.CourseID = api.nextID("course")
	if crs.InstructorID == "" {
		crs.InstructorID = claims(ctx).Subject
	}
	api.courses[crs.CourseID] = &crs
	return ctx.JSON(http.StatusCreated, echo.Map{"course": crs})
}

func (api *FakeAPI) updateCourse(ctx echo.Context) error {
	var in FakeCourse
	if err := ctx.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	crs, ok := api.courses[ctx.Param("id")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found")
	}
	if in.Title != "" {
		crs.Title = in.Title
	}
	if in.Description != "" {
		crs.Description = in.Description
	}
	if in.Category != "" {
		crs.Category = in.Category
	}
	return ctx.JSON(http.StatusOK, echo.Map{"course": crs})
}

func (api *FakeAPI) deleteCourse(ctx echo.Context) error {
	api.mu.Lock()
	defer api.mu.Unlock()
	id := ctx.Param("id")
	if _, ok := api.courses[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found")
	}
	delete(api.courses, id)
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Course deleted successfully"})
}

func (api *FakeAPI) listModules(ctx echo.Context) error {
	courseID := ctx.Param("courseId")
	api.mu.Lock()
	defer api.mu.Unlock()
	modules := make([]FakeModule, 0)
	for _, mod := range api.modules {
		if mod.CourseID == courseID {
			modules = append(modules, *mod)
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"modules": modules})
}

func (api *FakeAPI) createModule(ctx echo.Context) error {
	var mod FakeModule
	if err := ctx.Bind(&mod); err != nil || mod.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	mod.CourseID = ctx.Param("courseId")
	if _, ok := api.courses[mod.CourseID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found")
	}
	mod.ModuleID = api.nextID("module")
	api.modules[mod.ModuleID] = &mod
	return ctx.JSON(http.StatusCreated, echo.Map{"module": mod})
}

func (api *FakeAPI) listEnrollments(ctx echo.Context) error {
	c := claims(ctx)
	courseID := ctx.QueryParam("courseId")

	api.mu.Lock()
	defer api.mu.Unlock()
	enrollments := make([]FakeEnrollment, 0)
	for _, enr := range api.enrollments {
		if c.Role == session.RoleStudent && enr.StudentID != c.Subject {
			continue
		}
		if courseID != "" && enr.CourseID != courseID {
			continue
		}
		enrollments = append(enrollments, *enr)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"enrollments": enrollments})
}

func (api *FakeAPI) createEnrollment(ctx echo.Context) error {
	var body struct {
		CourseID string `json:"courseId"`
	}
	if err := ctx.Bind(&body); err != nil || body.CourseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Course ID is required")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if _, ok := api.courses[body.CourseID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Course not found")
	}
	enr := api.enroll(claims(ctx).Subject, body.CourseID)
	return ctx.JSON(http.StatusCreated, echo.Map{"enrollment": enr})
}

func (api *FakeAPI) listProgress(ctx echo.Context) error {
	c := claims(ctx)
	courseID := ctx.QueryParam("courseId")

	api.mu.Lock()
	defer api.mu.Unlock()
	progress := make([]FakeProgress, 0)
	for _, p := range api.progress {
		if p.StudentID == c.Subject && (courseID == "" || p.CourseID == courseID) {
			progress = append(progress, *p)
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"progress": progress})
}

func (api *FakeAPI) completeProgress(ctx echo.Context) error {
	var body struct {
		CourseID string `json:"courseId"`
		ModuleID string `json:"moduleId"`
	}
	if err := ctx.Bind(&body); err != nil || body.CourseID == "" || body.ModuleID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Course ID and module ID are required")
	}

	c := claims(ctx)
	api.mu.Lock()
	defer api.mu.Unlock()
	for _, p := range api.progress {
		if p.StudentID == c.Subject && p.ModuleID == body.ModuleID {
			p.Status = "completed"
			return ctx.JSON(http.StatusOK, echo.Map{"progress": p})
		}
	}
	p := &FakeProgress{
		ProgressID: api.nextID("progress"),
		StudentID:  c.Subject,
		CourseID:   body.CourseID,
		ModuleID:   body.ModuleID,
		Status:     "completed",
	}
	api.progress[p.ProgressID] = p
	return ctx.JSON(http.StatusOK, echo.Map{"progress": p})
}

func (api *FakeAPI) progressStats(ctx echo.Context) error {
	c := claims(ctx)
	courseID := ctx.QueryParam("courseId")

	api.mu.Lock()
	defer api.mu.Unlock()
	total, completed := 0, 0
	for _, mod := range api.modules {
		if courseID == "" || mod.CourseID == courseID {
			total++
		}
	}
	for _, p := range api.progress {
		if p.StudentID == c.Subject && p.Status == "completed" && (courseID == "" || p.CourseID == courseID) {
			completed++
		}
	}
	pct := 0.0
	if total > 0 {
		pct = float64(completed) * 100 / float64(total)
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{"completed": completed, "total": total, "percentage": pct},
	})
}

func (api *FakeAPI) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	if err != nil {
		return err
	}

	up := Upload{FileName: fh.Filename, Content: string(data), FolderPath: ctx.FormValue("folderPath")}
	api.mu.Lock()
	api.lastUpload = up
	api.mu.Unlock()

	u := "https://files.example.com/"
	if up.FolderPath != "" {
		u += up.FolderPath + "/"
	}
	return ctx.JSON(http.StatusOK, echo.Map{"url": u + up.FileName})
}

func (api *FakeAPI) listSpecializations(ctx echo.Context) error {
	api.mu.Lock()
	defer api.mu.Unlock()
	specs := make([]FakeSpecialization, 0, len(api.specializations))
	for _, s := range api.specializations {
		specs = append(specs, *s)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"specializations": specs})
}

func (api *FakeAPI) createSpecialization(ctx echo.Context) error {
	var spec FakeSpecialization
	if err := ctx.Bind(&spec); err != nil || spec.Name == "" || spec.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and code are required")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	spec.SpecializationID = api.nextID("spec")
	api.specializations[spec.SpecializationID] = &spec
	return ctx.JSON(http.StatusCreated, echo.Map{"specialization": spec})
}

func (api *FakeAPI) specializationCourses(ctx echo.Context) error {
	id := ctx.Param("id")
	api.mu.Lock()
	defer api.mu.Unlock()
	courses := make([]FakeCourse, 0)
	for _, crs := range api.courses {
		if crs.SpecializationID == id {
			courses = append(courses, *crs)
		}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"courses": courses})
}
