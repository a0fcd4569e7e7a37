package lmsapi

import "github.com/trezcool/masomo-portal/core/session"

type User struct {
	UserID           string   `json:"userId"`
	Email            string   `json:"email"`
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	SpecializationID string   `json:"specializationId,omitempty"`
	CourseIDs        []string `json:"courseIds,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
}

// SessionUser is the part of u kept in the client session.
func (u User) SessionUser() session.User {
	return session.User{UserID: u.UserID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type Course struct {
	CourseID         string   `json:"courseId"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category,omitempty"`
	InstructorID     string   `json:"instructorId,omitempty"`
	InstructorIDs    []string `json:"instructorIds,omitempty"`
	SpecializationID string   `json:"specializationId,omitempty"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

type Module struct {
	ModuleID    string   `json:"moduleId"`
	CourseID    string   `json:"courseId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Order       int      `json:"order"`
	Materials   []string `json:"materials,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

type Enrollment struct {
	EnrollmentID string `json:"enrollmentId"`
	StudentID    string `json:"studentId"`
	CourseID     string `json:"courseId"`
	Status       string `json:"status,omitempty"`
	EnrolledAt   string `json:"enrolledAt,omitempty"`
}

// progress statuses
const (
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

type Progress struct {
	ProgressID  string `json:"progressId"`
	StudentID   string `json:"studentId"`
	CourseID    string `json:"courseId"`
	ModuleID    string `json:"moduleId"`
	Status      string `json:"status"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type ProgressStats struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type Specialization struct {
	SpecializationID string `json:"specializationId"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	Description      string `json:"description,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// Request payloads

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type CourseInput struct {
	Title            string `json:"title,omitempty"`
	Description      string `json:"description,omitempty"`
	Category         string `json:"category,omitempty"`
	SpecializationID string `json:"specializationId,omitempty"`
	InstructorID     string `json:"instructorId,omitempty"`
}

type ModuleInput struct {
	CourseID    string   `json:"courseId,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Order       int      `json:"order,omitempty"`
	Materials   []string `json:"materials,omitempty"`
}

type ProgressInput struct {
	CourseID string `json:"courseId"`
	ModuleID string `json:"moduleId"`
	Status   string `json:"status,omitempty"`
}

type NewStudent struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	SpecializationID string `json:"specializationId"`
}

type NewInstructor struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	SpecializationID string   `json:"specializationId"`
	CourseIDs        []string `json:"courseIds"`
}

type SpecializationInput struct {
	Name        string `json:"name,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

type UserUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type SeedResult struct {
	Message                 string   `json:"message"`
	CreatedCount            int      `json:"created_count"`
	InstructorsCreatedCount int      `json:"instructors_created_count"`
	ModulesCreatedCount     int      `json:"modules_created_count"`
	SpecializationsCreated  int      `json:"specializations_created"`
	Errors                  []string `json:"errors"`
}
