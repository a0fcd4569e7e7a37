package session

import "time"

// Routes the guard redirects to.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Requirement is what a protected route asks of the session.
type Requirement int

const (
	Authenticated Requirement = iota
	AdminOnly
	InstructorOnly
)

// Decision is the outcome of a guard check: either allow, or redirect somewhere.
type Decision struct {
	Allow    bool
	Redirect string
	Session  Session
}

// Guard protects routes based on the stored session.
type Guard struct {
	sessions *Manager
	now      func() time.Time
}

func NewGuard(sessions *Manager) *Guard {
	return &Guard{sessions: sessions, now: time.Now}
}

// Check sends unauthenticated (or expired) sessions to the login page,
// and signed-in users lacking the required role to the dashboard.
func (g *Guard) Check(req Requirement) Decision {
	sess, ok := g.sessions.Current()
	if !ok || sess.Expired(g.now()) {
		return Decision{Redirect: LoginPath}
	}

	switch {
	case req == AdminOnly && !sess.User.IsAdmin(),
		req == InstructorOnly && !sess.User.IsInstructor():
		return Decision{Redirect: DashboardPath, Session: sess}
	}
	return Decision{Allow: true, Session: sess}
}

// Dashboard kinds
const (
	AdminDashboard      = "admin"
	InstructorDashboard = "instructor"
	StudentDashboard    = "student"
)

// DashboardFor picks the dashboard shown at DashboardPath for role; unknown roles get the student one.
func DashboardFor(role string) string {
	switch role {
	case RoleAdmin:
		return AdminDashboard
	case RoleInstructor:
		return InstructorDashboard
	default:
		return StudentDashboard
	}
}
