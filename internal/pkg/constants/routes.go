package constants

// Static route constants
const (
	PublicRoute    = "/"
	DashboardRoute = "/dashboard"
	LoginRoute     = "/login"
	AdminRoute     = "/admin"
)
