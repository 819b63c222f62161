// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic    SecurityLevel = iota // No authentication
	SecurityStaff                          // Any signed-in staff role
	SecurityReporting                      // admin or finance only
)

const grpcMonitoring = "/fleetrent.reporting.v1.MonitoringService/"

// EndpointSecurityConfig maps gRPC full method names and named HTTP routes to
// their required security level.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.login": SecurityPublic,
	"healthz":    SecurityPublic,
	"metrics":    SecurityPublic,

	// Rents - Staff
	"rents.create":      SecurityStaff,
	"rents.list":        SecurityStaff,
	"rents.page":        SecurityStaff,
	"rents.search":      SecurityStaff,
	"rents.get":         SecurityStaff,
	"rents.update":      SecurityStaff,
	"rents.remove":      SecurityStaff,
	"extensions.create": SecurityStaff,
	"extensions.get":    SecurityStaff,
	"extensions.update": SecurityStaff,
	"extensions.delete": SecurityStaff,

	// Cars - Staff
	"cars.create": SecurityStaff,
	"cars.list":   SecurityStaff,
	"cars.free":   SecurityStaff,
	"cars.get":    SecurityStaff,
	"cars.update": SecurityStaff,
	"cars.remove": SecurityStaff,

	// Ledger entries - Staff
	"incomes.create":  SecurityStaff,
	"incomes.list":    SecurityStaff,
	"incomes.get":     SecurityStaff,
	"incomes.update":  SecurityStaff,
	"incomes.delete":  SecurityStaff,
	"outcomes.create": SecurityStaff,
	"outcomes.list":   SecurityStaff,
	"outcomes.get":    SecurityStaff,
	"outcomes.update": SecurityStaff,
	"outcomes.delete": SecurityStaff,

	// Monitoring - Reporting
	"monitoring.rents":        SecurityReporting,
	"monitoring.sum":          SecurityReporting,
	"monitoring.rentsByMonth": SecurityReporting,
	"monitoring.sumByMonth":   SecurityReporting,
	"monitoring.ownersIncome": SecurityReporting,
	"monitoring.history":      SecurityReporting,
	"statements.get":          SecurityReporting,

	grpcMonitoring + "FindRents":              SecurityReporting,
	grpcMonitoring + "FindIncome":             SecurityReporting,
	grpcMonitoring + "FindIncomeByPersentage": SecurityReporting,
	grpcMonitoring + "FindHistory":            SecurityReporting,
	grpcMonitoring + "FindRentsByMonth":       SecurityReporting,
	grpcMonitoring + "FindIncomeByMonth":      SecurityReporting,

	"/grpc.health.v1.Health/Check": SecurityPublic,
	"/grpc.health.v1.Health/Watch": SecurityPublic,
	"/grpc.health.v1.Health/List":  SecurityPublic,
}

// GetSecurityLevel returns the security level for a given method
func GetSecurityLevel(method string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityReporting
}

// RoleAllowed reports whether a signed-in role satisfies the level.
func RoleAllowed(level SecurityLevel, role string) bool {
	switch level {
	case SecurityPublic:
		return true
	case SecurityStaff:
		return role == RoleAdmin || role == RoleOperator || role == RoleFinance
	case SecurityReporting:
		return role == RoleAdmin || role == RoleFinance
	}
	return false
}
