// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Each pipeline step degrades instead of failing: it returns a placeholder
// value together with the error, and the AuditService records the section
// as degraded and carries on.
package services
