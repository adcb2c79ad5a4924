package policy

import (
	"github.com/bitwharf/helpdesk/internal/domain"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

// ValidateAssignee checks that a candidate is eligible to hold ticket
// assignments. Eligibility is a pure function of role: SUPPORT and
// MANAGER qualify, USER never does. Workload and availability are not
// considered.
func ValidateAssignee(candidateRole domain.Role) error {
	switch candidateRole {
	case domain.RoleSupport, domain.RoleManager:
		return nil
	}
	return apperrors.NewInvalidAssignee(map[string]any{"role": string(candidateRole)})
}
