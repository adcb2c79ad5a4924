package policy

import (
	"errors"
	"testing"

	"github.com/bitwharf/helpdesk/internal/domain"
	apperrors "github.com/bitwharf/helpdesk/pkg/util"
)

func TestValidateAssignee(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		wantErr bool
	}{
		{"support eligible", domain.RoleSupport, false},
		{"manager eligible", domain.RoleManager, false},
		{"user ineligible", domain.RoleUser, true},
		{"unknown role ineligible", domain.Role("AUDITOR"), true},
		{"empty role ineligible", domain.Role(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssignee(tt.role)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateAssignee(%s) = %v, want nil", tt.role, err)
				}
				return
			}
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "INVALID_ASSIGNEE" {
				t.Fatalf("ValidateAssignee(%s) = %v, want INVALID_ASSIGNEE", tt.role, err)
			}
		})
	}
}
