package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanManage(t *testing.T) {
	tests := []struct {
		name      string
		actor     Actor
		companyID string
		want      bool
	}{
		{
			name:      "admin of the same company",
			actor:     Actor{UserID: "u1", CompanyID: "c1", Role: RoleAdmin},
			companyID: "c1",
			want:      true,
		},
		{
			name:      "regular member of the same company",
			actor:     Actor{UserID: "u1", CompanyID: "c1", Role: RoleUser},
			companyID: "c1",
			want:      false,
		},
		{
			name:      "admin of a different company",
			actor:     Actor{UserID: "u1", CompanyID: "c1", Role: RoleAdmin},
			companyID: "c2",
			want:      false,
		},
		{
			name:      "anonymous actor",
			actor:     Actor{},
			companyID: "c1",
			want:      false,
		},
		{
			name:      "empty company id never matches",
			actor:     Actor{UserID: "u1", CompanyID: "", Role: RoleAdmin},
			companyID: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManage(tt.actor, tt.companyID))
		})
	}
}

func TestSameCompany(t *testing.T) {
	actor := Actor{UserID: "u1", CompanyID: "c1", Role: RoleUser}

	assert.True(t, SameCompany(actor, "c1"))
	assert.False(t, SameCompany(actor, "c2"))
	assert.False(t, SameCompany(actor, ""))
}
