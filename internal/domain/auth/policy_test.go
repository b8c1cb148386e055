package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Identidad-api/internal/domain/auth"
	"github.com/jhoicas/Identidad-api/internal/domain/entity"
)

func TestCanChangeRole_Tabla(t *testing.T) {
	cases := []struct {
		name string
		c    auth.RoleChange
		want bool
	}{
		{"owner promueve employee a admin",
			auth.RoleChange{ActorRole: entity.RoleOwner, TargetRole: entity.RoleEmployee, NewRole: entity.RoleAdmin}, true},
		{"admin promueve employee a manager",
			auth.RoleChange{ActorRole: entity.RoleAdmin, TargetRole: entity.RoleEmployee, NewRole: entity.RoleManager}, true},
		{"manager no puede cambiar roles",
			auth.RoleChange{ActorRole: entity.RoleManager, TargetRole: entity.RoleEmployee, NewRole: entity.RoleAdmin}, false},
		{"employee no puede cambiar roles",
			auth.RoleChange{ActorRole: entity.RoleEmployee, TargetRole: entity.RoleEmployee, NewRole: entity.RoleManager}, false},
		{"admin no puede otorgar owner",
			auth.RoleChange{ActorRole: entity.RoleAdmin, TargetRole: entity.RoleEmployee, NewRole: entity.RoleOwner}, false},
		{"admin no puede degradar a un owner",
			auth.RoleChange{ActorRole: entity.RoleAdmin, TargetRole: entity.RoleOwner, NewRole: entity.RoleAdmin}, false},
		{"owner puede otorgar owner a otro",
			auth.RoleChange{ActorRole: entity.RoleOwner, TargetRole: entity.RoleAdmin, NewRole: entity.RoleOwner}, true},
		{"owner puede degradar a otro owner",
			auth.RoleChange{ActorRole: entity.RoleOwner, TargetRole: entity.RoleOwner, NewRole: entity.RoleAdmin}, true},
		{"nadie se auto-eleva a owner",
			auth.RoleChange{ActorRole: entity.RoleAdmin, TargetRole: entity.RoleAdmin, NewRole: entity.RoleOwner, ActorIsTarget: true}, false},
		{"ni siquiera un owner se auto-cambia el rol owner",
			auth.RoleChange{ActorRole: entity.RoleOwner, TargetRole: entity.RoleOwner, NewRole: entity.RoleAdmin, ActorIsTarget: true}, false},
		{"rol destino inválido",
			auth.RoleChange{ActorRole: entity.RoleOwner, TargetRole: entity.RoleEmployee, NewRole: "superuser"}, false},
		{"admin se auto-degrada a employee",
			auth.RoleChange{ActorRole: entity.RoleAdmin, TargetRole: entity.RoleAdmin, NewRole: entity.RoleEmployee, ActorIsTarget: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, auth.CanChangeRole(tc.c))
		})
	}
}
