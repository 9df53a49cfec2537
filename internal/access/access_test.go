package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoles(t *testing.T) {
	t.Run("EnglishNames", func(t *testing.T) {
		roles := ResolveRoles([]string{"manager"})
		assert.Equal(t, []Role{RoleManager}, roles)
	})

	t.Run("RussianAliases", func(t *testing.T) {
		roles := ResolveRoles([]string{"Менеджер", "Техник"})
		assert.ElementsMatch(t, []Role{RoleManager, RoleTechnician}, roles)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		roles := ResolveRoles([]string{"ADMIN", "  Руководитель  "})
		assert.ElementsMatch(t, []Role{RoleAdmin, RoleLeader}, roles)
	})

	t.Run("AdminLongForm", func(t *testing.T) {
		roles := ResolveRoles([]string{"Администратор системы"})
		assert.Equal(t, []Role{RoleAdmin}, roles)
	})

	t.Run("UnknownIgnored", func(t *testing.T) {
		assert.Empty(t, ResolveRoles([]string{"bookkeeper", ""}))
	})

	t.Run("Deduplicates", func(t *testing.T) {
		roles := ResolveRoles([]string{"manager", "менеджер"})
		assert.Equal(t, []Role{RoleManager}, roles)
	})
}

func TestCapabilities(t *testing.T) {
	t.Run("AdminFullAccess", func(t *testing.T) {
		roles := []Role{RoleAdmin}
		for _, res := range []Resource{ResourceRents, ResourceLogs, ResourceStaff, ResourceBackups} {
			assert.True(t, CanRead(roles, res))
			assert.True(t, CanWrite(roles, res))
		}
	})

	t.Run("LeaderReadOnlyEverywhere", func(t *testing.T) {
		roles := []Role{RoleLeader}
		for _, res := range []Resource{ResourceRents, ResourceClients, ResourceEquipment, ResourceMaintenance, ResourceLogs} {
			assert.True(t, CanRead(roles, res), "leader should read %s", res)
			assert.False(t, CanWrite(roles, res), "leader must not write %s", res)
		}
	})

	t.Run("ManagerWritesRentalDomain", func(t *testing.T) {
		roles := []Role{RoleManager}
		assert.True(t, CanWrite(roles, ResourceRents))
		assert.True(t, CanWrite(roles, ResourceClients))
		assert.True(t, CanWrite(roles, ResourceEquipment))
		assert.True(t, CanWrite(roles, ResourceAddresses))
		assert.False(t, CanWrite(roles, ResourceMaintenance))
		assert.False(t, CanWrite(roles, ResourceStaff))
		assert.True(t, CanRead(roles, ResourceMaintenance))
	})

	t.Run("TechnicianWritesMaintenanceOnly", func(t *testing.T) {
		roles := []Role{RoleTechnician}
		assert.True(t, CanWrite(roles, ResourceMaintenance))
		assert.False(t, CanWrite(roles, ResourceRents))
		assert.False(t, CanWrite(roles, ResourceEquipment))
		assert.True(t, CanRead(roles, ResourceRents))
	})

	t.Run("OwnPreferencesAlwaysWritable", func(t *testing.T) {
		assert.True(t, CanWrite([]Role{RoleLeader}, ResourcePreferences))
	})

	t.Run("NoRolesNoAccess", func(t *testing.T) {
		assert.False(t, CanRead(nil, ResourceRents))
		assert.False(t, CanWrite(nil, ResourceRents))
	})
}
