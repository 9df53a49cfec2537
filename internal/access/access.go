// Package access maps staff group membership onto a closed set of business
// roles and a declarative capability table. Resolution happens once per
// actor; mutating services re-check capabilities at the point of mutation.
package access

import "strings"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleLeader     Role = "leader"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
)

type Resource string

const (
	ResourceRoles       Resource = "roles"
	ResourceAddresses   Resource = "addresses"
	ResourceStaff       Resource = "staff"
	ResourceClients     Resource = "clients"
	ResourceEquipment   Resource = "equipment"
	ResourceDictionary  Resource = "dictionaries"
	ResourceMaintenance Resource = "maintenance"
	ResourceRents       Resource = "rents"
	ResourceLogs        Resource = "logs"
	ResourcePreferences Resource = "preferences"
	ResourceBackups     Resource = "backups"
)

// Group name aliases, case-insensitive. Deployments historically named the
// auth groups in Russian, so both spellings resolve.
var aliases = map[Role][]string{
	RoleAdmin:      {"admin", "администратор", "админ", "администратор системы"},
	RoleLeader:     {"leader", "руководитель"},
	RoleManager:    {"manager", "менеджер"},
	RoleTechnician: {"technician", "техник", "технический специалист"},
}

// ResolveRoles maps raw group names to business roles. Unknown names are
// ignored.
func ResolveRoles(groups []string) []Role {
	seen := map[Role]bool{}
	var roles []Role
	for _, g := range groups {
		name := strings.ToLower(strings.TrimSpace(g))
		if name == "" {
			continue
		}
		for role, names := range aliases {
			for _, alias := range names {
				if name == alias && !seen[role] {
					seen[role] = true
					roles = append(roles, role)
				}
			}
		}
	}
	return roles
}

type capability struct {
	read  bool
	write bool
}

var readOnly = capability{read: true}
var readWrite = capability{read: true, write: true}

// capabilities is the full {Role -> {Resource -> read/write}} table.
// Resources absent from a role's map fall back to that role's default.
var capabilities = map[Role]map[Resource]capability{
	RoleManager: {
		ResourceAddresses: readWrite,
		ResourceClients:   readWrite,
		ResourceEquipment: readWrite,
		ResourceRents:     readWrite,
	},
	RoleTechnician: {
		ResourceMaintenance: readWrite,
	},
	RoleLeader: {},
}

// CanRead reports whether any of the roles may read the resource.
func CanRead(roles []Role, res Resource) bool {
	for _, r := range roles {
		if r == RoleAdmin {
			return true
		}
		if cap, ok := capabilities[r][res]; ok {
			if cap.read {
				return true
			}
			continue
		}
		// Non-admin roles read everything by default.
		return true
	}
	return false
}

// CanWrite reports whether any of the roles may mutate the resource.
// Everyone may write their own preferences.
func CanWrite(roles []Role, res Resource) bool {
	if res == ResourcePreferences && len(roles) > 0 {
		return true
	}
	for _, r := range roles {
		if r == RoleAdmin {
			return true
		}
		if cap, ok := capabilities[r][res]; ok && cap.write {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role set contains the admin role.
func IsAdmin(roles []Role) bool {
	for _, r := range roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
