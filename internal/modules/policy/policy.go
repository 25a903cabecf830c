package policy

// Roles known to the system. Registration always starts a user as a
// supervisor; managers promote from the database directly.
const (
	RoleManager     = "manager"
	RoleSupervisor  = "supervisor"
	RoleStorekeeper = "storekeeper"
)

// Warehouse locations. NTCC is the internal central warehouse, SNC the
// external one.
const (
	LocationNTCC = "NTCC"
	LocationSNC  = "SNC"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleManager || role == RoleSupervisor || role == RoleStorekeeper
}

// ValidLocation reports whether loc names a known warehouse.
func ValidLocation(loc string) bool {
	return loc == LocationNTCC || loc == LocationSNC
}

// VisibleLocations returns the warehouses whose central stock the role
// may see. Supervisors are restricted to NTCC.
func VisibleLocations(role string) []string {
	if role == RoleSupervisor {
		return []string{LocationNTCC}
	}
	return []string{LocationNTCC, LocationSNC}
}

// CanSeeLocation reports whether the role may view central stock at loc.
func CanSeeLocation(role, loc string) bool {
	for _, l := range VisibleLocations(role) {
		if l == loc {
			return true
		}
	}
	return false
}

// RequestSourceAllowed reports whether the role may source a request
// from loc. Supervisors request from NTCC only; storekeepers may pull
// from either warehouse.
func RequestSourceAllowed(role, loc string) bool {
	switch role {
	case RoleSupervisor:
		return loc == LocationNTCC
	case RoleStorekeeper:
		return ValidLocation(loc)
	default:
		return false
	}
}

// CanCreateRequest reports whether the role may open item requests.
func CanCreateRequest(role string) bool {
	return role == RoleSupervisor || role == RoleStorekeeper
}

// CanApprove reports whether the role may approve pending requests.
func CanApprove(role string) bool { return role == RoleManager }

// CanReject reports whether the role may reject pending requests.
func CanReject(role string) bool { return role == RoleManager }

// CanIssue reports whether the role may issue approved requests.
func CanIssue(role string) bool { return role == RoleStorekeeper }

// CanCreateItem reports whether the role may add items to central stock.
func CanCreateItem(role string) bool { return role == RoleManager }

// CanAdjustCentral reports whether the role may run a central stock-take.
func CanAdjustCentral(role string) bool {
	return role == RoleManager || role == RoleStorekeeper
}

// CanTransfer reports whether the role may move stock between warehouses.
func CanTransfer(role string) bool {
	return role == RoleManager || role == RoleStorekeeper
}

// CanSetLocalCount reports whether the role may file an absolute branch
// stock-take for its own region.
func CanSetLocalCount(role string) bool { return role == RoleSupervisor }

// CanViewLogs reports whether the role may read the movement log.
func CanViewLogs(role string) bool { return role == RoleManager }

// VisibleRegions returns the regions whose branch inventory the role
// may see. An empty slice means every region (manager reporting).
func VisibleRegions(role, ownRegion string) []string {
	if role == RoleManager {
		return nil
	}
	return []string{ownRegion}
}

// CanSeeRegion reports whether the role may view branch inventory for
// region.
func CanSeeRegion(role, ownRegion, region string) bool {
	regions := VisibleRegions(role, ownRegion)
	if regions == nil {
		return true
	}
	for _, r := range regions {
		if r == region {
			return true
		}
	}
	return false
}
