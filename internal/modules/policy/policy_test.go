package policy

import "testing"

func TestVisibleLocations(t *testing.T) {
	cases := []struct {
		role string
		want []string
	}{
		{RoleSupervisor, []string{LocationNTCC}},
		{RoleStorekeeper, []string{LocationNTCC, LocationSNC}},
		{RoleManager, []string{LocationNTCC, LocationSNC}},
	}
	for _, c := range cases {
		got := VisibleLocations(c.role)
		if len(got) != len(c.want) {
			t.Fatalf("%s: expected %v, got %v", c.role, c.want, got)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("%s: expected %v, got %v", c.role, c.want, got)
			}
		}
	}
}

func TestRequestSourceAllowed(t *testing.T) {
	if !RequestSourceAllowed(RoleSupervisor, LocationNTCC) {
		t.Error("supervisor must be able to request from NTCC")
	}
	if RequestSourceAllowed(RoleSupervisor, LocationSNC) {
		t.Error("supervisor must not request from SNC")
	}
	if !RequestSourceAllowed(RoleStorekeeper, LocationSNC) {
		t.Error("storekeeper must be able to source from SNC")
	}
	if RequestSourceAllowed(RoleManager, LocationNTCC) {
		t.Error("manager does not create requests")
	}
}

func TestActionGrid(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) bool
		role string
		want bool
	}{
		{"approve/manager", CanApprove, RoleManager, true},
		{"approve/supervisor", CanApprove, RoleSupervisor, false},
		{"approve/storekeeper", CanApprove, RoleStorekeeper, false},
		{"reject/manager", CanReject, RoleManager, true},
		{"issue/storekeeper", CanIssue, RoleStorekeeper, true},
		{"issue/manager", CanIssue, RoleManager, false},
		{"create-item/manager", CanCreateItem, RoleManager, true},
		{"create-item/storekeeper", CanCreateItem, RoleStorekeeper, false},
		{"adjust/storekeeper", CanAdjustCentral, RoleStorekeeper, true},
		{"adjust/supervisor", CanAdjustCentral, RoleSupervisor, false},
		{"transfer/manager", CanTransfer, RoleManager, true},
		{"local-count/supervisor", CanSetLocalCount, RoleSupervisor, true},
		{"local-count/storekeeper", CanSetLocalCount, RoleStorekeeper, false},
		{"logs/manager", CanViewLogs, RoleManager, true},
		{"logs/supervisor", CanViewLogs, RoleSupervisor, false},
		{"request/supervisor", CanCreateRequest, RoleSupervisor, true},
		{"request/manager", CanCreateRequest, RoleManager, false},
	}
	for _, c := range cases {
		if got := c.fn(c.role); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestCanSeeRegion(t *testing.T) {
	if !CanSeeRegion(RoleManager, "", "ICU 28") {
		t.Error("manager sees every region")
	}
	if !CanSeeRegion(RoleSupervisor, "O.R", "O.R") {
		t.Error("supervisor sees own region")
	}
	if CanSeeRegion(RoleSupervisor, "O.R", "ICU 28") {
		t.Error("supervisor must not see another region")
	}
}
