package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("dispatch", "/admin/orders/:id/status", "PATCH"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.AssignAdminRole(1, "dispatch"); err != nil {
		t.Fatalf("assign admin role failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/orders/42/status", "patch")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/orders/42", "GET")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestAssignAdminRoleOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	if err := svc.AssignAdminRole(2, "operator"); err != nil {
		t.Fatalf("assign operator failed: %v", err)
	}
	if err := svc.AssignAdminRole(2, "viewer"); err != nil {
		t.Fatalf("assign viewer failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(2)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:viewer" {
		t.Fatalf("roles want [role:viewer], got=%v", roles)
	}

	allow, err := svc.EnforceAdmin(2, "/admin/delivery-zones", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("expected operator permission removed after reassignment")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
		{in: " /api/v1/admin/delivery-zones ", want: "/admin/delivery-zones"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// 重复执行应当幂等
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles twice failed: %v", err)
	}

	policies, err := svc.RolePolicies("operator")
	if err != nil {
		t.Fatalf("get operator policies failed: %v", err)
	}
	if len(policies) != 5 {
		t.Fatalf("operator policies want 5 got %d", len(policies))
	}

	cases := []struct {
		adminID uint
		role    string
		object  string
		action  string
		want    bool
	}{
		{adminID: 10, role: "viewer", object: "/api/v1/admin/orders", action: "GET", want: true},
		{adminID: 10, role: "viewer", object: "/api/v1/admin/orders/7/status", action: "PATCH", want: false},
		{adminID: 11, role: "operator", object: "/api/v1/admin/orders/7/status", action: "PATCH", want: true},
		{adminID: 11, role: "operator", object: "/api/v1/admin/delivery-zones/3", action: "DELETE", want: true},
		{adminID: 11, role: "operator", object: "/api/v1/admin/settings/store", action: "PUT", want: false},
		{adminID: 11, role: "operator", object: "/api/v1/admin/settings/store", action: "GET", want: true},
		{adminID: 12, role: "super_admin", object: "/api/v1/admin/settings/store", action: "PUT", want: true},
		{adminID: 12, role: "super_admin", object: "/api/v1/admin/admins", action: "POST", want: true},
	}
	for _, tc := range cases {
		if err := svc.AssignAdminRole(tc.adminID, tc.role); err != nil {
			t.Fatalf("assign role %s failed: %v", tc.role, err)
		}
		allow, err := svc.EnforceAdmin(tc.adminID, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.action, tc.object, err)
		}
		if allow != tc.want {
			t.Fatalf("%s %s %s want %v got %v", tc.role, tc.action, tc.object, tc.want, allow)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	for _, in := range []string{"operator", "role:operator", " operator "} {
		got, err := NormalizeRole(in)
		if err != nil || got != "role:operator" {
			t.Fatalf("normalize role %q want role:operator got %q err=%v", in, got, err)
		}
	}
	if _, err := NormalizeRole("role:"); err == nil {
		t.Fatalf("empty role should be rejected")
	}
}

func TestAdminPermissionsIncludeInheritedPolicies(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.AssignAdminRole(5, "operator"); err != nil {
		t.Fatalf("assign operator failed: %v", err)
	}

	policies, err := svc.AdminPermissions(5)
	if err != nil {
		t.Fatalf("admin permissions failed: %v", err)
	}
	found := map[string]bool{}
	for _, policy := range policies {
		found[policy.Action+" "+policy.Object] = true
	}
	if !found["GET /admin/*"] {
		t.Fatalf("operator should inherit viewer read access, got %v", policies)
	}
	if !found["PATCH /admin/orders/:id/status"] {
		t.Fatalf("operator should carry status update permission, got %v", policies)
	}
	if found["* /admin/*"] {
		t.Fatalf("operator must not inherit super admin wildcard")
	}
}

func TestNilServiceUnavailable(t *testing.T) {
	var svc *Service
	if _, err := svc.EnforceAdmin(1, "/admin/orders", "GET"); err != ErrUnavailable {
		t.Fatalf("nil service want ErrUnavailable got %v", err)
	}
}
