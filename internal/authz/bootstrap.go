package authz

import (
	"fmt"

	"github.com/chowline/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 预置角色矩阵，角色名与 Admin.Role 字段一致
//
// viewer 只读；operator 额外维护配送区域、菜品价格并推进订单状态；
// super_admin 拥有后台全部权限（门店配置、管理员账号）。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.AdminRoleViewer,
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     constants.AdminRoleOperator,
			Inherits: []string{constants.AdminRoleViewer},
			Policies: []Policy{
				{Object: "/admin/delivery-zones", Action: "POST"},
				{Object: "/admin/delivery-zones/:id", Action: "PUT"},
				{Object: "/admin/delivery-zones/:id", Action: "DELETE"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/menu-items/:id/price", Action: "PATCH"},
			},
		},
		{
			Role:     constants.AdminRoleSuper,
			Inherits: []string{constants.AdminRoleOperator},
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色与策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.ensureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.addGrouping(role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if _, err := s.addPolicy(role, policy); err != nil {
				return err
			}
		}
	}
	return nil
}
