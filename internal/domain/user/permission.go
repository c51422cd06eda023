package user

// Permission 操作权限
// 设计说明：接口层只检查权限,不直接比较角色字符串,
// 新增角色时只需调整下方的权限映射表
type Permission int

const (
	// PermReadAllOrders 查看任意用户的订单
	PermReadAllOrders Permission = iota
	// PermMutateOrderStatus 变更订单状态(标记支付/送达)
	PermMutateOrderStatus
	// PermManageCatalog 管理图书目录(上架/改价/下架)
	PermManageCatalog
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// rolePermissions 角色到权限集合的映射表
var rolePermissions = map[Role]map[Permission]bool{
	RoleUser: {},
	RoleAdmin: {
		PermReadAllOrders:     true,
		PermMutateOrderStatus: true,
		PermManageCatalog:     true,
	},
}

// Can 判断角色是否具备某项权限,未知角色一律拒绝
func (r Role) Can(perm Permission) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		return false
	}
	return perms[perm]
}

// IsValidRole 校验角色合法性(用于解析JWT claims)
func IsValidRole(r Role) bool {
	_, ok := rolePermissions[r]
	return ok
}
