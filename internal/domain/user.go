package domain

type User struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Username string `db:"username"`
	Role     string `db:"role"`
	Hash     string `db:"password_hash"`
}

const (
	RoleAdmin            = "Admin"
	RoleManager          = "Manager"
	RoleCashier          = "Cashier"
	RoleInventoryManager = "Inventory Manager"
)

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier, RoleInventoryManager:
		return true
	}
	return false
}
