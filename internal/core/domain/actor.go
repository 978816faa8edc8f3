package domain

// Role is the marketplace role asserted by the identity provider.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleCourier  Role = "courier"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleMerchant, RoleCourier, RoleAdmin:
		return true
	}
	return false
}

// HoldsWallet reports whether participants with this role own a wallet.
func (r Role) HoldsWallet() bool {
	return r == RoleMerchant || r == RoleCourier
}

// Actor is an authenticated caller. The engine trusts it as supplied and
// only performs authorization against it.
type Actor struct {
	ID   string
	Role Role
}
