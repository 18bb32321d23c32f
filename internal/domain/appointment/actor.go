package appointment

// Role of the authenticated caller. Owners and barbers are shop staff.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleBarber   Role = "barber"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleBarber || r == RoleStaff
}

// Actor identifies who is calling a use case. It is passed explicitly to
// every operation instead of being read from ambient session state.
type Actor struct {
	ID           uint
	BarbershopID uint
	Role         Role
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

func (a Actor) IsCustomer() bool {
	return a.Role == RoleCustomer
}

// RequireStaff fails unless the actor is staff of barbershopID.
func (a Actor) RequireStaff(barbershopID uint) error {
	if !a.IsStaff() {
		return &ForbiddenError{Reason: "staff only"}
	}
	if a.BarbershopID != barbershopID {
		return &ForbiddenError{Reason: "other barbershop"}
	}
	return nil
}
