package domain

// Role of the caller resolved by the identity layer
type Role string

const (
	RoleCustomer     Role = "customer"
	RoleReceptionist Role = "receptionist"
	RoleManager      Role = "manager"
	RoleAdmin        Role = "admin"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleReceptionist, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// AccessScope is the caller context: a customer, a hotel staff member or an admin.
// For customers UserID is the customer id.
type AccessScope struct {
	UserID  int64
	Role    Role
	HotelID *int64 // set for staff
}

// IsStaff returns true for receptionists and managers
func (s AccessScope) IsStaff() bool {
	return s.Role == RoleReceptionist || s.Role == RoleManager
}

// CanManageHotel returns true if the caller may operate on bookings of the hotel
func (s AccessScope) CanManageHotel(hotelID int64) bool {
	if s.Role == RoleAdmin {
		return true
	}
	return s.IsStaff() && s.HotelID != nil && *s.HotelID == hotelID
}

// CanView returns true if the caller may see the booking
func (s AccessScope) CanView(b *Booking) bool {
	if s.Role == RoleCustomer {
		return b.CustomerID == s.UserID
	}
	return s.CanManageHotel(b.HotelID)
}
