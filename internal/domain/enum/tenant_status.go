package enum

// TenantStatus tracks whether a tenant currently occupies their room
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusMovedOut TenantStatus = "moved_out"
)

// IsValid checks whether the status is a known value
func (s TenantStatus) IsValid() bool {
	return s == TenantStatusActive || s == TenantStatusMovedOut
}
