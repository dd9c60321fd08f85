package models

// PurchaserProfile holds the account metadata used to label exports
type PurchaserProfile struct {
	ID       string  `json:"id" db:"id"`
	FullName *string `json:"full_name,omitempty" db:"full_name"`
}

// DisplayName returns the profile's full name, or "" when none is set
func (p *PurchaserProfile) DisplayName() string {
	if p == nil || p.FullName == nil {
		return ""
	}
	return *p.FullName
}
