package model

// User represents a row of the `users` table. The column set follows the
// reference schema: identity and role, credentials, postal contact fields and
// the seller-onboarding document paths. Acceptation is the approval flag; a
// trigger in the storage layer clears it for every newly inserted seller
// regardless of what the insert carried.
//
// The json tags reuse the column names so a listed row serializes exactly the
// way the table reads.
type User struct {
	UserID         int64  `json:"userId"`
	Type           string `json:"type"` // acheteur | vendeur | admin
	Password       string `json:"password"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Address1       string `json:"address1"`
	Address2       string `json:"address2"`
	Zipcode        string `json:"zipcode"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Phone          string `json:"phone"`
	Avatar         string `json:"avatar"`
	IP             string `json:"IP"`
	Acceptation    int    `json:"acceptation"` // 0 or 1
	VendorCertPath string `json:"vendor_cert_path"`
	CinPath        string `json:"cin_path"`
	PhotoPath      string `json:"photo_path"`
}
