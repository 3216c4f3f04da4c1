package user

// User is the owner scope for every record in the system. There is no
// password here: authentication happens in front of this service and callers
// identify themselves with the X-User-Id header.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	// Currency is the symbol used when rendering amounts in messages, e.g. "₹".
	Currency string
}

const DefaultCurrency = "₹"
