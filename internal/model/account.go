package model

// Account is a named ledger bucket holding transactions.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"user_id,omitempty"`
}

// User owns accounts.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountByID returns the account with the given id, if present.
func AccountByID(accounts []Account, id string) (Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}
