// Package models defines the data records the refind client exchanges with
// the backend API. All records are read/write projections of backend state;
// nothing here performs I/O.
package models

// User is the authenticated account as the backend serializes it.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Merge overlays the non-zero fields of upd onto u and returns the result.
// Fields the backend did not echo back keep their previous values, so a
// partial update response never drops a known field.
func (u User) Merge(upd User) User {
	if upd.ID != 0 {
		u.ID = upd.ID
	}
	if upd.Username != "" {
		u.Username = upd.Username
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.FirstName != "" {
		u.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		u.LastName = upd.LastName
	}
	return u
}
