package domain

import (
	"encoding/json"
	"fmt"
)

// User is a registered account. The password is stored as entered; there is
// deliberately no hashing in this application. Extra holds any additional
// registration form fields.
type User struct {
	ID        int64
	Email     string
	Password  string
	CreatedAt string
	Extra     map[string]string
}

func (u User) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(u.Extra)+4)
	mergeExtra(m, u.Extra)
	m["id"] = u.ID
	m["email"] = u.Email
	m["password"] = u.Password
	m["createdAt"] = u.CreatedAt
	return json.Marshal(m)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := takeField(raw, "id", &u.ID); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if err := takeField(raw, "email", &u.Email); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if err := takeField(raw, "password", &u.Password); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if err := takeField(raw, "createdAt", &u.CreatedAt); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	u.Extra = DecodeExtra(raw)
	return nil
}
