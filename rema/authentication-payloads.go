package rema

import "encoding/json"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID  UserID `json:"user_id"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// Succeeded applies the server contract: a login is successful when the
// response carries a user_id and success is either omitted or true.
func (r LoginResponse) Succeeded() bool {
	return (r.Success == nil || *r.Success) && r.UserID != ""
}

// UserID tolerates both JSON encodings the server has been seen using,
// a number and a string.
type UserID string

func (u *UserID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*u = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*u = UserID(n.String())
	return nil
}
