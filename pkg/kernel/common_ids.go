package kernel

import "strconv"

type UserID int64

func NewUserID(id int64) UserID { return UserID(id) }
func (u UserID) Int64() int64   { return int64(u) }
func (u UserID) String() string { return strconv.FormatInt(int64(u), 10) }
func (u UserID) IsEmpty() bool  { return u <= 0 }

// ParseUserID parses a decimal user id as it appears in tokens and URLs.
func ParseUserID(s string) (UserID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return UserID(id), nil
}
