package user

// User is a creator/viewer account. The numeric id is what posts, views and
// sessions reference.
type User struct {
	ID       int64
	Username string
	Password []byte
}
