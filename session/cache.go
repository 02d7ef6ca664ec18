package session

// Cache is the process-wide slot holding the last-known user, constructed
// once at application startup and handed to the Manager. It exists to
// avoid re-deserializing the stored user on every read. Only the Manager
// mutates it; everything else reads through Manager.CurrentUser. The
// zero-value methods are not safe for arbitrary concurrent writers — the
// Manager serializes access under its own lock.
type Cache struct {
	user *User
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached user, if one is set.
func (c *Cache) Get() (*User, bool) {
	return c.user, c.user != nil
}

func (c *Cache) set(u *User) {
	c.user = u
}

func (c *Cache) clear() {
	c.user = nil
}
