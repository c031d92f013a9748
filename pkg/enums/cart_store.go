package enums

import "fmt"

// CartStore selects the backing store for session carts.
type CartStore string

const (
	CartStoreMemory CartStore = "memory"
	CartStoreRedis  CartStore = "redis"
)

var validCartStores = []CartStore{
	CartStoreMemory,
	CartStoreRedis,
}

// String implements fmt.Stringer.
func (c CartStore) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartStore.
func (c CartStore) IsValid() bool {
	for _, candidate := range validCartStores {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartStore converts raw input into a CartStore.
func ParseCartStore(value string) (CartStore, error) {
	for _, candidate := range validCartStores {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart store %q", value)
}
