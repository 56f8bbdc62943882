package dispatch

import (
	"uaman/internal/config"
	"uaman/pkg/types"
)

// Bag holds the argument values for a single launch, keyed by declared
// argument key. Values use the store's string forms: boolean keys carry the
// literals "true" and "false". Only declared keys are ever emitted as
// flags, always in declared order, so two bags holding the same values
// produce the same command line no matter how they were filled.
type Bag map[types.ArgKey]string

// NewBag returns an empty bag.
func NewBag() Bag {
	return make(Bag, len(types.ArgKeys()))
}

// BagFromStore loads the persisted value of every declared key, giving the
// operator the same starting point the last launch ended with.
func BagFromStore(store config.Store) Bag {
	bag := NewBag()
	for _, key := range types.ArgKeys() {
		def := ""
		if key.Bool() {
			def = "false"
		}
		bag[key] = store.Get(config.SectionArguments, string(key), def)
	}
	return bag
}

// Set stores a string value for key.
func (b Bag) Set(key types.ArgKey, value string) {
	b[key] = value
}

// SetBool stores a boolean value for key.
func (b Bag) SetBool(key types.ArgKey, on bool) {
	if on {
		b[key] = "true"
	} else {
		b[key] = "false"
	}
}

// Value returns the stored string for key, "" when unset.
func (b Bag) Value(key types.ArgKey) string {
	return b[key]
}

// Bool reports whether a boolean key is on.
func (b Bag) Bool(key types.ArgKey) bool {
	return b[key] == "true"
}

// SaveTo persists every value present in the bag as the stored default.
// The argument form saves on every launch, so the next session starts from
// the values last used.
func (b Bag) SaveTo(store config.Store) error {
	for _, key := range types.ArgKeys() {
		value, ok := b[key]
		if !ok {
			continue
		}
		if err := store.Set(config.SectionArguments, string(key), value); err != nil {
			return err
		}
	}
	return nil
}
