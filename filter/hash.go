package filter

import (
	"fmt"
	"sort"

	"github.com/dgryski/go-metro"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"github.com/zhenjl/cityhash"
)

// Hash is a seeded 64-bit hash primitive. Each probe slot of a filter
// evaluates it once with its own seed, so distinct seeds must give
// independent outputs for the same data.
type Hash func(data []byte, seed uint64) uint64

// Murmur3 is the default hash family.
func Murmur3(data []byte, seed uint64) uint64 {
	// murmur3 takes a 32 bit seed, fold the high half in so large seeds stay distinct
	return murmur3.Sum64WithSeed(data, uint32(seed)^uint32(seed>>32))
}

func Metro(data []byte, seed uint64) uint64 {
	return metro.Hash64(data, seed)
}

func XXH3(data []byte, seed uint64) uint64 {
	return xxh3.HashSeed(data, seed)
}

func City(data []byte, seed uint64) uint64 {
	return cityhash.CityHash64WithSeed(data, uint32(len(data)), seed)
}

var hashes = map[string]Hash{
	"murmur3": Murmur3,
	"metro":   Metro,
	"xxh3":    XXH3,
	"city":    City,
}

// HashByName returns the hash family registered under name.
func HashByName(name string) (Hash, error) {
	fn, ok := hashes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
	return fn, nil
}

// HashNames returns the registered hash family names in sorted order.
func HashNames() []string {
	names := make([]string, 0, len(hashes))
	for name := range hashes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
