package bloom

import (
	"fmt"
	"math"
	"math/bits"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
	"github.com/rag-nar1/bloomcheck/filter"
)

const (
	WordSize = 6 // in power of 2
	WordBits = 1 << WordSize
	WordMask = WordBits - 1
)

// State reports whether any key has been inserted.
type State int

const (
	Empty State = iota
	Populated
)

func (s State) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Verdict is the answer to a membership query.
type Verdict bool

const (
	DefinitelyAbsent Verdict = false
	PossiblyPresent  Verdict = true
)

func (v Verdict) String() string {
	if v == PossiblyPresent {
		return "possibly present"
	}
	return "definitely absent"
}

type BloomFilter struct {
	M uint64 // size of bit-array
	K uint64 // number of hash-functions

	Bits []uint64 // the filter actual storage

	hash     filter.Hash
	inserted atomic.Uint64
}

type Option func(*BloomFilter)

// WithHash selects the seeded hash primitive used for every probe.
func WithHash(fn filter.Hash) Option {
	return func(bf *BloomFilter) {
		if fn != nil {
			bf.hash = fn
		}
	}
}

// New allocates a filter of m bits probed by k seeded hashes, all bits clear.
func New(m, k uint64, opts ...Option) (*BloomFilter, error) {
	if m < 1 || k < 1 {
		return nil, fmt.Errorf("%w: m=%d k=%d, both must be at least 1", filter.ErrInvalidArgument, m, k)
	}
	words := m >> WordSize
	if m&WordMask != 0 {
		words++
	}
	if words > math.MaxInt32*8 {
		return nil, fmt.Errorf("%w: m=%d is too large", filter.ErrInvalidArgument, m)
	}

	bf := &BloomFilter{
		M:    m,
		K:    k,
		Bits: make([]uint64, words),
		hash: filter.Murmur3,
	}
	for _, opt := range opts {
		opt(bf)
	}
	return bf, nil
}

// NewWithEstimates sizes a filter for n keys at false-positive rate p.
func NewWithEstimates(n uint64, p float64, opts ...Option) (*BloomFilter, error) {
	m, k, err := filter.Calculate(n, p)
	if err != nil {
		return nil, err
	}
	return New(m, k, opts...)
}

// Hash returns the k probe indices of data, index i being hash(data, i) mod m.
func (bf *BloomFilter) Hash(data []byte) []uint64 {
	hashedIdx := make([]uint64, bf.K)
	for i := range hashedIdx {
		hashedIdx[i] = bf.index(data, uint64(i))
	}
	return hashedIdx
}

func (bf *BloomFilter) index(data []byte, seed uint64) uint64 {
	return bf.hash(data, seed) % bf.M
}

func (bf *BloomFilter) Insert(data []byte) {
	for i := uint64(0); i < bf.K; i++ {
		idx := bf.index(data, i)
		bf.Bits[idx>>WordSize] |= uint64(1) << (idx & WordMask)
	}
	bf.inserted.Add(1)
}

func (bf *BloomFilter) InsertString(key string) {
	bf.Insert([]byte(key))
}

// InsertConcurrent is Insert with an atomic read-modify-write on each word,
// so several goroutines may call it on the same filter. Readers must wait
// until every writer has returned.
func (bf *BloomFilter) InsertConcurrent(data []byte) {
	for i := uint64(0); i < bf.K; i++ {
		idx := bf.index(data, i)
		word := &bf.Bits[idx>>WordSize]
		mask := uint64(1) << (idx & WordMask)
		for {
			old := atomic.LoadUint64(word)
			if old&mask != 0 || atomic.CompareAndSwapUint64(word, old, old|mask) {
				break
			}
		}
	}
	bf.inserted.Add(1)
}

// Exist reports whether every probe bit of data is set. It stops at the
// first clear bit.
func (bf *BloomFilter) Exist(data []byte) bool {
	for i := uint64(0); i < bf.K; i++ {
		idx := bf.index(data, i)
		if (bf.Bits[idx>>WordSize]>>(idx&WordMask))&1 == 0 {
			return false
		}
	}
	return true
}

func (bf *BloomFilter) Query(key string) Verdict {
	return Verdict(bf.Exist([]byte(key)))
}

func (bf *BloomFilter) State() State {
	if bf.inserted.Load() == 0 {
		return Empty
	}
	return Populated
}

// Inserted counts insert calls, duplicates included.
func (bf *BloomFilter) Inserted() uint64 {
	return bf.inserted.Load()
}

// Snapshot returns a copy of the bit array.
func (bf *BloomFilter) Snapshot() *bitset.BitSet {
	words := make([]uint64, len(bf.Bits))
	copy(words, bf.Bits)
	return bitset.From(words)
}

func (bf *BloomFilter) SetBits() uint64 {
	var n int
	for _, w := range bf.Bits {
		n += bits.OnesCount64(w)
	}
	return uint64(n)
}

func (bf *BloomFilter) FillRatio() float64 {
	return float64(bf.SetBits()) / float64(bf.M)
}

// EstimatedFalsePositiveRate is the chance a random absent key hits k set
// bits given the current fill ratio.
func (bf *BloomFilter) EstimatedFalsePositiveRate() float64 {
	return math.Pow(bf.FillRatio(), float64(bf.K))
}
