package access

import "math/bits"

// bitSet is a growable set of dense non-negative ids. Access declarations
// are hot during registration and scheduling, so this avoids map overhead.
type bitSet struct {
	words []uint64
}

func (b *bitSet) insert(id int) {
	w := id >> 6
	for len(b.words) <= w {
		b.words = append(b.words, 0)
	}
	b.words[w] |= 1 << (uint(id) & 63)
}

func (b *bitSet) contains(id int) bool {
	w := id >> 6
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<(uint(id)&63)) != 0
}

func (b *bitSet) isEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b *bitSet) intersects(o *bitSet) bool {
	n := len(b.words)
	if len(o.words) < n {
		n = len(o.words)
	}
	for i := 0; i < n; i++ {
		if b.words[i]&o.words[i] != 0 {
			return true
		}
	}
	return false
}

// intersection returns the ids present in both sets, in ascending order.
func (b *bitSet) intersection(o *bitSet) []int {
	n := len(b.words)
	if len(o.words) < n {
		n = len(o.words)
	}
	var ids []int
	for i := 0; i < n; i++ {
		w := b.words[i] & o.words[i]
		for w != 0 {
			ids = append(ids, i<<6+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return ids
}

func (b *bitSet) unionWith(o *bitSet) {
	for len(b.words) < len(o.words) {
		b.words = append(b.words, 0)
	}
	for i, w := range o.words {
		b.words[i] |= w
	}
}

func (b *bitSet) clone() bitSet {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return bitSet{words: words}
}

func (b *bitSet) ids() []int {
	var ids []int
	for i, w := range b.words {
		for w != 0 {
			ids = append(ids, i<<6+bits.TrailingZeros64(w))
			w &= w - 1
		}
	}
	return ids
}
