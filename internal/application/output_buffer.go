package application

import "github.com/bnema/scriptbridge/internal/domain"

// OutputBuffer accumulates the fragments one execution produced and has not
// delivered yet. It belongs to a single execution and is not safe for
// concurrent use.
type OutputBuffer struct {
	fragments []domain.Fragment
}

func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{}
}

func (b *OutputBuffer) Push(f domain.Fragment) {
	b.fragments = append(b.fragments, f)
}

func (b *OutputBuffer) Pop() (domain.Fragment, bool) {
	if len(b.fragments) == 0 {
		return domain.Fragment{}, false
	}

	last := b.fragments[len(b.fragments)-1]
	b.fragments = b.fragments[:len(b.fragments)-1]
	return last, true
}

// PopMany removes the last n fragments and returns them in their original
// order. n is clamped to [0, Len()].
func (b *OutputBuffer) PopMany(n int) []domain.Fragment {
	if n <= 0 {
		return nil
	}
	if n > len(b.fragments) {
		n = len(b.fragments)
	}

	cut := len(b.fragments) - n
	out := make([]domain.Fragment, n)
	copy(out, b.fragments[cut:])
	b.fragments = b.fragments[:cut]
	return out
}

func (b *OutputBuffer) PeekAll() []domain.Fragment {
	out := make([]domain.Fragment, len(b.fragments))
	copy(out, b.fragments)
	return out
}

func (b *OutputBuffer) Len() int {
	return len(b.fragments)
}
