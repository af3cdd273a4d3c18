package editline

// minGrowth is the smallest amount by which a lineBuffer grows, so that a
// run of small inserts does not reallocate on every key.
const minGrowth = 256

// lineBuffer is the storage behind the edited line.
//
// The backing slice always holds one byte more than the capacity so the
// byte after the content can be kept as a NUL terminator; b[n] == 0 holds
// after every operation. Capacity only grows.
type lineBuffer struct {
	b []byte
	n int
}

func newLineBuffer(capacity int) lineBuffer {
	var lb lineBuffer
	lb.grow(capacity)
	return lb
}

func (lb *lineBuffer) capacity() int {
	if lb.b == nil {
		return 0
	}
	return len(lb.b) - 1
}

// grow adds at least amount bytes of capacity.
func (lb *lineBuffer) grow(amount int) {
	if amount < minGrowth {
		amount = minGrowth
	}
	nb := make([]byte, lb.capacity()+amount+1)
	if lb.b != nil {
		copy(nb, lb.b[:lb.n+1])
	}
	lb.b = nb
}

func (lb *lineBuffer) ensure(required int) {
	if lb.b == nil || required > lb.capacity() {
		lb.grow(required - lb.capacity())
	}
}

// Len returns the number of content bytes.
func (lb *lineBuffer) Len() int { return lb.n }

// Bytes returns the content. The slice aliases the buffer and is only valid
// until the next mutation.
func (lb *lineBuffer) Bytes() []byte {
	if lb.b == nil {
		return nil
	}
	return lb.b[:lb.n]
}

func (lb *lineBuffer) String() string { return string(lb.Bytes()) }

// insert shifts the bytes at and after at to the right and copies text in.
func (lb *lineBuffer) insert(at int, text []byte) {
	if len(text) == 0 {
		return
	}
	lb.ensure(lb.n + len(text))
	copy(lb.b[at+len(text):], lb.b[at:lb.n+1])
	copy(lb.b[at:], text)
	lb.n += len(text)
}

// remove deletes [start, end), moving the tail and the terminator left.
func (lb *lineBuffer) remove(start, end int) {
	if end <= start {
		return
	}
	copy(lb.b[start:], lb.b[end:lb.n+1])
	lb.n -= end - start
}

// truncate cuts the content to n bytes.
func (lb *lineBuffer) truncate(n int) {
	if n < 0 || n >= lb.n {
		return
	}
	lb.n = n
	lb.b[n] = 0
}

// set replaces the whole content with text.
func (lb *lineBuffer) set(text []byte) {
	lb.ensure(len(text))
	copy(lb.b, text)
	lb.n = len(text)
	lb.b[lb.n] = 0
}

// swap exchanges the adjacent ranges [a, b) and [b, c).
func (lb *lineBuffer) swap(a, b, c int) {
	if a >= b || b >= c || c > lb.n {
		return
	}
	tmp := make([]byte, 0, c-a)
	tmp = append(tmp, lb.b[b:c]...)
	tmp = append(tmp, lb.b[a:b]...)
	copy(lb.b[a:], tmp)
}
