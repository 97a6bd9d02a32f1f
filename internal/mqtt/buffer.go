package mqtt

// pendingMsg is a serialized message waiting for the connection to return.
type pendingMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog is a fixed-capacity FIFO of messages published while offline.
// When full, the oldest message is overwritten.
// Not safe for concurrent use; caller must synchronize.
type backlog struct {
	msgs    []pendingMsg
	next    int // next write position
	n       int
	dropped int // messages overwritten since last drain
}

func newBacklog(capacity int) *backlog {
	return &backlog{msgs: make([]pendingMsg, capacity)}
}

func (b *backlog) push(msg pendingMsg) {
	if b.n == len(b.msgs) {
		b.dropped++
	} else {
		b.n++
	}
	b.msgs[b.next] = msg
	b.next = (b.next + 1) % len(b.msgs)
}

// drain returns buffered messages oldest first, plus the number dropped
// since the previous drain, and empties the backlog.
func (b *backlog) drain() ([]pendingMsg, int) {
	dropped := b.dropped
	b.dropped = 0
	if b.n == 0 {
		return nil, dropped
	}

	out := make([]pendingMsg, 0, b.n)
	start := (b.next - b.n + len(b.msgs)) % len(b.msgs)
	for i := 0; i < b.n; i++ {
		out = append(out, b.msgs[(start+i)%len(b.msgs)])
	}

	b.n = 0
	b.next = 0
	return out, dropped
}

func (b *backlog) len() int {
	return b.n
}
