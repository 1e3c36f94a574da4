package live

// Mailbox keeps only the most recent value put into it. Put never blocks:
// an unread value is replaced by the newer one.
type Mailbox[T any] struct {
	ch chan T
}

// NewMailbox returns an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Put stores v, discarding any value not yet taken.
func (m *Mailbox[T]) Put(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// C returns the channel to receive from.
func (m *Mailbox[T]) C() <-chan T {
	return m.ch
}
