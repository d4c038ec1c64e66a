package coro

// message is one entry in a coroutine's inbox: a typed payload other
// coroutines can push without the receiver's cooperation, read later on
// its own schedule. from records the sender's own coroutine record,
// stamped at Push time. inUse marks a message that has been pushed but
// not yet popped; Pop and PopType clear it.
type message struct {
	kind    string
	payload any
	from    *Coroutine
	inUse   bool
	handled bool
	next    *message
}

// Push appends a message to the end of co's inbox on behalf of from,
// giving every inbox FIFO delivery order regardless of which kind a
// later PopType asks for.
func (co *Coroutine) Push(from *Coroutine, kind string, payload any) {
	m := &message{kind: kind, payload: payload, from: from, inUse: true}
	if co.inboxTail != nil {
		co.inboxTail.next = m
	} else {
		co.inbox = m
	}
	co.inboxTail = m
}

// Peek reports the kind, payload, and sender of the oldest unread
// message without removing it.
func (co *Coroutine) Peek() (kind string, payload any, from *Coroutine, ok bool) {
	if co.inbox == nil {
		return "", nil, nil, false
	}
	return co.inbox.kind, co.inbox.payload, co.inbox.from, true
}

// Pop removes and returns the oldest message in co's inbox.
func (co *Coroutine) Pop() (kind string, payload any, from *Coroutine, ok bool) {
	m := co.inbox
	if m == nil {
		return "", nil, nil, false
	}
	co.inbox = m.next
	if co.inbox == nil {
		co.inboxTail = nil
	}
	m.inUse = false
	m.handled = true
	return m.kind, m.payload, m.from, true
}

// PopType removes and returns the oldest message of the given kind,
// skipping over any messages of other kinds ahead of it in the queue.
func (co *Coroutine) PopType(kind string) (payload any, from *Coroutine, ok bool) {
	var prev *message
	for m := co.inbox; m != nil; m = m.next {
		if m.kind == kind {
			if prev != nil {
				prev.next = m.next
			} else {
				co.inbox = m.next
			}
			if m == co.inboxTail {
				co.inboxTail = prev
			}
			m.inUse = false
			m.handled = true
			return m.payload, m.from, true
		}
		prev = m
	}
	return nil, nil, false
}

// HasMessages reports whether co's inbox holds anything unread.
func (co *Coroutine) HasMessages() bool {
	return co.inbox != nil
}
