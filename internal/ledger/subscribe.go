package ledger

// Subscribe registers a callback invoked after every atomic state change
// (local mutation, sync completion, sync failure). The returned function
// removes the subscription. Callbacks run outside the ledger's lock, so
// they may call back into read operations freely.
func (l *Ledger) Subscribe(fn func()) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

func (l *Ledger) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
