package pos

import "sync"

type cartSession struct {
	cart       Cart
	voucher    *Promotion
	committing bool
}

// CartStore holds one cart per cashier session. Carts from different
// sessions share nothing; the store's lock only serialises access to the
// session map and enforces the one-commit-in-flight rule per cart. Cart
// edits arriving while that cart's checkout is running are rejected with
// ErrCommitInFlight instead of interleaving with the commit.
type CartStore struct {
	mu       sync.Mutex
	sessions map[string]*cartSession
}

// NewCartStore constructs an empty store.
func NewCartStore() *CartStore {
	return &CartStore{sessions: make(map[string]*cartSession)}
}

func (s *CartStore) session(id string) *cartSession {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &cartSession{}
		s.sessions[id] = sess
	}
	return sess
}

// AddItem adds one unit of the product to the session's cart.
func (s *CartStore) AddItem(sessionID string, p ProductSnapshot) error {
	return s.mutate(sessionID, func(sess *cartSession) {
		sess.cart.Add(p)
	})
}

// ChangeQuantity applies a bounded quantity delta.
func (s *CartStore) ChangeQuantity(sessionID, productID string, delta int64) error {
	return s.mutate(sessionID, func(sess *cartSession) {
		sess.cart.ChangeQuantity(productID, delta)
	})
}

// RemoveItem removes a line unconditionally.
func (s *CartStore) RemoveItem(sessionID, productID string) error {
	return s.mutate(sessionID, func(sess *cartSession) {
		sess.cart.Remove(productID)
	})
}

// SetVoucher selects the promotion for the session, replacing any previous one.
func (s *CartStore) SetVoucher(sessionID string, promo Promotion) error {
	return s.mutate(sessionID, func(sess *cartSession) {
		sess.voucher = &promo
	})
}

// ClearVoucher deselects the promotion.
func (s *CartStore) ClearVoucher(sessionID string) error {
	return s.mutate(sessionID, func(sess *cartSession) {
		sess.voucher = nil
	})
}

// View returns an independent copy of the session's cart and voucher.
func (s *CartStore) View(sessionID string) (Cart, *Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	return sess.cart.clone(), copyPromo(sess.voucher)
}

// BeginCommit freezes the cart for checkout. It fails on an empty cart or
// when another commit for the same session is already running.
func (s *CartStore) BeginCommit(sessionID string) (Cart, *Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	if sess.committing {
		return Cart{}, nil, ErrCommitInFlight
	}
	if sess.cart.IsEmpty() {
		return Cart{}, nil, ErrEmptyCart
	}
	sess.committing = true
	return sess.cart.clone(), copyPromo(sess.voucher), nil
}

// EndCommit releases the commit latch. On success the cart and voucher are
// cleared; on failure they stay intact so the cashier can retry.
func (s *CartStore) EndCommit(sessionID string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	sess.committing = false
	if success {
		sess.cart.Clear()
		sess.voucher = nil
	}
}

// Drop discards the session's cart entirely, e.g. on logout.
func (s *CartStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *CartStore) mutate(sessionID string, fn func(*cartSession)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	if sess.committing {
		return ErrCommitInFlight
	}
	fn(sess)
	return nil
}

func copyPromo(p *Promotion) *Promotion {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
