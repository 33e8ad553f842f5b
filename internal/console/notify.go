package console

// NotificationKind tags a Notification.
type NotificationKind int

const (
	// ProcessOutput is produced for every stdout or stderr chunk.
	ProcessOutput NotificationKind = iota
	// ProcessInput is produced for every line written to stdin.
	ProcessInput
)

// String returns the kind name.
func (k NotificationKind) String() string {
	switch k {
	case ProcessOutput:
		return "output"
	case ProcessInput:
		return "input"
	default:
		return "unknown"
	}
}

// Notification tells subscribers about process traffic.
type Notification struct {
	Kind    NotificationKind
	Content string
}

// Subscribe returns a channel of notifications and a function that ends
// the subscription. A subscriber that falls more than size notifications
// behind misses the excess instead of stalling the console.
func (c *Console) Subscribe(size int) (<-chan Notification, func()) {
	if size <= 0 {
		size = 64
	}
	ch := make(chan Notification, size)

	c.subsMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subsMu.Unlock()

	cancel := func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (c *Console) publish(n Notification) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- n:
		default:
			c.log.Debug("notification dropped", "kind", n.Kind)
		}
	}
}
