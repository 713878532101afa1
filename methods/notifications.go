package methods

import (
	"fmt"
	"log/slog"

	"github.com/kazmanavt/jsonrpc2"
)

// Notifications maps notifications onto the payload family P.
type Notifications[P any] struct {
	t table[P]
}

// NewNotifications builds a notification registry. Every name and every
// payload type must appear once; all violations are reported together.
func NewNotifications[P any](entries ...Entry[P]) (*Notifications[P], error) {
	t, err := newTable(entries)
	if err != nil {
		return nil, err
	}
	return &Notifications[P]{t: t}, nil
}

// MustNotifications is like NewNotifications but panics on error.
func MustNotifications[P any](entries ...Entry[P]) *Notifications[P] {
	n, err := NewNotifications(entries...)
	if err != nil {
		panic(err)
	}
	return n
}

// WithLogger returns a copy of n that logs rejected reads at debug level.
func (n *Notifications[P]) WithLogger(_log *slog.Logger) *Notifications[P] {
	return &Notifications[P]{t: n.t.withLogger(_log, "notifications")}
}

// Read decodes the params of note. It reports false when the method is not
// registered.
func (n *Notifications[P]) Read(note jsonrpc2.Notification) (P, bool, error) {
	e, ok := n.t.byMethod(note.Method())
	if !ok {
		var zero P
		return zero, false, nil
	}
	p, err := n.t.read(e, note.Params().Raw(), "/params")
	return p, true, err
}

// Write encodes p as a notification. The codec must produce params.
func (n *Notifications[P]) Write(p P) (jsonrpc2.Notification, error) {
	method, raw, err := n.t.write(p)
	if err != nil {
		return jsonrpc2.Notification{}, err
	}
	if raw == nil {
		return jsonrpc2.Notification{}, fmt.Errorf("methods: %q: notification params are required", method)
	}
	params, err := jsonrpc2.ParseParams(raw)
	if err != nil {
		return jsonrpc2.Notification{}, fmt.Errorf("methods: %q: params: %w", method, err)
	}
	return jsonrpc2.NewNotification(method, params), nil
}

// Method returns the method name p is sent under.
func (n *Notifications[P]) Method(p P) (string, bool) { return n.t.method(p) }

// Methods returns the registered names in registration order.
func (n *Notifications[P]) Methods() []string { return n.t.methods() }
