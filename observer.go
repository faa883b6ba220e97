/*
Copyright 2024 Tim St. Pierre
Transmission hook for diagnostics
*/
package lcd1602

import "fmt"

// Kind says what an Event describes.
type Kind int

const (
	// KindNibble is a lone 4-bit transfer, only used during initialization.
	KindNibble Kind = iota
	// KindCommand is a full byte sent with RS low.
	KindCommand
	// KindData is a full byte sent with RS high.
	KindData
	// KindRaw is a bare expander write with no enable pulse.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindNibble:
		return "nibble"
	case KindCommand:
		return "command"
	case KindData:
		return "data"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event describes one completed transmission.
type Event struct {
	Kind  Kind
	Addr  uint16
	Value byte
	// Bytes holds every expander byte written, in bus order.
	Bytes     []byte
	Backlight bool
}

// Observer is called after each transmission completes. It runs on the
// caller's goroutine and must not call back into the Dev.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}
