package page

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/backdrop/host"
)

// Ack is an acknowledgement banner shown under the contact form.
type Ack struct {
	ID      uint64
	Message string
	Shown   time.Time
}

// Contact is the mock contact form. Submissions are acknowledged and
// discarded; nothing is transmitted.
type Contact struct {
	timers  *host.Timers
	fields  []string
	values  map[string]string
	message string
	display time.Duration

	acks     []Ack
	nextAck  uint64
	submits  int
	onSubmit func()
}

// NewContact creates an empty form with the given field names.
func NewContact(timers *host.Timers, fields []string, message string, display time.Duration) *Contact {
	c := &Contact{
		timers:  timers,
		fields:  fields,
		values:  make(map[string]string, len(fields)),
		message: message,
		display: display,
	}
	c.reset()
	return c
}

// OnSubmit sets a hook run after every accepted submission.
func (c *Contact) OnSubmit(fn func()) {
	c.onSubmit = fn
}

// Fields returns the field names in form order.
func (c *Contact) Fields() []string {
	return c.fields
}

// Field returns the current value of a field.
func (c *Contact) Field(name string) string {
	return c.values[name]
}

// SetField sets a field value. Unknown names are ignored.
func (c *Contact) SetField(name, value string) {
	if _, ok := c.values[name]; ok {
		c.values[name] = value
	}
}

// Submit intercepts a submission: it appends an acknowledgement, clears every
// field and schedules the acknowledgement's removal. values, if non-nil, are
// applied to the form first. Always returns true: the default action is
// suppressed.
func (c *Contact) Submit(values map[string]string) bool {
	for k, v := range values {
		c.SetField(k, v)
	}
	filled := 0
	for _, f := range c.fields {
		if c.values[f] != "" {
			filled++
		}
	}

	c.nextAck++
	ack := Ack{ID: c.nextAck, Message: c.message, Shown: c.timers.Now()}
	c.acks = append(c.acks, ack)
	c.submits++
	c.reset()

	c.timers.After(c.display, func() { c.removeAck(ack.ID) })

	slog.Debug("contact form submitted", "fields_filled", filled, "acks", len(c.acks))
	if c.onSubmit != nil {
		c.onSubmit()
	}
	return true
}

func (c *Contact) reset() {
	for _, f := range c.fields {
		c.values[f] = ""
	}
}

func (c *Contact) removeAck(id uint64) {
	for i, a := range c.acks {
		if a.ID == id {
			c.acks = append(c.acks[:i], c.acks[i+1:]...)
			return
		}
	}
}

// Acks returns the acknowledgements currently shown, oldest first.
func (c *Contact) Acks() []Ack {
	return c.acks
}

// Submissions returns how many times the form was submitted.
func (c *Contact) Submissions() int {
	return c.submits
}
