package page

import (
	"testing"
	"time"

	"github.com/pthm-cable/backdrop/host"
)

const ackMessage = "Thank you for your message! I'll get back to you soon."

func newTestContact() (*Contact, *host.Timers) {
	timers := host.NewTimers(epoch)
	return NewContact(timers, []string{"name", "email", "message"}, ackMessage, 5000*time.Millisecond), timers
}

func TestContact_SubmitAcknowledgesAndClears(t *testing.T) {
	c, timers := newTestContact()
	c.SetField("name", "Ada")
	c.SetField("email", "ada@example.com")

	handled := c.Submit(map[string]string{"message": "Hello"})
	if !handled {
		t.Error("Submit did not suppress the default action")
	}

	acks := c.Acks()
	if len(acks) != 1 || acks[0].Message != ackMessage {
		t.Fatalf("acks = %+v", acks)
	}
	for _, f := range c.Fields() {
		if v := c.Field(f); v != "" {
			t.Errorf("field %q = %q after submit, want empty", f, v)
		}
	}

	timers.Advance(epoch.Add(4999 * time.Millisecond))
	if len(c.Acks()) != 1 {
		t.Error("acknowledgement removed before 5000ms")
	}
	timers.Advance(epoch.Add(5000 * time.Millisecond))
	if len(c.Acks()) != 0 {
		t.Error("acknowledgement still shown at 5000ms")
	}
}

func TestContact_OverlappingAcks(t *testing.T) {
	c, timers := newTestContact()

	c.Submit(nil)
	timers.Advance(epoch.Add(2 * time.Second))
	c.Submit(nil)

	if len(c.Acks()) != 2 {
		t.Fatalf("acks = %d, want 2", len(c.Acks()))
	}

	timers.Advance(epoch.Add(5 * time.Second))
	acks := c.Acks()
	if len(acks) != 1 || acks[0].ID != 2 {
		t.Errorf("after first expiry acks = %+v, want only the second", acks)
	}

	timers.Advance(epoch.Add(7 * time.Second))
	if len(c.Acks()) != 0 {
		t.Errorf("acks remaining: %+v", c.Acks())
	}
	if c.Submissions() != 2 {
		t.Errorf("Submissions = %d, want 2", c.Submissions())
	}
}

func TestContact_UnknownFieldIgnored(t *testing.T) {
	c, _ := newTestContact()
	c.SetField("phone", "123")
	if c.Field("phone") != "" {
		t.Error("unknown field stored")
	}
}

func TestContact_OnSubmitHook(t *testing.T) {
	c, _ := newTestContact()
	calls := 0
	c.OnSubmit(func() { calls++ })
	c.Submit(nil)
	c.Submit(nil)
	if calls != 2 {
		t.Errorf("hook calls = %d, want 2", calls)
	}
}
