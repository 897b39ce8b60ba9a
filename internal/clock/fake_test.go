package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestFake_FiresInDeadlineOrder(t *testing.T) {
	c := NewFake(epoch)
	var order []string

	c.AfterFunc(3*time.Second, func() { order = append(order, "third") })
	c.AfterFunc(1*time.Second, func() { order = append(order, "first") })
	c.AfterFunc(2*time.Second, func() { order = append(order, "second") })

	c.Advance(2 * time.Second)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("Expected [first second], got %v", order)
	}

	c.Advance(time.Second)
	if len(order) != 3 || order[2] != "third" {
		t.Fatalf("Expected third to fire, got %v", order)
	}
	if !c.Now().Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Expected clock at +3s, got %v", c.Now().Sub(epoch))
	}
}

func TestFake_StopPreventsCallback(t *testing.T) {
	c := NewFake(epoch)
	fired := false

	timer := c.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Error("Expected first Stop to return true")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to return false")
	}

	c.Advance(5 * time.Second)
	if fired {
		t.Error("Expected stopped timer not to fire")
	}
	if c.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", c.Pending())
	}
}

func TestFake_CallbackArmsFollowUp(t *testing.T) {
	c := NewFake(epoch)
	var firedAt []time.Duration

	c.AfterFunc(time.Second, func() {
		firedAt = append(firedAt, c.Now().Sub(epoch))
		c.AfterFunc(2*time.Second, func() {
			firedAt = append(firedAt, c.Now().Sub(epoch))
		})
	})

	c.Advance(10 * time.Second)

	if len(firedAt) != 2 || firedAt[0] != time.Second || firedAt[1] != 3*time.Second {
		t.Errorf("Expected callbacks at 1s and 3s, got %v", firedAt)
	}
}

func TestFake_StopAfterFireReturnsFalse(t *testing.T) {
	c := NewFake(epoch)
	timer := c.AfterFunc(0, func() {})

	c.Advance(0)
	if timer.Stop() {
		t.Error("Expected Stop after firing to return false")
	}
}
