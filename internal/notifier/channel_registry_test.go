package notifier

import "testing"

func TestChannelRegistryRegisterAndDeliver(t *testing.T) {
	r := NewChannelRegistry()
	key := ChannelKey{EventID: "evt_1", Kind: "ritual_prompt"}
	ch := r.Register(key)

	if !r.Deliver(key, "payload") {
		t.Fatal("Deliver should succeed for a registered key")
	}
	if got := <-ch; got != "payload" {
		t.Fatalf("received %v, want payload", got)
	}
}

func TestChannelRegistryDeliverToUnknownKeyReturnsFalse(t *testing.T) {
	r := NewChannelRegistry()
	if r.Deliver(ChannelKey{EventID: "evt_1", Kind: "missing"}, "x") {
		t.Fatal("Deliver to an unregistered key must return false")
	}
}

func TestChannelRegistryRegisterReplacesStaleWaiter(t *testing.T) {
	r := NewChannelRegistry()
	key := ChannelKey{EventID: "evt_1", Kind: "ritual_prompt"}
	stale := r.Register(key)
	fresh := r.Register(key)

	if !r.Deliver(key, "payload") {
		t.Fatal("Deliver should succeed after re-registering")
	}
	select {
	case <-stale:
		t.Fatal("the stale channel must not receive the delivery")
	default:
	}
	if got := <-fresh; got != "payload" {
		t.Fatalf("fresh channel received %v, want payload", got)
	}
}

func TestChannelRegistryRemove(t *testing.T) {
	r := NewChannelRegistry()
	key := ChannelKey{EventID: "evt_1", Kind: "ritual_prompt"}
	r.Register(key)
	r.Remove(key)
	if r.Deliver(key, "x") {
		t.Fatal("Deliver after Remove must return false")
	}
}
