package broadcast

import (
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHubFanOutSkipsPublisher(t *testing.T) {
	hub := NewHub()
	a := hub.Node()
	b := hub.Node()
	c := hub.Node()

	var got [3]atomic.Int32
	a.Subscribe(func() { got[0].Add(1) })
	b.Subscribe(func() { got[1].Add(1) })
	c.Subscribe(func() { got[2].Add(1) })

	a.Publish()

	waitFor(t, "b and c to receive", func() bool {
		return got[1].Load() == 1 && got[2].Load() == 1
	})
	if got[0].Load() != 0 {
		t.Fatalf("publisher received its own signal")
	}
}

func TestClosedNodeStopsReceiving(t *testing.T) {
	hub := NewHub()
	a := hub.Node()
	b := hub.Node()

	var received atomic.Int32
	b.Subscribe(func() { received.Add(1) })

	a.Publish()
	waitFor(t, "first delivery", func() bool { return received.Load() == 1 })

	b.Close()
	a.Publish()

	time.Sleep(50 * time.Millisecond)
	if received.Load() != 1 {
		t.Fatalf("closed node still received signals: %d", received.Load())
	}
}

func TestWebSocketRelay(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	local := hub.Node()
	var localGot atomic.Int32
	local.Subscribe(func() { localGot.Add(1) })

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	remoteA, err := Dial(url)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer remoteA.Close()
	remoteB, err := Dial(url)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer remoteB.Close()

	var aGot, bGot atomic.Int32
	remoteA.Subscribe(func() { aGot.Add(1) })
	remoteB.Subscribe(func() { bGot.Add(1) })

	// Remote publisher reaches the hub's local nodes and the other remote,
	// but never itself.
	remoteA.Publish()
	waitFor(t, "relay to local node", func() bool { return localGot.Load() == 1 })
	waitFor(t, "relay to sibling remote", func() bool { return bGot.Load() == 1 })
	if aGot.Load() != 0 {
		t.Fatalf("remote publisher received its own signal")
	}

	// Local publisher reaches both remotes.
	local.Publish()
	waitFor(t, "hub-side publish to remotes", func() bool {
		return aGot.Load() == 1 && bGot.Load() == 2
	})
	if localGot.Load() != 1 {
		t.Fatalf("local publisher received its own signal")
	}
}
