package module

import (
	"context"
	"testing"

	phttp "helpdesk/internal/platform/net/http"
)

type pinger interface{ Ping(context.Context) error }

type fakePinger struct{}

func (fakePinger) Ping(context.Context) error { return nil }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) MountRoutes(phttp.Router) {}
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) Name() string             { return m.name }

func TestPortsOfDirect(t *testing.T) {
	m := fakeModule{name: "a", ports: fakePinger{}}
	p, ok := PortsOf[pinger](m)
	if !ok || p == nil {
		t.Fatalf("expected direct port, got ok=%v", ok)
	}
}

func TestPortsOfStructField(t *testing.T) {
	m := fakeModule{name: "a", ports: struct{ DB fakePinger }{}}
	if _, ok := PortsOf[pinger](m); !ok {
		t.Fatalf("expected port via exported field")
	}
}

func TestPortsOfMissing(t *testing.T) {
	m := fakeModule{name: "a", ports: struct{ N int }{N: 1}}
	if _, ok := PortsOf[pinger](m); ok {
		t.Fatalf("expected no port")
	}
	if _, ok := PortsOf[pinger](fakeModule{name: "b"}); ok {
		t.Fatalf("nil ports should not match")
	}
}

func TestMustPortsOfPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing port")
		}
	}()
	MustPortsOf[pinger](fakeModule{name: "empty"})
}

func TestRegistryRoundTrip(t *testing.T) {
	Reset()
	defer Reset()

	Register("queue", fakePinger{})
	if _, ok := PortsAs[pinger]("queue"); !ok {
		t.Fatalf("expected registered port")
	}
	if _, ok := PortsAs[pinger]("absent"); ok {
		t.Fatalf("unknown name should miss")
	}

	Reset()
	if _, ok := PortsAs[pinger]("queue"); ok {
		t.Fatalf("reset should clear the registry")
	}
}
