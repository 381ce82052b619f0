package module

import "sync"

// process wide port registry, filled during bootstrap so composition code and
// tests can look up a module's ports by name after mounting
var (
	regMu sync.RWMutex
	reg   = map[string]any{}
)

// Register publishes the port bundle for a module name
func Register(name string, ports any) {
	regMu.Lock()
	reg[name] = ports
	regMu.Unlock()
}

// PortsAs looks up name and asserts the bundle to T
func PortsAs[T any](name string) (T, bool) {
	regMu.RLock()
	v, ok := reg[name]
	regMu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset clears the registry between tests
func Reset() {
	regMu.Lock()
	reg = map[string]any{}
	regMu.Unlock()
}
