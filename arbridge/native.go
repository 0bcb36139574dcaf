//go:build !arstub

package arbridge

import "github.com/sam20code/SolarSystem-ARBook/internal/bridge"

// New creates a provider-backed bridge. This is the default build
// variant; the "arstub" tag swaps it for the empty stub.
func New() Bridge {
	return bridge.New()
}
