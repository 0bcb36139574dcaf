//go:build arstub

package arbridge

import "github.com/sam20code/SolarSystem-ARBook/internal/bridge"

// New creates the empty stub bridge: the build target carries no AR
// toolkit, every command is a no-op or benign sentinel and no event
// ever fires.
func New() Bridge {
	return bridge.NewStub()
}
