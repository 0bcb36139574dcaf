package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCamera struct{ name string }

type fakeSession struct{}

func TestFindComponentByType(t *testing.T) {
	s := New()

	rig := NewObject("rig")
	rig.Attach(&fakeCamera{name: "cam-a"})
	s.Add(rig)

	other := NewObject("other")
	other.Attach(&fakeCamera{name: "cam-b"})
	s.Add(other)

	cam, ok := Find[*fakeCamera](s)
	require.True(t, ok)
	assert.Equal(t, "cam-a", cam.name, "Find must scan objects in insertion order")

	_, ok = Find[*fakeSession](s)
	assert.False(t, ok)
}

func TestFindInterfaceComponent(t *testing.T) {
	type named interface{ Name() string }

	s := New()
	o := NewObject("rig")
	o.Attach(&fakeSession{})
	o.Attach(NewObject("inner")) // *Object satisfies named
	s.Add(o)

	n, ok := Find[named](s)
	require.True(t, ok)
	assert.Equal(t, "inner", n.Name())
}

func TestFindObjectByName(t *testing.T) {
	s := New()
	s.Add(NewObject("a"))
	s.Add(NewObject("b"))

	o, ok := s.FindObject("b")
	require.True(t, ok)
	assert.Equal(t, "b", o.Name())

	_, ok = s.FindObject("c")
	assert.False(t, ok)
}

func TestAttachAfterAdd(t *testing.T) {
	s := New()
	o := NewObject("rig")
	s.Add(o)

	_, ok := Find[*fakeCamera](s)
	require.False(t, ok)

	o.Attach(&fakeCamera{})
	_, ok = Find[*fakeCamera](s)
	assert.True(t, ok, "components attached after Add must be discoverable")

	assert.Len(t, o.Components(), 1)
}
