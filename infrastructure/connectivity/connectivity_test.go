package connectivity

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).Online())
	assert.False(t, Static(false).Online())
}

func TestProbe_ReachableListener(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer listener.Close()

	probe := NewProbe(listener.Addr().String(), time.Second)

	assert.True(t, probe.Online())
}

func TestProbe_UnreachableAddress(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	probe := NewProbe(addr, 200*time.Millisecond)

	assert.False(t, probe.Online())
}
