package periphpin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

type fakePin struct {
	out    bool
	level  gpio.Level
	pull   gpio.Pull
	calls  []string
	outErr error
}

func (f *fakePin) Out(l gpio.Level) error {
	f.out = true
	f.level = l
	f.calls = append(f.calls, "out:"+l.String())
	return f.outErr
}

func (f *fakePin) In(pull gpio.Pull, edge gpio.Edge) error {
	f.out = false
	f.pull = pull
	f.level = gpio.High
	f.calls = append(f.calls, "in")
	return nil
}

func (f *fakePin) Read() gpio.Level {
	return f.level
}

func TestPin_Primitives(t *testing.T) {
	f := &fakePin{}
	p := newPin(f)

	p.DriveHigh()
	require.True(t, f.out)
	require.True(t, p.Sample())
	p.DriveLow()
	require.False(t, p.Sample())
	p.Release()
	require.False(t, f.out)
	require.Equal(t, gpio.PullUp, f.pull)
	require.True(t, p.Sample())
	require.Equal(t, []string{"out:High", "out:Low", "in"}, f.calls)
	require.NoError(t, p.Err())
}

func TestPin_StickyError(t *testing.T) {
	first := errors.New("first")
	f := &fakePin{outErr: first}
	p := newPin(f)

	p.DriveLow()
	f.outErr = errors.New("second")
	p.DriveHigh()
	require.ErrorIs(t, p.Err(), first)
}
