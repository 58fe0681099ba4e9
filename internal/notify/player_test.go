package notify

import (
	"context"
	"os/exec"
	"testing"

	"medreminder/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer_NoCommandIsNoop(t *testing.T) {
	p := NewPlayer(&structures.Config{})
	_, ok := p.(noopPlayer)
	assert.True(t, ok)
	assert.NoError(t, p.Play(context.Background()))
}

func TestCommandPlayer_Success(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	conf := &structures.Config{}
	conf.Notifier.Sound.Command = "true"
	p := NewPlayer(conf)
	require.IsType(t, &CommandPlayer{}, p)
	assert.NoError(t, p.Play(context.Background()))
}

func TestCommandPlayer_Failure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	conf := &structures.Config{}
	conf.Notifier.Sound.Command = "false"
	conf.Notifier.Sound.File = "chime.wav"
	err := NewPlayer(conf).Play(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false chime.wav")
}

func TestCommandPlayer_MissingBinary(t *testing.T) {
	conf := &structures.Config{}
	conf.Notifier.Sound.Command = "medreminder-no-such-player"
	assert.Error(t, NewPlayer(conf).Play(context.Background()))
}
