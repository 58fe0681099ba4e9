package notify

import (
	"context"
	"fmt"
	"medreminder/internal/notify/interfaces"
	"medreminder/internal/structures"
	"os/exec"
	"time"
)

const maxPlayback = 10 * time.Second

func NewPlayer(conf *structures.Config) interfaces.PlayerInterface {
	if conf.Notifier.Sound.Command == "" {
		return noopPlayer{}
	}
	return &CommandPlayer{command: conf.Notifier.Sound.Command, file: conf.Notifier.Sound.File}
}

// CommandPlayer plays the reminder sound by running an external command
// with the sound file as its only argument, e.g. "paplay".
type CommandPlayer struct {
	command string
	file    string
}

func (c *CommandPlayer) Play(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, maxPlayback)
	defer cancel()

	var args []string
	if c.file != "" {
		args = append(args, c.file)
	}
	out, err := exec.CommandContext(ctx, c.command, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", c.command, c.file, err, out)
	}
	return nil
}

type noopPlayer struct{}

func (noopPlayer) Play(_ context.Context) error { return nil }
