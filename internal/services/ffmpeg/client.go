package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Loudness holds the loudnorm filter targets.
type Loudness struct {
	Integrated float64 // LUFS
	TruePeak   float64 // dBTP
	Range      float64 // LU
}

// ProgressUpdate captures ffmpeg progress events.
type ProgressUpdate struct {
	OutTime time.Duration
	Speed   string
	Done    bool
}

// Client defines the downmix behaviour.
type Client interface {
	Downmix(ctx context.Context, inputPath, outputPath string, progress func(ProgressUpdate)) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLoudness overrides the default loudnorm targets.
func WithLoudness(l Loudness) Option {
	return func(c *CLI) {
		c.loudness = l
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary   string
	loudness Loudness
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:   "ffmpeg",
		loudness: Loudness{Integrated: -14.0, TruePeak: -1.5, Range: 9.0},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Downmix runs ffmpeg against inputPath and writes the result to outputPath.
// The caller owns the output path lifecycle: this method neither picks temp
// names nor renames on success.
func (c *CLI) Downmix(ctx context.Context, inputPath, outputPath string, progress func(ProgressUpdate)) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	cmd := commandContext(ctx, c.binary, downmixArgs(inputPath, outputPath, c.loudness)...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	update := ProgressUpdate{}
	for scanner.Scan() {
		if parseProgressLine(scanner.Text(), &update) && progress != nil {
			progress(update)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("read ffmpeg output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, lastStderrLine(stderr.String()))
	}
	return nil
}

// downmixArgs builds the full argument list: all streams mapped, video and
// subtitles stream-copied, audio downmixed to stereo FLAC through loudnorm.
func downmixArgs(inputPath, outputPath string, l Loudness) []string {
	filter := fmt.Sprintf("loudnorm=I=%s:TP=%s:LRA=%s",
		formatTarget(l.Integrated), formatTarget(l.TruePeak), formatTarget(l.Range))
	return []string{
		"-y", "-nostdin",
		"-i", inputPath,
		"-map", "0",
		"-c:v", "copy",
		"-c:s", "copy",
		"-c:a", "flac",
		"-ac", "2",
		"-af", filter,
		"-progress", "pipe:1",
		"-loglevel", "error",
		outputPath,
	}
}

func formatTarget(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseProgressLine consumes one key=value line of ffmpeg -progress output.
// It reports true when the accumulated update is ready to publish, which is
// on every "progress=" terminator line.
func parseProgressLine(line string, update *ProgressUpdate) bool {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return false
	}
	switch key {
	case "out_time_us":
		if us, err := strconv.ParseInt(value, 10, 64); err == nil {
			update.OutTime = time.Duration(us) * time.Microsecond
		}
	case "speed":
		update.Speed = strings.TrimSpace(value)
	case "progress":
		update.Done = value == "end"
		return true
	}
	return false
}

func lastStderrLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no error output"
}

var _ Client = (*CLI)(nil)
