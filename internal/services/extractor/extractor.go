// Package extractor wraps the external extraction tool (a yt-dlp
// compatible CLI) behind a narrow interface. One invocation spawns one
// subprocess; there are no retries at this layer.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/unisave/unisave/internal/utils"
)

// Options carries the per-call knobs platform handlers vary: the user
// agent, an optional cookie file, and extractor-specific hints.
type Options struct {
	UserAgent     string
	Cookies       string
	ExtractorArgs string
	PlaylistStart int
	PlaylistEnd   int
}

// Runner is the subprocess contract the rest of the service depends on.
// Tests substitute a stub; production uses the CLI implementation.
type Runner interface {
	// Dump fetches one JSON metadata document for a single content URL.
	Dump(ctx context.Context, url string, opts Options) (*RawInfo, error)
	// DumpEntries fetches a flat playlist listing, one JSON document per line.
	DumpEntries(ctx context.Context, url string, opts Options) ([]RawEntry, error)
	// ResolveURL resolves a format selector to a direct media URL.
	ResolveURL(ctx context.Context, url, selector string, opts Options) (string, error)
	// Download writes a (possibly merged) media file to outPath.
	Download(ctx context.Context, url, selector, outPath string, opts Options) error
	// Version probes tool availability and reports its version string.
	Version(ctx context.Context) (string, error)
}

type Config struct {
	Path string
}

// CLI shells out to the extraction tool. Invocations carry no enforced
// timeout: a hung tool holds its request open (known gap), and an aborted
// client connection does not cancel an in-flight subprocess.
type CLI struct {
	path string
}

func NewCLI(cfg Config) *CLI {
	path := cfg.Path
	if path == "" {
		path = "yt-dlp"
	}
	return &CLI{path: path}
}

func (c *CLI) Dump(ctx context.Context, url string, opts Options) (*RawInfo, error) {
	args := []string{
		"--dump-json",
		"--no-playlist",
		"--no-check-certificates",
		"--no-warnings",
		"--ignore-errors",
	}
	args = appendOptions(args, opts)
	args = append(args, url)

	stdout, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	var info RawInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		utils.LogError(ctx, "Malformed extractor output", err, utils.Fields{"url": url})
		return nil, utils.NewNormalizationError()
	}
	return &info, nil
}

func (c *CLI) DumpEntries(ctx context.Context, url string, opts Options) ([]RawEntry, error) {
	args := []string{
		"--flat-playlist",
		"--dump-json",
	}
	if opts.PlaylistStart > 0 {
		args = append(args, "--playlist-start", strconv.Itoa(opts.PlaylistStart))
	}
	if opts.PlaylistEnd > 0 {
		args = append(args, "--playlist-end", strconv.Itoa(opts.PlaylistEnd))
	}
	args = appendOptions(args, opts)
	args = append(args, url)

	// A playlist listing may exit non-zero after emitting usable lines
	// (deleted entries); partial stdout still parses.
	stdout, runErr := c.run(ctx, args)
	if runErr != nil && len(bytes.TrimSpace(stdout)) == 0 {
		return nil, runErr
	}

	var entries []RawEntry
	for _, line := range strings.Split(strings.TrimSpace(string(stdout)), "\n") {
		if line == "" {
			continue
		}
		var entry RawEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			utils.LogError(ctx, "Malformed playlist entry", err, utils.Fields{"url": url})
			return nil, utils.NewNormalizationError()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *CLI) ResolveURL(ctx context.Context, url, selector string, opts Options) (string, error) {
	args := []string{
		"--get-url",
		"-f", selector,
		"--no-playlist",
	}
	args = appendOptions(args, opts)
	args = append(args, url)

	stdout, err := c.run(ctx, args)
	if err != nil {
		return "", err
	}

	out := strings.TrimSpace(string(stdout))
	if out == "" {
		return "", utils.NewExtractionError("tool returned no URL")
	}
	// Merge selectors print one URL per stream; the first line is the
	// video (or only) stream.
	return strings.SplitN(out, "\n", 2)[0], nil
}

func (c *CLI) Download(ctx context.Context, url, selector, outPath string, opts Options) error {
	args := []string{
		"-f", selector,
		"--merge-output-format", "mp4",
		"-o", outPath,
		"--no-playlist",
		"--no-warnings",
	}
	args = appendOptions(args, opts)
	args = append(args, url)

	_, err := c.run(ctx, args)
	return err
}

func (c *CLI) Version(ctx context.Context) (string, error) {
	stdout, err := c.run(ctx, []string{"--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}

// run spawns one subprocess and classifies its failure modes: a missing
// binary is fatal and distinct, a non-zero exit is classified from stderr.
func (c *CLI) run(ctx context.Context, args []string) ([]byte, error) {
	utils.LogDebug(ctx, "Running extraction tool", utils.Fields{
		"tool": c.path,
		"args": strings.Join(args, " "),
	})

	cmd := exec.Command(c.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			utils.LogError(ctx, "Extraction tool spawn failed", err)
			return stdout.Bytes(), utils.NewToolUnavailableError()
		}
		utils.LogError(ctx, "Extraction tool exited non-zero", err, utils.Fields{
			"stderr": truncate(stderr.String(), maxStderrDetail),
		})
		return stdout.Bytes(), ClassifyStderr(stderr.String())
	}

	return stdout.Bytes(), nil
}

func appendOptions(args []string, opts Options) []string {
	if opts.UserAgent != "" {
		args = append(args, "--user-agent", opts.UserAgent)
	}
	if opts.ExtractorArgs != "" {
		args = append(args, "--extractor-args", opts.ExtractorArgs)
	}
	if opts.Cookies != "" {
		args = append(args, "--cookies", opts.Cookies)
	}
	return args
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
