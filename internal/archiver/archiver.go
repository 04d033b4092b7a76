// Package archiver captures web pages through the dockerized SingleFile
// tool and stores them in the archive under optimized names.
package archiver

import (
	"context"
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/arcreach/sfarc/internal/atomicfile"
	"github.com/arcreach/sfarc/internal/namegen"
	"github.com/arcreach/sfarc/internal/watcher"
)

// containerCookies is where the cookies file is mounted inside the container.
const containerCookies = "/tmp/cookies.txt"

// Options configures an Archiver.
type Options struct {
	// Image is the docker image running SingleFile.
	Image string

	// OutDir is the archive directory captures are written into.
	OutDir string

	// CookiesPath optionally mounts a cookies file so login-walled pages
	// capture fully.
	CookiesPath string

	// Timeout bounds a single capture attempt.
	Timeout time.Duration

	// RetryAttempts and RetryDelay control the retry loop. Zero attempts
	// means one try, no retries.
	RetryAttempts int
	RetryDelay    time.Duration

	// Generator produces the output filename.
	Generator *namegen.Generator

	// Run overrides the exec step; nil means docker. Tests inject fakes here.
	Run func(ctx context.Context, url string) ([]byte, error)
}

// Archiver runs captures. The exec step is replaceable for tests.
type Archiver struct {
	opts Options
	run  func(ctx context.Context, url string) ([]byte, error)
}

// Result describes one stored capture.
type Result struct {
	URL      string
	Title    string
	Path     string
	Attempts int
}

// New validates opts and returns a ready Archiver.
func New(opts Options) (*Archiver, error) {
	if opts.Image == "" {
		return nil, fmt.Errorf("docker image is required")
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}

	a := &Archiver{opts: opts}
	a.run = opts.Run
	if a.run == nil {
		a.run = a.dockerRun
	}
	return a, nil
}

// Archive captures url and writes it into the archive directory, retrying
// transient failures. The stored filename is generated from the page title
// and the url itself.
func (a *Archiver) Archive(ctx context.Context, url string) (Result, error) {
	attempts := a.opts.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var page []byte
	var err error
	made := 0
	for made < attempts {
		attemptCtx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
		page, err = a.run(attemptCtx, url)
		cancel()
		made++

		if err == nil && len(page) > 0 {
			break
		}
		if err == nil {
			err = fmt.Errorf("empty capture")
		}
		if made >= attempts || ctx.Err() != nil {
			return Result{URL: url, Attempts: made}, fmt.Errorf("capture %s after %d attempts: %w", url, made, err)
		}

		select {
		case <-ctx.Done():
			return Result{URL: url, Attempts: made}, ctx.Err()
		case <-time.After(a.opts.RetryDelay):
		}
	}

	title := ExtractTitle(page)

	names, err := watcher.ArchiveNames(a.opts.OutDir)
	if err != nil {
		if mkErr := os.MkdirAll(a.opts.OutDir, 0o755); mkErr != nil {
			return Result{URL: url, Attempts: made}, mkErr
		}
		names = namegen.NewNameSet()
	}

	res := a.opts.Generator.Generate(title, url, names)
	path := filepath.Join(a.opts.OutDir, res.Stem+a.opts.Generator.Extension())
	if err := atomicfile.WriteFile(path, page, 0o644); err != nil {
		return Result{URL: url, Attempts: made}, fmt.Errorf("store capture: %w", err)
	}

	return Result{URL: url, Title: title, Path: path, Attempts: made}, nil
}

// dockerRun shells out to docker and returns the captured page from stdout.
func (a *Archiver) dockerRun(ctx context.Context, url string) ([]byte, error) {
	args := []string{"run", "--rm"}
	if a.opts.CookiesPath != "" {
		args = append(args,
			"-v", a.opts.CookiesPath+":"+containerCookies+":ro",
		)
	}
	args = append(args, a.opts.Image)
	if a.opts.CookiesPath != "" {
		args = append(args, "--browser-cookies-file="+containerCookies)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, "docker", args...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("docker run: %w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("docker run: %w", err)
	}
	return out, nil
}

// reTitle grabs the first <title> element, attributes and case ignored.
var reTitle = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// ExtractTitle pulls the page title out of captured HTML: first <title>
// content, entities decoded, whitespace collapsed. Empty when the page has
// no usable title; the name generator degrades gracefully on empty titles.
func ExtractTitle(page []byte) string {
	m := reTitle.FindSubmatch(page)
	if m == nil {
		return ""
	}
	title := html.UnescapeString(string(m[1]))
	return strings.Join(strings.Fields(title), " ")
}
