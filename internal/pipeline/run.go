// Package pipeline builds portfolio sites from profile and resume files, one
// at a time or as a bounded concurrent batch.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/sitemaker/internal/export"
	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/sirupsen/logrus"
)

// Build steps reported through ProgressCallback.
const (
	StepLoad    = "load"
	StepExtract = "extract"
	StepRender  = "render"
	StepWrite   = "write"
	StepDone    = "done"
	StepFailed  = "failed"
)

// ManifestFile is written to the output directory after a batch.
const ManifestFile = "manifest.json"

// ErrExtractorRequired is returned for resume inputs when no extractor is
// configured.
var ErrExtractorRequired = errors.New("resume input needs an extractor: set GEMINI_API_KEY")

// ProgressEvent represents a progress update during a build
type ProgressEvent struct {
	Input   string `json:"input"`
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when build progress occurs. Batch builds call
// it from several goroutines.
type ProgressCallback func(event ProgressEvent)

// Extractor turns a resume file into a normalized profile.
type Extractor interface {
	Ingest(ctx context.Context, src ingestion.Source, onStatus ingestion.StatusFunc) (*ingestion.Result, error)
}

// Exporter renders a profile in one output format.
type Exporter interface {
	Export(ctx context.Context, p *types.ProfileData, s *types.SiteSettings, format string) (*export.File, error)
}

// Options holds configuration for running builds
type Options struct {
	OutputDir string
	// Formats defaults to html only.
	Formats  []string
	Settings *types.SiteSettings
	// Concurrency bounds RunBatch. Zero or negative means one at a time.
	Concurrency int
	Normalize   profile.Options
	// Extractor is needed only for inputs that are not profile JSON or YAML.
	Extractor  Extractor
	Exporter   Exporter
	Log        logrus.FieldLogger
	OnProgress ProgressCallback
}

// Result is the outcome of building one input.
type Result struct {
	Input   string             `json:"input"`
	Profile *types.ProfileData `json:"-"`
	Name    string             `json:"name,omitempty"`
	Files   []string           `json:"files,omitempty"`
	Error   string             `json:"error,omitempty"`
	Err     error              `json:"-"`
}

func (o *Options) defaults() {
	if o.Log == nil {
		o.Log = observability.Discard()
	}
	if o.Exporter == nil {
		o.Exporter = export.New(o.Log)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{types.FormatHTML}
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
}

func emitProgress(opts *Options, input, step, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Input: input, Step: step, Message: message})
	}
}

// Run builds one input into opts.OutputDir.
func Run(ctx context.Context, input string, opts Options) (*Result, error) {
	opts.defaults()
	return build(ctx, input, opts.OutputDir, &opts)
}

// RunBatch builds every input, at most opts.Concurrency at a time. Each
// input gets its own subdirectory named after the file. A failed input does
// not stop the others; results keep input order and the returned error
// summarizes the failures.
func RunBatch(ctx context.Context, inputs []string, opts Options) ([]Result, error) {
	opts.defaults()
	results := make([]Result, len(inputs))
	dirs := outputDirs(inputs, opts.OutputDir)

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	failed := 0
	for i, input := range inputs {
		g.Go(func() error {
			res, err := build(gCtx, input, dirs[i], &opts)
			if err != nil {
				res = &Result{Input: input, Err: err, Error: err.Error()}
				mu.Lock()
				failed++
				mu.Unlock()
			}
			results[i] = *res
			// Cancellation stops the batch; other failures only mark the result.
			if ctxErr := gCtx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch cancelled: %w", err)
	}

	if err := writeManifest(opts.OutputDir, results); err != nil {
		return results, err
	}

	opts.Log.WithFields(logrus.Fields{"inputs": len(inputs), "failed": failed}).Info("batch finished")
	if failed > 0 {
		return results, fmt.Errorf("%d of %d builds failed", failed, len(inputs))
	}
	return results, nil
}

func build(ctx context.Context, input, outDir string, opts *Options) (*Result, error) {
	log := opts.Log.WithField("input", input)

	p, err := loadProfile(ctx, input, opts)
	if err != nil {
		emitProgress(opts, input, StepFailed, err.Error())
		log.WithError(err).Warn("build failed")
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := &Result{Input: input, Profile: p, Name: p.Name}
	for _, format := range opts.Formats {
		emitProgress(opts, input, StepRender, "rendering "+format)
		file, err := opts.Exporter.Export(ctx, p, opts.Settings, format)
		if err != nil {
			emitProgress(opts, input, StepFailed, err.Error())
			log.WithError(err).WithField("format", format).Warn("build failed")
			return nil, fmt.Errorf("failed to render %s for %s: %w", format, input, err)
		}

		path := filepath.Join(outDir, file.Name)
		if err := os.WriteFile(path, file.Data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		emitProgress(opts, input, StepWrite, path)
		res.Files = append(res.Files, path)
	}

	emitProgress(opts, input, StepDone, fmt.Sprintf("%d file(s) written", len(res.Files)))
	log.WithField("files", len(res.Files)).Info("build complete")
	return res, nil
}

// loadProfile reads profile JSON or YAML directly and sends anything else
// through the extractor.
func loadProfile(ctx context.Context, input string, opts *Options) (*types.ProfileData, error) {
	emitProgress(opts, input, StepLoad, "reading "+input)

	switch strings.ToLower(filepath.Ext(input)) {
	case ".json":
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}
		p, err := profile.NormalizeJSON(data, opts.Normalize)
		if err != nil {
			return nil, fmt.Errorf("failed to parse profile %s: %w", input, err)
		}
		return p, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse profile %s: %w", input, &profile.InvalidStructureError{Message: "invalid YAML", Cause: err})
		}
		p, err := profile.NormalizeValue(raw, opts.Normalize)
		if err != nil {
			return nil, fmt.Errorf("failed to parse profile %s: %w", input, err)
		}
		return p, nil
	}

	if opts.Extractor == nil {
		return nil, ErrExtractorRequired
	}
	src, err := ingestion.ReadFile(input)
	if err != nil {
		return nil, err
	}
	result, err := opts.Extractor.Ingest(ctx, src, func(status string) {
		emitProgress(opts, input, StepExtract, status)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract profile from %s: %w", input, err)
	}
	return result.Profile, nil
}

// outputDirs gives each input a subdirectory named after its file stem,
// suffixed when two inputs share a stem.
func outputDirs(inputs []string, root string) []string {
	seen := make(map[string]int, len(inputs))
	dirs := make([]string, len(inputs))
	for i, input := range inputs {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		if stem == "" || stem == "." {
			stem = "profile"
		}
		seen[stem]++
		if n := seen[stem]; n > 1 {
			stem = fmt.Sprintf("%s-%d", stem, n)
		}
		dirs[i] = filepath.Join(root, stem)
	}
	return dirs
}

func writeManifest(dir string, results []Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
