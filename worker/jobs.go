package worker

import (
	"context"
	"fmt"

	"github.com/makeworld-the-better-one/paletteshift/extract"
	"github.com/makeworld-the-better-one/paletteshift/match"
	"github.com/makeworld-the-better-one/paletteshift/palette"
	"github.com/makeworld-the-better-one/paletteshift/pixbuf"
	"github.com/makeworld-the-better-one/paletteshift/recolor"
)

// Job is a unit of work for a Pool. The job types in this package are the
// only implementations.
type Job interface {
	validate() error
	run() Result
}

// ApplyJob recolors Buffer to Palette. The result is in Result.Buffer.
type ApplyJob struct {
	Buffer  *pixbuf.Buffer
	Palette palette.Palette
	Options recolor.Options
}

func (j ApplyJob) validate() error {
	return validateInput("apply", j.Buffer, j.Palette)
}

func (j ApplyJob) run() Result {
	return Result{Buffer: recolor.Apply(j.Buffer, j.Palette, j.Options)}
}

// VariationsJob generates the six strategy variations of Buffer in a single
// job. The result is in Result.Variations.
type VariationsJob struct {
	Buffer  *pixbuf.Buffer
	Palette palette.Palette
	Options recolor.Options
}

func (j VariationsJob) validate() error {
	return validateInput("variations", j.Buffer, j.Palette)
}

func (j VariationsJob) run() Result {
	return Result{Variations: recolor.Variations(j.Buffer, j.Palette, j.Options)}
}

// SimilarJob applies Count palettes similar to Palette. The result is in
// Result.Similar.
type SimilarJob struct {
	Buffer  *pixbuf.Buffer
	Palette palette.Palette
	Count   int
	Options recolor.Options
}

func (j SimilarJob) validate() error {
	if j.Count < 0 {
		return fmt.Errorf("similar: negative count %d", j.Count)
	}
	return validateInput("similar", j.Buffer, j.Palette)
}

func (j SimilarJob) run() Result {
	return Result{Similar: recolor.ApplySimilar(j.Buffer, j.Palette, j.Count, j.Options)}
}

// ExtractJob extracts up to Count colors from Buffer. The result is in
// Result.Palette.
type ExtractJob struct {
	Buffer  *pixbuf.Buffer
	Count   int
	Method  extract.Method
	Options extract.Options
}

func (j ExtractJob) validate() error {
	if j.Buffer == nil {
		return fmt.Errorf("extract: %w", pixbuf.ErrBadDimensions)
	}
	if err := j.Buffer.Validate(); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return nil
}

func (j ExtractJob) run() Result {
	p, err := extract.Extract(j.Buffer, j.Count, j.Method, j.Options)
	if err != nil {
		return failed(fmt.Errorf("extract: %w", err))
	}
	return Result{Palette: p}
}

func validateInput(name string, buf *pixbuf.Buffer, p palette.Palette) error {
	if buf == nil {
		return fmt.Errorf("%s: %w", name, pixbuf.ErrBadDimensions)
	}
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Variations generates the six strategy variations of buf with one
// ApplyJob per strategy, so they run in parallel. The first failure is
// returned.
func (p *Pool) Variations(ctx context.Context, buf *pixbuf.Buffer, pal palette.Palette, opts recolor.Options) ([]recolor.Variation, error) {
	pending := make([]<-chan Result, len(match.Strategies))
	for i, s := range match.Strategies {
		o := opts
		o.Strategy = s
		pending[i] = p.Submit(ctx, ApplyJob{Buffer: buf, Palette: pal, Options: o})
	}

	vs := make([]recolor.Variation, len(match.Strategies))
	var firstErr error
	for i, s := range match.Strategies {
		r := <-pending[i]
		if !r.OK() {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", s.Title(), r.Err)
			}
			continue
		}
		vs[i] = recolor.Variation{
			Name:        s.Title(),
			Description: s.Description(),
			Strategy:    s,
			Buffer:      r.Buffer,
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return vs, nil
}
