// Package generator turns cleaned announcement text into a GeneratedPost and
// runs the polish, extract, validate and retry state machine around it.
package generator

import (
	"context"
	"errors"

	"agri-updates/internal/ai"
	"agri-updates/internal/classify"
	"agri-updates/internal/cleaner"
	"agri-updates/internal/extract"
	"agri-updates/internal/langdetect"
	"agri-updates/internal/logger"
	"agri-updates/internal/models"
)

type State string

const (
	StateStart             State = "START"
	StateNormalize         State = "NORMALIZE"
	StatePolish            State = "POLISH"
	StateSkipPolish        State = "SKIP_POLISH"
	StateExtract           State = "EXTRACT"
	StateValidate          State = "VALIDATE"
	StateAccept            State = "ACCEPT"
	StateRetryWithOriginal State = "RETRY_WITH_ORIGINAL"
	StateDone              State = "DONE"
)

// Source names the candidate text a post was generated from.
type Source string

const (
	SourcePolished Source = "polished"
	SourceOriginal Source = "original"
)

// maxAttempts bounds the state machine: the first pass plus one retry.
const maxAttempts = 2

// Result is the outcome of one pipeline run.
type Result struct {
	Post models.GeneratedPost
	// Fields is the extraction the accepted post was built from.
	Fields  *extract.Result
	Source  Source
	Retried bool
	Trace   []State
}

// Pipeline is safe for concurrent use; every run keeps its state local.
type Pipeline struct {
	polisher ai.Polisher
	markers  GenericMarkers
	detect   func(string) string
	log      *logger.Logger
}

type Option func(*Pipeline)

// WithPolisher enables the polish pre-pass.
func WithPolisher(p ai.Polisher) Option {
	return func(pl *Pipeline) { pl.polisher = p }
}

// WithMarkers replaces the genericness markers.
func WithMarkers(m GenericMarkers) Option {
	return func(pl *Pipeline) { pl.markers = m }
}

func WithLanguageDetector(fn func(string) string) Option {
	return func(pl *Pipeline) { pl.detect = fn }
}

func WithLogger(l *logger.Logger) Option {
	return func(pl *Pipeline) { pl.log = l }
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		markers: DefaultMarkers(),
		detect:  langdetect.Detect,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run always yields a post. A polish failure falls back to the cleaned
// original, and a generic result from the polished candidate is retried once
// against the original.
func (p *Pipeline) Run(ctx context.Context, raw string) Result {
	trace := []State{StateStart, StateNormalize}
	original := cleaner.BasicPolish(raw)

	candidate, source := original, SourceOriginal
	if p.polisher == nil {
		trace = append(trace, StateSkipPolish)
	} else {
		trace = append(trace, StatePolish)
		if polished, ok := p.polish(ctx, raw, original); ok {
			candidate, source = polished, SourcePolished
		}
	}
	return p.attempt(candidate, original, source, 1, trace)
}

// attempt runs EXTRACT and VALIDATE on one candidate. The retry is a second
// call with the original text and the attempt number incremented.
func (p *Pipeline) attempt(candidate, original string, source Source, n int, trace []State) Result {
	trace = append(trace, StateExtract)
	post, fields := p.Generate(candidate)
	trace = append(trace, StateValidate)

	if source == SourcePolished && n < maxAttempts && p.markers.IsGeneric(post) {
		p.log.Info("generic result from polished text, retrying with original",
			"title", post.Title, "attempt", n, "fields", fields.SortedFields())
		trace = append(trace, StateRetryWithOriginal)
		res := p.attempt(original, original, SourceOriginal, n+1, trace)
		res.Retried = true
		return res
	}

	trace = append(trace, StateAccept, StateDone)
	return Result{Post: post, Fields: fields, Source: source, Trace: trace}
}

// polish asks the rewrite service for a cleaned version and keeps it only
// when it carries a valid structured data block whose figures all appear in
// the original.
func (p *Pipeline) polish(ctx context.Context, raw, original string) (string, bool) {
	out, err := p.polisher.Polish(ctx, raw)
	if err != nil {
		if !errors.Is(err, ai.ErrNotConfigured) {
			p.log.Warn("polish failed, using original text", "error", err)
		}
		return "", false
	}
	text, block := extract.ValidateBlock(cleaner.Normalize(out))
	if len(block.Dropped) > 0 {
		p.log.Debug("dropped structured data lines", "lines", block.Dropped)
	}
	if !block.Valid() {
		p.log.Info("polished text has no usable structured data block, using original text")
		return "", false
	}
	if bad := extract.Ungrounded(block, original); len(bad) > 0 {
		p.log.Warn("polished block changed figures, using original text", "lines", bad)
		return "", false
	}
	return text, true
}

// Generate builds a post from one cleaned candidate text.
func (p *Pipeline) Generate(text string) (models.GeneratedPost, *extract.Result) {
	res := extract.Extract(text)
	cat := classify.Classify(text, res)
	title := Title(cat, res, Headline(res))
	excerpt := Excerpt(cat, res)

	post := models.GeneratedPost{
		Title:    title,
		Slug:     Slug(title),
		Excerpt:  excerpt,
		Content:  Body(cat, res, excerpt),
		Category: cat,
	}
	if p.detect != nil {
		post.Language = p.detect(text)
	}
	if cat.IsJobLike() {
		post.JobDetails = jobDetails(res)
	}
	return post, res
}

func jobDetails(res *extract.Result) *models.JobDetails {
	d := &models.JobDetails{
		Company:         res.Get(extract.FieldCompany),
		Location:        res.Get(extract.FieldLocation),
		JobType:         res.Get(extract.FieldJobType),
		SalaryRange:     res.Get(extract.FieldSalary),
		ApplicationLink: res.Get(extract.FieldApplyLink),
		Deadline:        res.Get(extract.FieldDeadline),
		Contact:         res.Get(extract.FieldContact),
		Tags:            append([]string{}, res.Tags...),
	}
	if d.Company == "" {
		d.Company = FallbackCompany
	}
	if d.Location == "" {
		d.Location = FallbackLocation
	}
	return d
}
