package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/cre-datagen/internal/config"
	"github.com/sells-group/cre-datagen/internal/export"
	"github.com/sells-group/cre-datagen/internal/generate"
	"github.com/sells-group/cre-datagen/internal/inject"
	"github.com/sells-group/cre-datagen/internal/ledger"
	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/readback"
	"github.com/sells-group/cre-datagen/internal/synth"
)

// Loader persists a generated batch somewhere other than the output
// directory. *db.Loader satisfies it.
type Loader interface {
	Load(ctx context.Context, runID string, k model.Kind, cat model.PropertyCategory, records []model.Record) (int64, error)
}

// Pipeline orchestrates one generation run: generate, inject, export,
// verify, record and optionally load.
type Pipeline struct {
	cfg      *config.Config
	exporter *export.Exporter
	ledger   ledger.Ledger
	loader   Loader
}

// New creates a Pipeline. A nil ledger records nothing and a nil loader
// skips the database load.
func New(cfg *config.Config, exporter *export.Exporter, l ledger.Ledger, loader Loader) *Pipeline {
	if l == nil {
		l = ledger.NopLedger{}
	}
	return &Pipeline{cfg: cfg, exporter: exporter, ledger: l, loader: loader}
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	Seed      uint64
	Today     time.Time
	Batches   []Batch
	Artifacts []export.Artifact
	Records   int
	Loaded    int64
	Duration  time.Duration
}

// Run executes the full generation run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	gc := p.cfg.Generate

	today, err := gc.TodayDate()
	if err != nil {
		return nil, err
	}
	expFrom, expTo, err := gc.ExpenseWindow(today)
	if err != nil {
		return nil, err
	}
	cats, err := model.ParseCategories(gc.Categories)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: categories")
	}
	kinds, err := parseKinds(gc.Kinds)
	if err != nil {
		return nil, err
	}
	encs, err := export.ParseEncodings(p.cfg.Export.Encodings)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: encodings")
	}

	src := newSource(gc.Seed)
	run, err := p.ledger.CreateRun(ctx, ledger.RunSpec{
		Seed:       src.Seed(),
		Today:      today.Format(model.DateLayout),
		OutputDir:  p.exporter.Dir(),
		Categories: gc.Categories,
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}

	log := zap.L().With(
		zap.String("run_id", run.ID),
		zap.Uint64("seed", src.Seed()),
		zap.String("today", today.Format(model.DateLayout)),
	)
	log.Info("pipeline: starting run",
		zap.Int("categories", len(cats)),
		zap.Int("kinds", len(kinds)),
	)

	gen := generate.New(src, generate.WithToday(today), generate.WithExpenseWindow(expFrom, expTo))
	result, err := p.run(ctx, log, run.ID, gen, cats, kinds, encs)
	if err != nil {
		if ferr := p.ledger.FailRun(ctx, run.ID, err); ferr != nil {
			log.Warn("pipeline: failed to record run failure", zap.Error(ferr))
		}
		log.Error("pipeline: run failed", zap.Error(err))
		return nil, err
	}

	result.Duration = time.Since(start)
	log.Info("pipeline: run complete",
		zap.Int("files", len(result.Artifacts)),
		zap.Int("records", result.Records),
		zap.Int64("loaded", result.Loaded),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (p *Pipeline) run(
	ctx context.Context,
	log *zap.Logger,
	runID string,
	gen *generate.Generator,
	cats []model.PropertyCategory,
	kinds []model.Kind,
	encs []export.Encoding,
) (*Result, error) {
	gc := p.cfg.Generate
	src, today := gen.Source(), gen.Today()

	batches, err := Build(gen, inject.NewInjector(src), Plan{
		Categories:      cats,
		Kinds:           kinds,
		Counts:          gc.Counts,
		EdgeCases:       gc.EdgeCases,
		EdgeProbability: gc.EdgeProbability,
		Errors:          gc.Errors,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: runID, Seed: src.Seed(), Today: today, Batches: batches}
	for _, b := range batches {
		result.Records += len(b.Records) + len(b.EdgeCases)
		log.Debug("pipeline: generated batch",
			zap.String("kind", string(b.Kind)),
			zap.String("category", string(b.Category)),
			zap.Int("records", len(b.Records)),
			zap.Int("edge_cases", len(b.EdgeCases)),
		)
	}

	artifacts, err := p.export(ctx, batches, kinds, encs)
	if err != nil {
		return nil, err
	}

	if gc.Verify {
		if err := readback.VerifyAll(ctx, artifacts); err != nil {
			return nil, eris.Wrap(err, "pipeline: verify")
		}
		log.Debug("pipeline: verified artifacts", zap.Int("files", len(artifacts)))
	}

	// The summary counts itself and the README.
	summary := export.NewSummary(today, runID, src.Seed(), append(artifacts,
		export.Artifact{Name: export.SummaryJSONName, Format: export.FormatJSON},
		export.Artifact{Name: export.ReadmeName, Format: export.FormatMarkdown},
	))
	written, err := p.exporter.WriteSummary(summary)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: summary")
	}
	artifacts = append(artifacts, written...)
	result.Artifacts = artifacts

	for _, a := range artifacts {
		if err := p.ledger.AddArtifact(ctx, runID, a); err != nil {
			return nil, eris.Wrapf(err, "pipeline: record artifact %s", a.Name)
		}
	}

	if p.loader != nil {
		for _, b := range batches {
			n, err := p.loader.Load(ctx, runID, b.Kind, b.Category, b.Rows())
			if err != nil {
				return nil, eris.Wrapf(err, "pipeline: load %s for %s", b.Kind, b.Category)
			}
			result.Loaded += n
		}
		log.Info("pipeline: loaded batches", zap.Int64("rows", result.Loaded))
	}

	if err := p.ledger.CompleteRun(ctx, runID, ledger.RunStats{
		Files:   len(artifacts),
		Records: result.Records,
	}); err != nil {
		return nil, eris.Wrap(err, "pipeline: complete run")
	}
	return result, nil
}

// exportJob writes one or more files.
type exportJob func() ([]export.Artifact, error)

// export writes every file of the run concurrently. Artifacts come back in
// job order regardless of completion order.
func (p *Pipeline) export(ctx context.Context, batches []Batch, kinds []model.Kind, encs []export.Encoding) ([]export.Artifact, error) {
	jobs := p.jobs(batches, kinds, encs)
	results := make([][]export.Artifact, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	limit := p.cfg.Generate.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out, err := job()
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: export")
	}

	var artifacts []export.Artifact
	for _, r := range results {
		artifacts = append(artifacts, r...)
	}
	return artifacts, nil
}

func (p *Pipeline) jobs(batches []Batch, kinds []model.Kind, encs []export.Encoding) []exportJob {
	ex := p.exporter
	ec := p.cfg.Export
	var jobs []exportJob

	for _, b := range batches {
		tag := func(as []export.Artifact, err error) ([]export.Artifact, error) {
			for i := range as {
				as[i].Kind = b.Kind
				as[i].Category = b.Category
			}
			return as, skipEmpty(err)
		}
		rows := b.Rows()

		for _, enc := range encs {
			jobs = append(jobs, func() ([]export.Artifact, error) {
				return tag(one(ex.CSV(export.CSVName(b.Kind, b.Category, enc), rows, enc)))
			})
		}
		if ec.XLSX {
			jobs = append(jobs, func() ([]export.Artifact, error) {
				name := export.XLSXName(b.Kind, b.Category)
				return tag(one(ex.XLSX(name, export.SheetName(b.Kind), b.Records, ec.Formatted)))
			})
		}
		if ec.JSON {
			jobs = append(jobs, func() ([]export.Artifact, error) {
				return tag(one(ex.JSON(export.JSONName(b.Kind, b.Category), b.Records)))
			})
		}
		if b.Errors != nil {
			jobs = append(jobs, func() ([]export.Artifact, error) {
				return tag(ex.ErrorFiles(fmt.Sprintf("%s_%s_errors", b.Kind, b.Category), *b.Errors))
			})
		}
	}

	if ec.Dictionaries {
		for _, k := range kinds {
			jobs = append(jobs, func() ([]export.Artifact, error) {
				as, err := one(ex.Dictionary(export.DictionaryName(k), model.Dictionary(k)))
				for i := range as {
					as[i].Kind = k
				}
				return as, err
			})
		}
		jobs = append(jobs, func() ([]export.Artifact, error) {
			return one(ex.DictionaryYAML(export.DictionaryYAMLName, kinds))
		})
	}
	return jobs
}

// one adapts a single-artifact writer to the job signature.
func one(a export.Artifact, err error) ([]export.Artifact, error) {
	if err != nil {
		return nil, err
	}
	return []export.Artifact{a}, nil
}

// skipEmpty treats an empty batch as nothing to write.
func skipEmpty(err error) error {
	if errors.Is(err, export.ErrNoRecords) {
		return nil
	}
	return err
}

func parseKinds(names []string) ([]model.Kind, error) {
	if len(names) == 0 {
		return model.AllKinds(), nil
	}
	kinds := make([]model.Kind, 0, len(names))
	for _, n := range names {
		k, err := model.ParseKind(n)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: kinds")
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func newSource(seed uint64) *synth.Source {
	if seed == 0 {
		return synth.NewUnseeded()
	}
	return synth.New(seed)
}
