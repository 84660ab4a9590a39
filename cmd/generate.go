package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/changelog-gen/config"
	"github.com/masmgr/changelog-gen/internal/changelog"
	apperrors "github.com/masmgr/changelog-gen/internal/errors"
	"github.com/masmgr/changelog-gen/internal/filter"
	"github.com/masmgr/changelog-gen/internal/git"
	"github.com/masmgr/changelog-gen/internal/output"
	"github.com/masmgr/changelog-gen/internal/progress"
	"github.com/masmgr/changelog-gen/internal/scoring"
	"github.com/masmgr/changelog-gen/internal/selection"
)

// generator runs one pass of the pipeline: load, filter, score, select,
// then preview or render.
type generator struct {
	deps   Deps
	opts   *Options
	cfg    *config.Config
	status *progress.Status
	logger *slog.Logger
}

func generateAction(c *cli.Context, deps Deps) error {
	opts, err := parseOptions(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	g := &generator{
		deps:   deps,
		opts:   opts,
		cfg:    cfg,
		status: progress.NewStatus(deps.Stderr, opts.Silent),
		logger: newLogger(deps.Stderr, opts.Verbose),
	}
	if err := g.run(c.Context); !apperrors.IsEmptySelection(err) {
		return err
	}
	return nil
}

func (g *generator) run(ctx context.Context) error {
	var summarizer changelog.Summarizer
	if !g.opts.Preview {
		s, err := g.deps.NewSummarizer(g.cfg, g.logger)
		if err != nil {
			return err
		}
		summarizer = s
	}

	source, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := source.Close(); err != nil {
			g.logger.Debug("failed to remove temporary clone", "dir", source.TempDir(), "error", err)
		}
	}()

	return g.generate(ctx, source.Reader, summarizer)
}

// generate runs the stages after repository acquisition. summarizer is nil
// in preview mode. Nothing left to render is reported as ErrEmptySelection.
func (g *generator) generate(ctx context.Context, reader git.RepositoryReader, summarizer changelog.Summarizer) error {
	g.status.Infof("Generating changelog for the last %d commits...", g.opts.Count)

	commits, err := reader.ReadCommits(ctx, g.opts.Count)
	if err != nil {
		return err
	}
	if len(commits) < g.opts.Count {
		g.status.Infof("Repository has only %d of the %d requested commits.", len(commits), g.opts.Count)
	}

	criteria := g.opts.Criteria()
	for _, tag := range filter.MissingTags(commits, criteria) {
		g.status.Warnf("Tag %q does not point at any loaded commit", tag)
	}

	candidates := filter.Apply(commits, criteria)
	g.logger.Debug("filtered history", "loaded", len(commits), "candidates", len(candidates))
	if len(candidates) == 0 {
		g.status.Infof("No commits found matching the specified criteria.")
		return apperrors.ErrEmptySelection
	}

	scored := scoring.NewCommitScorer(g.cfg.Scoring, g.deps.Now()).ScoreAll(candidates)

	sel, err := g.selectCommits(ctx, scored)
	if err != nil {
		return err
	}
	if sel.Empty() {
		g.status.Infof("No commits selected.")
		return apperrors.ErrEmptySelection
	}
	if g.opts.Interactive {
		g.status.Infof("Selected %d commits for changelog generation.", sel.Len())
	}

	if g.opts.Preview {
		return g.preview(sel, len(candidates))
	}
	return g.render(ctx, summarizer, sel)
}

func (g *generator) open(ctx context.Context) (*git.Source, error) {
	readOpts := git.ReadOptions{
		Include: g.cfg.Filters.Include,
		Exclude: g.cfg.Filters.Exclude,
		Clone:   g.deps.Clone,
		Logger:  g.logger,
	}

	if !git.IsRemote(g.opts.Repository) {
		return git.Open(ctx, g.opts.Repository, readOpts)
	}

	var source *git.Source
	err := g.status.Spin("Cloning "+g.opts.Repository, func() error {
		var err error
		source, err = git.Open(ctx, g.opts.Repository, readOpts)
		return err
	})
	return source, err
}

func (g *generator) selectCommits(ctx context.Context, scored []scoring.ScoredCommit) (selection.Selection, error) {
	if g.opts.Interactive {
		return selection.Interactive(ctx, scored, selection.InteractiveOptions{
			In:     g.deps.Stdin,
			Out:    g.deps.Stderr,
			Output: g.outputOptions(),
		})
	}

	sel := selection.Automatic(scoring.Rank(scored), g.opts.Count)
	if g.cfg.Selection.Chronological {
		sel = selection.Chronological(sel, scored)
	}
	return sel, nil
}

func (g *generator) preview(sel selection.Selection, candidates int) error {
	report := &output.PreviewReport{
		Repository:  g.opts.Repository,
		Since:       g.opts.FromDate,
		Until:       g.opts.ToDate,
		GeneratedAt: g.deps.Now(),
		Candidates:  candidates,
		Items:       sel.Items,
	}
	opts := g.outputOptions()
	return output.NewPreviewWriter(opts.Format).Write(g.deps.Stdout, report, opts)
}

func (g *generator) render(ctx context.Context, summarizer changelog.Summarizer, sel selection.Selection) error {
	var doc string
	err := g.status.Spin(fmt.Sprintf("Generating changelog from %d commits", sel.Len()), func() error {
		var err error
		doc, err = changelog.Render(ctx, summarizer, sel.Commits(), g.opts.Categories)
		return err
	})
	if err != nil {
		return err
	}

	if g.opts.OutputPath == "" {
		_, err := fmt.Fprint(g.deps.Stdout, doc)
		return err
	}

	if err := output.WriteFileAtomic(g.opts.OutputPath, []byte(doc)); err != nil {
		return apperrors.Wrapf(err, "writing %s", g.opts.OutputPath)
	}
	g.status.Successf("Changelog saved to: %s", g.opts.OutputPath)
	return nil
}

func (g *generator) outputOptions() output.OutputOptions {
	return output.OutputOptions{
		Format:           g.opts.Format,
		HideScores:       g.opts.HideScores,
		ShortHashLength:  g.cfg.Preview.ShortHashLength,
		MaxMessageLength: g.cfg.Preview.MaxMessageLength,
		DateLayout:       g.cfg.Preview.DateLayout,
	}
}
