package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	apperrors "github.com/masmgr/changelog-gen/internal/errors"
	"github.com/masmgr/changelog-gen/internal/filter"
	"github.com/masmgr/changelog-gen/internal/output"
)

// Options is the validated run configuration built once from the command line.
type Options struct {
	Repository string
	Count      int

	FromDate   *time.Time
	ToDate     *time.Time
	Author     string
	Categories []string
	Exclude    []string
	Tags       []string

	OutputPath    string
	Preview       bool
	Interactive   bool
	Silent        bool
	HideScores    bool
	Chronological bool
	Verbose       bool
	Format        output.OutputFormat

	IncludePaths []string
	ExcludePaths []string
	ConfigPath   string
	Model        string
}

// Criteria returns the filter criteria for these options.
func (o *Options) Criteria() filter.Criteria {
	return filter.Criteria{
		From:    o.FromDate,
		To:      o.ToDate,
		Author:  o.Author,
		Tags:    o.Tags,
		Exclude: o.Exclude,
	}
}

// parseOptions reads and validates the command line. Nothing touches the
// repository until this succeeds.
func parseOptions(c *cli.Context) (*Options, error) {
	if c.NArg() != 2 {
		return nil, apperrors.NewInvalidArgumentError("arguments",
			"expected <repository> <count>, got "+strconv.Itoa(c.NArg())+" argument(s)")
	}

	opts := &Options{
		Repository:    strings.TrimSpace(c.Args().Get(0)),
		Author:        c.String("author"),
		Categories:    nonEmpty(c.StringSlice("category")),
		Exclude:       nonEmpty(c.StringSlice("exclude")),
		Tags:          nonEmpty(c.StringSlice("tag")),
		OutputPath:    c.String("output"),
		Preview:       c.Bool("preview"),
		Interactive:   c.Bool("interactive"),
		Silent:        c.Bool("silent"),
		HideScores:    c.Bool("hide-scores"),
		Chronological: c.Bool("chronological"),
		Verbose:       c.Bool("verbose"),
		IncludePaths:  c.StringSlice("include-path"),
		ExcludePaths:  c.StringSlice("exclude-path"),
		ConfigPath:    c.String("config"),
		Model:         c.String("model"),
	}

	if opts.Repository == "" {
		return nil, apperrors.NewInvalidArgumentError("repository", "must not be empty")
	}

	count, err := parseCount(c.Args().Get(1))
	if err != nil {
		return nil, err
	}
	opts.Count = count

	if opts.FromDate, err = parseDateFlag("--from-date", c.String("from-date"), false); err != nil {
		return nil, err
	}
	if opts.ToDate, err = parseDateFlag("--to-date", c.String("to-date"), true); err != nil {
		return nil, err
	}
	if opts.FromDate != nil && opts.ToDate != nil && opts.FromDate.After(*opts.ToDate) {
		return nil, apperrors.NewInvalidArgumentError("--from-date", "must not be after --to-date")
	}

	if opts.Format, err = output.ParseFormat(c.String("format")); err != nil {
		return nil, apperrors.NewInvalidArgumentErrorWithCause("--format", err.Error(), err)
	}

	if opts.OutputPath != "" {
		if err := output.ValidateOutputPath(opts.OutputPath); err != nil {
			return nil, apperrors.NewInvalidArgumentErrorWithCause("--output", err.Error(), err)
		}
	}

	return opts, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.NewInvalidArgumentErrorWithCause("count", "must be an integer, got "+strconv.Quote(s), err)
	}
	if n <= 0 {
		return 0, apperrors.NewInvalidArgumentError("count", "must be a positive integer, got "+s)
	}
	return n, nil
}

// parseDateFlag parses a date bound in local time. A plain date used as an
// upper bound covers the whole day.
func parseDateFlag(name, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := filter.ParseBound(value, endOfDay, time.Local)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentErrorWithCause(name, err.Error(), err)
	}
	return &t, nil
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
