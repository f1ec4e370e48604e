// Package check implements the lint command, resolving input sources,
// decoding them and running verification.
package check

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"csslint/archive"
	"csslint/config"
	"csslint/format"
	"csslint/lint"
	"csslint/state"
)

// ErrProblemsFound reports that verification produced error severity
// findings. The caller maps it to a dedicated exit code.
var ErrProblemsFound = errors.New("problems found")

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("lint")

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	outFmt := env.Cfg.Lint.Format
	if cmd.IsSet("format") {
		if outFmt, err = config.ParseOutputFmt(cmd.String("format")); err != nil {
			return fmt.Errorf("unable to parse requested output format: %w", err)
		}
	}

	tmplText := env.Cfg.Lint.OutputTemplate
	if fname := cmd.String("template"); len(fname) > 0 {
		data, err := os.ReadFile(fname)
		if err != nil {
			return fmt.Errorf("unable to read template file '%s': %w", fname, err)
		}
		tmplText = string(data)
		// requesting a template file without naming a format means the
		// template format
		if !cmd.IsSet("format") {
			outFmt = config.OutputFmtTemplate
		}
	}

	outName := cmd.String("output")

	f, err := format.New(outFmt, format.Options{
		Color:    len(outName) == 0 && config.EnableColorOutput(os.Stdout),
		Quiet:    cmd.Bool("quiet"),
		Template: tmplText,
	})
	if err != nil {
		return err
	}

	p := &processor{
		engine:  lint.NewEngine(env.Log),
		ruleset: buildRuleset(env.Cfg.Lint.Rules, cmd.String("warnings"), cmd.String("errors"), cmd.String("ignore")),
		log:     log,
	}

	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()), zap.String("format", f.Name()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var (
		results  []format.Result
		failures error
	)
	for _, src := range cmd.Args().Slice() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if src == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				failures = multierr.Append(failures, fmt.Errorf("unable to read stdin: %w", err))
				continue
			}
			results = append(results, p.lintSource(ctx, data, "stdin"))
			continue
		}

		res, err := p.processPath(ctx, src)
		results = append(results, res...)
		if err != nil {
			failures = multierr.Append(failures, err)
		}
	}

	data, err := f.MarshalReport(results)
	if err != nil {
		return fmt.Errorf("unable to render report: %w", err)
	}
	env.Rpt.StoreData("result."+f.Name(), data)

	out := os.Stdout
	if len(outName) > 0 {
		if out, err = os.Create(outName); err != nil {
			return fmt.Errorf("unable to create output file '%s': %w", outName, err)
		}
		defer out.Close()
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	if out == os.Stdout && len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}

	// read failures take precedence, they signal an incomplete run
	if failures != nil {
		return failures
	}

	var problems int
	for _, res := range results {
		for _, m := range res.Report.Messages {
			if m.Type == "error" {
				problems++
			}
		}
	}
	if problems > 0 {
		log.Info("Verification found problems", zap.Int("errors", problems))
		return ErrProblemsFound
	}
	return nil
}

// processor carries the state of one lint run, sources share the engine so
// its selector cache survives between files.
type processor struct {
	engine  *lint.Engine
	ruleset lint.Ruleset
	log     *zap.Logger
	seq     int
}

func (p *processor) processPath(ctx context.Context, src string) ([]format.Result, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("unable to access input source '%s': %w", src, err)
	}

	if fi.Mode().IsDir() {
		return p.processDir(ctx, src)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("unexpected path mode for '%s'", src)
	}
	if archive.IsArchive(src) {
		return p.processArchive(ctx, src)
	}
	return p.processFile(ctx, src)
}

// processDir lints every css file under dir, walking recursively. Files are
// processed in natural order so site2.css comes before site10.css.
func (p *processor) processDir(ctx context.Context, dir string) ([]format.Result, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			p.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".css") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		p.log.Debug("Nothing to process", zap.String("dir", dir))
		return nil, nil
	}
	sort.Sort(natural.StringSlice(paths))

	var (
		results []format.Result
		errs    error
	)
	for _, path := range paths {
		res, err := p.processFile(ctx, path)
		results = append(results, res...)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return results, errs
}

// processArchive lints every css entry of a zip archive. Entries are matched
// by extension, the archive itself was already recognized by content.
func (p *processor) processArchive(ctx context.Context, path string) ([]format.Result, error) {
	count := 0
	var results []format.Result

	err := archive.Walk(path, archive.MatchExt(".css"), func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open '%s' in archive '%s': %w", f.FileHeader.Name, arc, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read '%s' from archive '%s': %w", f.FileHeader.Name, arc, err)
		}

		count++
		name := filepath.Join(arc, filepath.FromSlash(f.FileHeader.Name))
		results = append(results, p.lintSource(ctx, data, name))
		return nil
	})
	if err != nil {
		return results, fmt.Errorf("unable to process archive '%s': %w", path, err)
	}

	if count == 0 {
		p.log.Debug("Nothing to process", zap.String("archive", path))
	}
	return results, nil
}

func (p *processor) processFile(ctx context.Context, path string) ([]format.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read input source '%s': %w", path, err)
	}
	return []format.Result{p.lintSource(ctx, data, path)}, nil
}

// lintSource verifies one stylesheet and collects the outcome. With debug
// reporting active the decoded text is preserved in the report archive.
func (p *processor) lintSource(ctx context.Context, data []byte, name string) format.Result {
	env := state.EnvFromContext(ctx)

	p.log.Debug("Verification starting", zap.String("source", name))

	text := decodeText(data, p.log)
	if env.Rpt != nil {
		p.seq++
		env.Rpt.StoreData(fmt.Sprintf("sources/%03d-%s.css", p.seq, slug.Make(name)), []byte(text))
	}

	start := time.Now()
	report := p.engine.Verify(text, p.ruleset)
	p.log.Debug("Verification completed",
		zap.String("source", name), zap.Int("messages", len(report.Messages)), zap.Duration("elapsed", time.Since(start)))

	return format.Result{Name: name, Report: report}
}

// buildRuleset combines configured rule levels with command line overrides.
// Configuration applies first, flags win. When --warnings or --errors name
// specific rules the base set is empty and only the named rules run. A nil
// result means no overrides at all, every registered rule then runs as a
// warning.
func buildRuleset(cfgRules map[string]config.RuleLevel, warns, errs, ignores string) lint.Ruleset {
	if len(cfgRules) == 0 && len(warns) == 0 && len(errs) == 0 && len(ignores) == 0 {
		return nil
	}

	var rs lint.Ruleset
	if len(warns) == 0 && len(errs) == 0 {
		rs = lint.DefaultRuleset()
	} else {
		rs = lint.Ruleset{}
	}

	for id, level := range cfgRules {
		rs[id] = int(level)
	}
	for _, id := range splitList(warns) {
		rs[id] = lint.SeverityWarning
	}
	for _, id := range splitList(errs) {
		rs[id] = lint.SeverityError
	}
	for _, id := range splitList(ignores) {
		rs[id] = lint.SeverityOff
	}
	return rs
}

func splitList(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); len(id) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
