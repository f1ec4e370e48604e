package check

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"csslint/config"
	"csslint/lint"
	_ "csslint/rules"
	"csslint/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func newProcessor(env *state.LocalEnv) *processor {
	return &processor{
		engine: lint.NewEngine(env.Log),
		log:    env.Log,
	}
}

func writeCSS(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestBuildRuleset(t *testing.T) {
	t.Run("no overrides", func(t *testing.T) {
		if rs := buildRuleset(nil, "", "", ""); rs != nil {
			t.Errorf("buildRuleset() = %v, want nil", rs)
		}
	})

	t.Run("config overlays defaults", func(t *testing.T) {
		rs := buildRuleset(map[string]config.RuleLevel{"ids": config.RuleLevelError, "box-model": config.RuleLevelOff}, "", "", "")
		if rs["ids"] != lint.SeverityError {
			t.Errorf("ids = %d, want %d", rs["ids"], lint.SeverityError)
		}
		if rs["box-model"] != lint.SeverityOff {
			t.Errorf("box-model = %d, want %d", rs["box-model"], lint.SeverityOff)
		}
		// untouched rules keep their default warning level
		if rs["floats"] != lint.SeverityWarning {
			t.Errorf("floats = %d, want %d", rs["floats"], lint.SeverityWarning)
		}
	})

	t.Run("warnings flag selects exclusively", func(t *testing.T) {
		rs := buildRuleset(nil, "ids,floats", "", "")
		if len(rs) != 2 {
			t.Errorf("len(rs) = %d, want 2", len(rs))
		}
		if rs["ids"] != lint.SeverityWarning || rs["floats"] != lint.SeverityWarning {
			t.Errorf("rs = %v, want ids and floats as warnings", rs)
		}
	})

	t.Run("errors flag selects exclusively", func(t *testing.T) {
		rs := buildRuleset(nil, "", "ids", "")
		if len(rs) != 1 || rs["ids"] != lint.SeverityError {
			t.Errorf("rs = %v, want only ids as error", rs)
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		rs := buildRuleset(map[string]config.RuleLevel{"ids": config.RuleLevelWarning}, "", "ids", "")
		if rs["ids"] != lint.SeverityError {
			t.Errorf("ids = %d, want %d", rs["ids"], lint.SeverityError)
		}
	})

	t.Run("ignore disables on top of defaults", func(t *testing.T) {
		rs := buildRuleset(nil, "", "", "box-model")
		if rs["box-model"] != lint.SeverityOff {
			t.Errorf("box-model = %d, want %d", rs["box-model"], lint.SeverityOff)
		}
		if rs["ids"] != lint.SeverityWarning {
			t.Errorf("ids = %d, want %d", rs["ids"], lint.SeverityWarning)
		}
	})

	t.Run("ignore wins over errors", func(t *testing.T) {
		rs := buildRuleset(nil, "", "ids", "ids")
		if rs["ids"] != lint.SeverityOff {
			t.Errorf("ids = %d, want %d", rs["ids"], lint.SeverityOff)
		}
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"ids", []string{"ids"}},
		{"ids,floats", []string{"ids", "floats"}},
		{" ids , floats ", []string{"ids", "floats"}},
		{"ids,,floats,", []string{"ids", "floats"}},
	}

	for _, tt := range tests {
		got := splitList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q)[%d] = %s, want %s", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestProcessFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	path := writeCSS(t, t.TempDir(), "page.css", ".e { }\n")

	results, err := newProcessor(env).processFile(ctx, path)
	if err != nil {
		t.Fatalf("processFile() error = %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Name != path {
		t.Errorf("Name = %s, want %s", results[0].Name, path)
	}
	msgs := results[0].Report.Messages
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].RuleID != "empty-rules" || msgs[0].Message != "Rule is empty." {
		t.Errorf("message = %+v, want empty-rules finding", msgs[0])
	}
}

func TestProcessFile_Missing(t *testing.T) {
	ctx, env := setupTestEnv(t)

	if _, err := newProcessor(env).processFile(ctx, filepath.Join(t.TempDir(), "missing.css")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestProcessDir_NaturalOrder(t *testing.T) {
	ctx, env := setupTestEnv(t)

	dir := t.TempDir()
	writeCSS(t, dir, "b10.css", ".e { }\n")
	writeCSS(t, dir, "a.css", ".e { }\n")
	writeCSS(t, dir, "b2.css", ".e { }\n")
	writeCSS(t, dir, filepath.Join("sub", "c.css"), ".e { }\n")
	writeCSS(t, dir, "readme.txt", "not css\n")

	results, err := newProcessor(env).processDir(ctx, dir)
	if err != nil {
		t.Fatalf("processDir() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.css"),
		filepath.Join(dir, "b2.css"),
		filepath.Join(dir, "b10.css"),
		filepath.Join(dir, "sub", "c.css"),
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, res := range results {
		if res.Name != want[i] {
			t.Errorf("results[%d].Name = %s, want %s", i, res.Name, want[i])
		}
	}
}

func TestProcessDir_Empty(t *testing.T) {
	ctx, env := setupTestEnv(t)

	results, err := newProcessor(env).processDir(ctx, t.TempDir())
	if err != nil {
		t.Errorf("processDir() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func createLintZip(t *testing.T, dir string, entries [][2]string) string {
	t.Helper()

	zipPath := filepath.Join(dir, "styles.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}

	w := zip.NewWriter(zipFile)
	for _, e := range entries {
		fw, err := w.Create(e[0])
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", e[0], err)
		}
		if _, err := fw.Write([]byte(e[1])); err != nil {
			t.Fatalf("Failed to write content for %s: %v", e[0], err)
		}
	}
	w.Close()
	zipFile.Close()

	return zipPath
}

func TestProcessArchive(t *testing.T) {
	ctx, env := setupTestEnv(t)

	zipPath := createLintZip(t, t.TempDir(), [][2]string{
		{"styles/empty.css", ".e { }\n"},
		{"styles/clean.css", "a { color: red; }\n"},
		{"readme.txt", "not css\n"},
	})

	results, err := newProcessor(env).processArchive(ctx, zipPath)
	if err != nil {
		t.Fatalf("processArchive() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if want := filepath.Join(zipPath, "styles", "empty.css"); results[0].Name != want {
		t.Errorf("results[0].Name = %s, want %s", results[0].Name, want)
	}
	if len(results[0].Report.Messages) != 1 {
		t.Errorf("empty.css produced %d messages, want 1", len(results[0].Report.Messages))
	}
	if len(results[1].Report.Messages) != 0 {
		t.Errorf("clean.css produced %d messages, want 0", len(results[1].Report.Messages))
	}
}

func TestProcessPath(t *testing.T) {
	ctx, env := setupTestEnv(t)
	p := newProcessor(env)

	t.Run("routes archive by content", func(t *testing.T) {
		tmpDir := t.TempDir()
		zipPath := createLintZip(t, tmpDir, [][2]string{{"one.css", ".e { }\n"}})
		// content sniffing decides, the extension does not matter
		disguised := filepath.Join(tmpDir, "bundle.css")
		if err := os.Rename(zipPath, disguised); err != nil {
			t.Fatalf("Failed to rename zip: %v", err)
		}

		results, err := p.processPath(ctx, disguised)
		if err != nil {
			t.Fatalf("processPath() error = %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if want := filepath.Join(disguised, "one.css"); results[0].Name != want {
			t.Errorf("Name = %s, want %s", results[0].Name, want)
		}
	})

	t.Run("routes plain file", func(t *testing.T) {
		path := writeCSS(t, t.TempDir(), "page.css", ".e { }\n")
		results, err := p.processPath(ctx, path)
		if err != nil {
			t.Fatalf("processPath() error = %v", err)
		}
		if len(results) != 1 || results[0].Name != path {
			t.Errorf("results = %v, want single result for %s", results, path)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := p.processPath(ctx, filepath.Join(t.TempDir(), "missing.css")); err == nil {
			t.Error("Expected error for missing path")
		}
	})
}

func TestLintSource_DebugReport(t *testing.T) {
	ctx, env := setupTestEnv(t)

	env.Cfg.Reporting.Destination = filepath.Join(t.TempDir(), "report.zip")
	rpt, err := env.Cfg.Reporting.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	p := newProcessor(env)
	p.lintSource(ctx, []byte(".e { }\n"), "first.css")
	p.lintSource(ctx, []byte(".e { }\n"), "first.css")

	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(env.Cfg.Reporting.Destination)
	if err != nil {
		t.Fatalf("Failed to open report archive: %v", err)
	}
	defer zr.Close()

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		fmt.Sprintf("sources/001-%s.css", slug.Make("first.css")),
		fmt.Sprintf("sources/002-%s.css", slug.Make("first.css")),
	} {
		if !names[want] {
			t.Errorf("report archive missing entry %s, have %v", want, names)
		}
	}
}

func lintCommand() *cli.Command {
	return &cli.Command{
		Name: "lint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format"},
			&cli.StringFlag{Name: "template"},
			&cli.StringFlag{Name: "output"},
			&cli.StringFlag{Name: "errors"},
			&cli.StringFlag{Name: "warnings"},
			&cli.StringFlag{Name: "ignore"},
			&cli.BoolFlag{Name: "quiet"},
		},
		Action: Run,
	}
}

func TestRun(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	cssPath := writeCSS(t, tmpDir, "page.css", ".e { }\n")
	outPath := filepath.Join(tmpDir, "report.json")

	err := lintCommand().Run(ctx, []string{"lint", "--format", "json", "--output", outPath, cssPath})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var decoded []struct {
		Filename string         `json:"filename"`
		Messages []lint.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report does not parse: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d file reports, want 1", len(decoded))
	}
	if decoded[0].Filename != cssPath {
		t.Errorf("filename = %s, want %s", decoded[0].Filename, cssPath)
	}
	if len(decoded[0].Messages) != 1 || decoded[0].Messages[0].RuleID != "empty-rules" {
		t.Errorf("messages = %+v, want single empty-rules finding", decoded[0].Messages)
	}
	if decoded[0].Messages[0].Type != "warning" {
		t.Errorf("type = %s, want warning", decoded[0].Messages[0].Type)
	}
}

func TestRun_ProblemsFound(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	cssPath := writeCSS(t, tmpDir, "page.css", ".e { }\n")
	outPath := filepath.Join(tmpDir, "report.txt")

	err := lintCommand().Run(ctx, []string{"lint", "--errors", "empty-rules", "--output", outPath, cssPath})
	if !errors.Is(err, ErrProblemsFound) {
		t.Fatalf("Run() error = %v, want ErrProblemsFound", err)
	}

	// the report is still written
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if len(data) == 0 {
		t.Error("report is empty")
	}
}

func TestRun_Stdin(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	inPath := writeCSS(t, tmpDir, "in.css", ".e { }\n")
	outPath := filepath.Join(tmpDir, "report.txt")

	in, err := os.Open(inPath)
	if err != nil {
		t.Fatalf("Failed to open input: %v", err)
	}
	defer in.Close()

	old := os.Stdin
	os.Stdin = in
	t.Cleanup(func() { os.Stdin = old })

	err = lintCommand().Run(ctx, []string{"lint", "--format", "compact", "--output", outPath, "-"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	expected := "stdin: line 1, col 1, Warning - Rule is empty. (empty-rules)\n"
	if string(data) != expected {
		t.Errorf("report = %q, want %q", string(data), expected)
	}
}

func TestRun_TemplateFile(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	tmpDir := t.TempDir()
	cssPath := writeCSS(t, tmpDir, "page.css", ".e { }\n")
	tmplPath := filepath.Join(tmpDir, "out.tmpl")
	if err := os.WriteFile(tmplPath, []byte("{{range .}}{{.Name}}={{len .Report.Messages}}{{end}}"), 0644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
	outPath := filepath.Join(tmpDir, "report.txt")

	// --template without --format implies the template format
	err := lintCommand().Run(ctx, []string{"lint", "--template", tmplPath, "--output", outPath, cssPath})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if want := cssPath + "=1"; string(data) != want {
		t.Errorf("report = %q, want %q", string(data), want)
	}
}

func TestRun_NoSources(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	if err := lintCommand().Run(ctx, []string{"lint"}); err == nil {
		t.Error("Expected error when no sources are given")
	}
}

func TestRun_MissingInput(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	outPath := filepath.Join(t.TempDir(), "report.txt")
	err := lintCommand().Run(ctx, []string{"lint", "--output", outPath, filepath.Join(t.TempDir(), "missing.css")})
	if err == nil {
		t.Fatal("Expected error for missing input")
	}
	if errors.Is(err, ErrProblemsFound) {
		t.Errorf("Run() error = %v, want a read failure, not ErrProblemsFound", err)
	}
}
