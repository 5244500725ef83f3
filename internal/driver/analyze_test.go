package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"glean/internal/codec"
	"glean/internal/driver"
	"glean/internal/pathcase"
	"glean/internal/token"
)

const literalTree = `
[[pattern]]
name = "docs"
expression = "literal/foo/*bar"
token = [
  { kind = "literal", text = "literal" },
  { kind = "separator" },
  { kind = "literal", text = "foo" },
  { kind = "separator" },
  { kind = "zero_or_more" },
  { kind = "literal", text = "bar" },
]
`

const rootedTree = `
case = "insensitive"

[[pattern]]
name = "anywhere"
expression = "/**/foo"
token = [
  { kind = "tree", root = true },
  { kind = "literal", text = "foo" },
]
`

func writeTree(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func native(s string) string {
	return filepath.FromSlash(s)
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeTree(t, dir, "a.toml", literalTree),
		writeTree(t, dir, "b.toml", rootedTree),
		writeTree(t, dir, "c.toml", "not = [valid"),
	}

	var (
		mu     sync.Mutex
		events []driver.Event
	)
	sink := driver.SinkFunc(func(e driver.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	reports, err := driver.Analyze(context.Background(), files, driver.Options{
		Case:     pathcase.Sensitive,
		Jobs:     2,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("reports = %d, want 3", len(reports))
	}
	for i, r := range reports {
		if r.File != files[i] {
			t.Fatalf("report %d is for %s, want %s", i, r.File, files[i])
		}
	}

	docs := reports[0]
	if docs.Err != nil || docs.Case != pathcase.Sensitive || len(docs.Patterns) != 1 {
		t.Fatalf("docs report = %+v", docs)
	}
	p := docs.Patterns[0]
	if p.Prefix != native("literal/foo") || p.Rest != "*bar" {
		t.Fatalf("partition = %q + %q", p.Prefix, p.Rest)
	}
	if !p.Text.IsVariant() || p.Text.IsOpen() || p.Depth.IsOpen() || !p.Breadth.IsOpen() {
		t.Fatalf("variance = %v depth %v breadth %v", p.Text, p.Depth, p.Breadth)
	}
	if p.Components != 3 || !slices.Equal(p.Literals, []string{"literal", "foo"}) {
		t.Fatalf("components = %d literals = %v", p.Components, p.Literals)
	}

	rooted := reports[1]
	if rooted.Case != pathcase.Insensitive {
		t.Fatalf("file case override ignored: %v", rooted.Case)
	}
	if r := rooted.Patterns[0]; r.Prefix != native("/") || r.Rest != native("**/foo") || !r.HasRoot || !r.Depth.IsOpen() {
		t.Fatalf("rooted = %+v", r)
	}

	if reports[2].Err == nil || !driver.Failed(reports) {
		t.Fatalf("invalid file must report an error")
	}

	mu.Lock()
	defer mu.Unlock()
	var done, failed int
	for _, e := range events {
		switch {
		case e.Stage == driver.StageAnalyze && e.Status == driver.StatusDone:
			done++
		case e.Status == driver.StatusError:
			failed++
		}
	}
	if done != 2 || failed != 1 {
		t.Fatalf("events: done=%d failed=%d", done, failed)
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeTree(t, dir, "a.toml", literalTree)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.Analyze(ctx, files, driver.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestLoadFileUsesCacheAndMsgpack(t *testing.T) {
	dir := t.TempDir()
	path := writeTree(t, dir, "a.toml", literalTree)
	cache, err := codec.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	first, err := driver.LoadFile(path, cache)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(codec.DigestOf(data), path); err != nil || !ok {
		t.Fatalf("tree not cached: ok=%v err=%v", ok, err)
	}

	mp := filepath.Join(dir, "a.mp")
	out, err := os.Create(mp)
	if err != nil {
		t.Fatal(err)
	}
	if err := codec.Encode(out, first); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	second, err := driver.LoadFile(mp, nil)
	if err != nil {
		t.Fatalf("LoadFile(.mp): %v", err)
	}
	if got, want := second.Patterns[0].Pattern.String(), first.Patterns[0].Pattern.String(); got != want {
		t.Fatalf("msgpack tree = %q, want %q", got, want)
	}
}

func TestListTreeFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	a := writeTree(t, dir, "a.toml", literalTree)
	b := writeTree(t, sub, "b.mp", "")
	writeTree(t, dir, "notes.txt", "")
	writeTree(t, dir, "glean.toml", "")

	got, err := driver.ListTreeFiles([]string{dir, a})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{a, b}; !slices.Equal(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	if _, err := driver.ListTreeFiles([]string{sub + "-missing"}); err == nil {
		t.Fatalf("expected error for missing path")
	}
	empty := t.TempDir()
	if _, err := driver.ListTreeFiles([]string{empty}); !errors.Is(err, driver.ErrNoTreeFiles) {
		t.Fatalf("err = %v, want ErrNoTreeFiles", err)
	}
}

func TestAnalyzePatternUnannotated(t *testing.T) {
	tokens := []token.Token[struct{}]{
		token.From(token.NewLiteral("a", false)),
		token.From(token.NewSeparator()),
		token.From(token.NewOne()),
	}
	r := driver.AnalyzePattern("bare", token.NewTokenized("a/?", tokens), pathcase.Sensitive)
	if r.Prefix != "a" || r.Rest != "?" || r.Components != 2 {
		t.Fatalf("report = %+v", r)
	}
	if !r.Size.IsVariant() || r.Size.IsOpen() {
		t.Fatalf("size = %v, want variant(closed)", r.Size)
	}
}
