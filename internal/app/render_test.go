package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func renderTestModel(path string) *Model {
	m := &Model{renderCache: map[string]renderCacheEntry{}}
	m.cfg.GlamourStyle = "notty"
	m.panes[paneLeft] = pane{path: path, title: filepath.Base(path), viewport: viewport.New(81, 5)} // width bucket is 80
	m.panes[paneRight] = pane{viewport: viewport.New(10, 5)}
	return m
}

func TestRequestRenderUsesCachedEntryWhenMtimeAndWidthMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	mustWriteFile(t, path, "# cached\n")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat file: %v", err)
	}

	m := renderTestModel(path)
	m.panes[paneLeft].renderSeq = 9
	m.renderCache[path] = renderCacheEntry{
		mtime:   info.ModTime(),
		width:   80,
		content: "cached-render-output",
	}

	if cmd := m.requestRender(paneLeft); cmd != nil {
		t.Fatal("expected no render command on cache hit")
	}
	p := m.panes[paneLeft]
	if !strings.Contains(p.viewport.View(), "cached-render-output") {
		t.Fatalf("expected cached content in viewport, got %q", p.viewport.View())
	}
	if p.loading {
		t.Fatal("expected loading to be false on cache hit")
	}
	if p.renderSeq != 10 {
		t.Fatalf("expected renderSeq to advance to 10, got %d", p.renderSeq)
	}
}

func TestRequestRenderStartsAsyncRenderWhenCacheMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	mustWriteFile(t, path, "# cache miss\n")

	m := renderTestModel(path)
	m.renderCache[path] = renderCacheEntry{width: 40, content: "stale width"}

	if cmd := m.requestRender(paneLeft); cmd == nil {
		t.Fatal("expected render command on cache miss")
	}
	p := m.panes[paneLeft]
	if !p.loading {
		t.Fatal("expected loading to be true on cache miss")
	}
	if p.pendingWidth != 80 {
		t.Fatalf("expected pendingWidth 80, got %d", p.pendingWidth)
	}
	if p.renderSeq != 1 {
		t.Fatalf("expected render sequence 1, got %d", p.renderSeq)
	}
}

func TestRequestRenderSkipsEmptyPane(t *testing.T) {
	m := renderTestModel("")
	if cmd := m.requestRender(paneRight); cmd != nil {
		t.Fatal("expected no render for a pane without a file")
	}
}

func TestHandleRenderRequestIgnoresStaleSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	mustWriteFile(t, path, "plain\n")
	m := renderTestModel(path)
	m.panes[paneLeft].renderSeq = 2

	if _, cmd := m.handleRenderRequest(renderRequestMsg{pane: paneLeft, seq: 1}); cmd != nil {
		t.Fatal("expected stale request to be dropped")
	}
	if _, cmd := m.handleRenderRequest(renderRequestMsg{pane: paneLeft, seq: 2}); cmd == nil {
		t.Fatal("expected current request to dispatch a render")
	}
}

func TestRenderPaneCmdPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	mustWriteFile(t, path, "func main() {\n\treturn\n}\n")

	msg := renderPaneCmd(paneRight, path, 80, 3, "notty")().(renderResultMsg)
	if msg.err != nil {
		t.Fatalf("render: %v", msg.err)
	}
	if msg.pane != paneRight || msg.seq != 3 || msg.width != 80 {
		t.Fatalf("unexpected result identity: %+v", msg)
	}
	if msg.content != "func main() {\n    return\n}\n" {
		t.Fatalf("expected tabs expanded, got %q", msg.content)
	}
	if msg.mtime.IsZero() {
		t.Fatal("expected mtime to be recorded")
	}
}

func TestRenderPaneCmdMarkdown(t *testing.T) {
	resetRendererCacheForTests()
	path := filepath.Join(t.TempDir(), "README.md")
	mustWriteFile(t, path, "# Title\n\nSome **bold** text.\n")

	msg := renderPaneCmd(paneLeft, path, 40, 1, "notty")().(renderResultMsg)
	if msg.err != nil {
		t.Fatalf("render: %v", msg.err)
	}
	if !strings.Contains(msg.content, "Title") || !strings.Contains(msg.content, "bold") {
		t.Fatalf("expected rendered markdown, got %q", msg.content)
	}
}

func TestRenderPaneCmdErrors(t *testing.T) {
	dir := t.TempDir()
	large := filepath.Join(dir, "large.txt")
	if err := os.WriteFile(large, bytes.Repeat([]byte("x"), MaxPaneFileBytes+1), 0o644); err != nil {
		t.Fatalf("write large file: %v", err)
	}

	cases := map[string]string{
		"missing":   filepath.Join(dir, "missing.md"),
		"directory": dir,
		"too large": large,
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			msg := renderPaneCmd(paneLeft, path, 80, 1, "notty")().(renderResultMsg)
			if msg.err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestHandleRenderResultCachesButSkipsStaleSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	mustWriteFile(t, path, "x")
	m := renderTestModel(path)
	m.panes[paneLeft].renderSeq = 2
	m.panes[paneLeft].setContent("current")

	_, _ = m.handleRenderResult(renderResultMsg{pane: paneLeft, path: path, width: 80, seq: 1, content: "old"})

	if _, ok := m.renderCache[path]; !ok {
		t.Fatal("expected stale result to still be cached")
	}
	if !strings.Contains(m.panes[paneLeft].viewport.View(), "current") {
		t.Fatal("expected stale result not to replace pane content")
	}

	_, _ = m.handleRenderResult(renderResultMsg{pane: paneLeft, path: path, width: 80, seq: 2, content: "fresh"})
	p := m.panes[paneLeft]
	if !strings.Contains(p.viewport.View(), "fresh") || p.loading {
		t.Fatalf("expected fresh content applied, got view=%q loading=%v", p.viewport.View(), p.loading)
	}
}

func TestHandleRenderResultErrorSetsStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.md")
	m := renderTestModel(path)
	m.panes[paneLeft].renderSeq = 1

	_, _ = m.handleRenderResult(renderResultMsg{pane: paneLeft, path: path, seq: 1, err: os.ErrNotExist})

	if !strings.HasPrefix(m.status, "Error loading") {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if !strings.Contains(m.panes[paneLeft].viewport.View(), "Error:") {
		t.Fatalf("expected pane to show the error, got %q", m.panes[paneLeft].viewport.View())
	}
}

func TestRendererCacheEvictsOldest(t *testing.T) {
	resetRendererCacheForTests()
	defer resetRendererCacheForTests()
	prev := maxRendererCacheEntries
	maxRendererCacheEntries = 2
	defer func() { maxRendererCacheEntries = prev }()

	for _, width := range []int{20, 40, 60} {
		if _, err := getRenderer("notty", width); err != nil {
			t.Fatalf("getRenderer(%d): %v", width, err)
		}
	}

	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if len(rendererCache) != 2 {
		t.Fatalf("expected 2 cached renderers, got %d", len(rendererCache))
	}
	if _, ok := rendererCache[rendererKey{style: "notty", width: 20}]; ok {
		t.Fatal("expected oldest renderer to be evicted")
	}
}

func TestRenderMarkdownConcurrentSharedRenderer(t *testing.T) {
	resetRendererCacheForTests()
	defer resetRendererCacheForTests()
	md := "# Title\n\n```go\nfunc main() {}\n```\n\n- one\n- two\n"
	want := renderMarkdown(md, 40, "dark")

	var wg sync.WaitGroup
	results := make([][]string, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				results[i] = append(results[i], renderMarkdown(md, 40, "dark"))
			}
		}(i)
	}
	wg.Wait()

	for i, outs := range results {
		for j, out := range outs {
			if out != want {
				t.Fatalf("goroutine %d render %d differs from the serial render", i, j)
			}
		}
	}
}
