// render.go implements debounced, cached content rendering for both panes.
//
// Markdown files go through Glamour, which is relatively expensive, so two
// optimizations keep the UI responsive while the divider moves:
//
// # Debouncing
//
// requestRender bumps the pane's sequence number and schedules the render
// after RenderDebounce. A newer request for the same pane makes the older
// one stale, so a burst of resizes renders once. Divider drags request
// renders when the drag ends or the split resets, not on every move.
//
// # Caching
//
// Completed renders are cached per path with the file's modification time
// and the width bucket used for wrapping. Glamour renderers themselves are
// cached per style and width bucket in a small LRU shared by both panes.
// Both panes render on their own goroutines and may share a renderer, so
// each cached renderer carries a mutex held for the whole Render call.
package app

import (
	"container/list"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// renderCacheEntry stores a completed render alongside the inputs that
// produced it.
type renderCacheEntry struct {
	mtime   time.Time
	width   int
	content string
}

// renderRequestMsg is emitted by the debounce timer.
type renderRequestMsg struct {
	pane paneID
	seq  int
}

// renderResultMsg carries a finished render (or its error) back to Update.
type renderResultMsg struct {
	pane    paneID
	path    string
	width   int
	seq     int
	content string
	mtime   time.Time
	err     error
}

type rendererKey struct {
	style string
	width int
}

// sharedRenderer is a cached Glamour renderer. TermRenderer keeps render
// state between calls, so callers hold mu across Render.
type sharedRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
}

var (
	// maxRendererCacheEntries bounds the number of Glamour renderers kept.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[rendererKey]*sharedRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
)

// requestRender schedules a render of the pane's file at its current width.
// On a cache hit the content is applied immediately and no Cmd is returned.
func (m *Model) requestRender(id paneID) tea.Cmd {
	p := &m.panes[id]
	if p.path == "" {
		return nil
	}
	width := renderWidthBucket(p.viewport.Width)
	if info, err := os.Stat(p.path); err == nil {
		if entry, ok := m.renderCache[p.path]; ok && entry.width == width && entry.mtime.Equal(info.ModTime()) {
			// Invalidate any render still in flight for an older width.
			p.renderSeq++
			p.setContent(entry.content)
			p.loading = false
			return nil
		}
	}
	p.loading = true
	p.renderSeq++
	p.pendingWidth = width
	seq := p.renderSeq
	return tea.Tick(RenderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{pane: id, seq: seq}
	})
}

// requestRenderAll schedules renders for both panes.
func (m *Model) requestRenderAll() tea.Cmd {
	return tea.Batch(m.requestRender(paneLeft), m.requestRender(paneRight))
}

// handleRenderRequest dispatches the render if the request is still current.
func (m *Model) handleRenderRequest(msg renderRequestMsg) (tea.Model, tea.Cmd) {
	p := &m.panes[msg.pane]
	if msg.seq != p.renderSeq || p.path == "" {
		return m, nil
	}
	return m, renderPaneCmd(msg.pane, p.path, p.pendingWidth, msg.seq, m.cfg.GlamourStyle)
}

// handleRenderResult stores the result in the cache and shows it if it is
// still the pane's latest request.
func (m *Model) handleRenderResult(msg renderResultMsg) (tea.Model, tea.Cmd) {
	p := &m.panes[msg.pane]
	if msg.err != nil {
		if msg.seq == p.renderSeq && msg.path == p.path {
			p.loading = false
			p.setContent(errorStyle.Render("Error: " + msg.err.Error()))
			m.setStatusError("Error loading "+p.title, msg.err, "path", msg.path)
		}
		return m, nil
	}

	if entry, ok := m.renderCache[msg.path]; !ok || !entry.mtime.After(msg.mtime) {
		m.renderCache[msg.path] = renderCacheEntry{
			mtime:   msg.mtime,
			width:   msg.width,
			content: msg.content,
		}
	}

	if msg.seq != p.renderSeq || msg.path != p.path {
		return m, nil
	}
	p.loading = false
	p.setContent(msg.content)
	return m, nil
}

// renderPaneCmd reads and renders a pane's file on a background goroutine.
func renderPaneCmd(id paneID, path string, width, seq int, style string) tea.Cmd {
	return func() tea.Msg {
		result := renderResultMsg{pane: id, path: path, width: width, seq: seq}
		info, err := os.Stat(path)
		if err != nil {
			result.err = err
			return result
		}
		if info.IsDir() {
			result.err = fmt.Errorf("%s is a directory", path)
			return result
		}
		if info.Size() > MaxPaneFileBytes {
			result.err = fmt.Errorf("%s is larger than %d bytes", path, MaxPaneFileBytes)
			return result
		}
		data, err := os.ReadFile(path)
		if err != nil {
			result.err = err
			return result
		}
		raw := string(data)
		result.mtime = info.ModTime()
		if isMarkdown(path) {
			result.content = renderMarkdown(raw, width, style)
		} else {
			result.content = strings.ReplaceAll(raw, "\t", "    ")
		}
		return result
	}
}

func isMarkdown(path string) bool {
	return hasSuffixFold(path, ".md") || hasSuffixFold(path, ".markdown")
}

// renderMarkdown converts markdown to ANSI output. If the renderer cannot be
// created or fails, the raw markdown is returned so the pane still shows
// something.
func renderMarkdown(content string, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(style, width)
	if err != nil {
		appLog.Error("create markdown renderer", "width", width, "style", style, "error", err)
		return content
	}
	renderer.mu.Lock()
	out, err := renderer.renderer.Render(content)
	renderer.mu.Unlock()
	if err != nil {
		appLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return out
}

// getRenderer returns a cached Glamour renderer for style and width.
func getRenderer(style string, width int) (*sharedRenderer, error) {
	key := rendererKey{style: style, width: width}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[key]; ok {
		if node, ok := rendererCacheNodes[key]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamourStyleOption(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderer := &sharedRenderer{renderer: tr}
	rendererCache[key] = renderer
	rendererCacheNodes[key] = rendererCacheOrder.PushBack(key)
	evictOldestRendererIfNeeded()
	return renderer, nil
}

func evictOldestRendererIfNeeded() {
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		key, _ := oldest.Value.(rendererKey)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, key)
		delete(rendererCacheNodes, key)
	}
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[rendererKey]*sharedRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
}

// glamourStyleOption maps a configured style to a renderer option. "auto"
// queries the terminal background; unknown values fall back to dark.
func glamourStyleOption(style string) glamour.TermRendererOption {
	switch style {
	case "auto":
		return glamour.WithAutoStyle()
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}
