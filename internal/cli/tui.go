package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conceptatlas/atlas/pkg/camera"
	"github.com/conceptatlas/atlas/pkg/interact"
	"github.com/conceptatlas/atlas/pkg/kgraph"
	"github.com/conceptatlas/atlas/pkg/layout/force"
	"github.com/conceptatlas/atlas/pkg/layout/topic"
	"github.com/conceptatlas/atlas/pkg/render/lod"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listPinnedStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

// cameraFrameInterval paces camera tween updates in the terminal.
const cameraFrameInterval = 50 * time.Millisecond

// frameMsg drives camera animation while a tween is in flight.
type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(cameraFrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// lodCycle is the order the l key steps through detail levels.
var lodCycle = []lod.Level{lod.LevelAll, lod.LevelImportant, lod.LevelKey, lod.LevelHub}

// =============================================================================
// ExploreModel - Interactive snapshot exploration
// =============================================================================

// exploreModel is the bubbletea model for the explore command. It drives the
// interaction coordinator and camera controller from keyboard input and
// shows the resulting highlight state.
type exploreModel struct {
	snap     *kgraph.Snapshot
	coord    *interact.Coordinator
	cam      *camera.Controller
	resolver *layoutResolver

	view    string // active view mode
	cursor  int
	offset  int
	height  int
	gapIdx  int // next gap the g key selects
	lodIdx  int // index into lodCycle
	status  string
	lastGap string
}

// newExploreModel wires the coordinator and camera over settled layouts.
func newExploreModel(snap *kgraph.Snapshot, nodes3 *force.Sim, topics *topic.Sim) *exploreModel {
	resolver := &layoutResolver{
		snap:   snap,
		nodes3: nodes3,
		topics: topics,
		view:   kgraph.ViewNodes,
	}
	cam := camera.New(camera.DefaultConfig(), resolver)

	m := &exploreModel{
		snap:     snap,
		cam:      cam,
		resolver: resolver,
		view:     kgraph.ViewNodes,
		height:   15,
	}
	m.coord = interact.New(snap, interact.Callbacks{
		OnNodeClick: func(n kgraph.Node) {
			m.status = fmt.Sprintf("selected %s", n.DisplayName())
		},
		OnBackgroundClick: func() {
			m.status = "selection cleared"
		},
	}, cam)
	return m
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.cam.Advance(cameraFrameInterval)
		if m.cam.Animating() {
			return m, frameTick()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *exploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
			m.hoverCursor()
		}

	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
			m.hoverCursor()
		}

	case "enter":
		return m.selectCursor()

	case "esc", "b":
		m.coord.ClickBackground()
		m.coord.LeaveCluster()
		m.cam.Reset()
		return m, frameTick()

	case "tab":
		m.switchView()
		return m, frameTick()

	case "p":
		if m.view == kgraph.ViewNodes && m.cursor < len(m.snap.Nodes) {
			n := m.snap.Nodes[m.cursor]
			if m.coord.TogglePin(n.ID) {
				m.status = fmt.Sprintf("pinned %s", n.DisplayName())
			} else {
				m.status = fmt.Sprintf("unpinned %s", n.DisplayName())
			}
		}

	case "g":
		m.selectNextGap()
		return m, frameTick()

	case "l":
		m.lodIdx = (m.lodIdx + 1) % len(lodCycle)
		m.status = fmt.Sprintf("detail level: %s", lodCycle[m.lodIdx])
	}
	return m, nil
}

// hoverCursor forwards cursor movement as hover events.
func (m *exploreModel) hoverCursor() {
	if m.view == kgraph.ViewTopics {
		if m.cursor < len(m.snap.Clusters) {
			m.coord.HoverCluster(m.snap.Clusters[m.cursor].ID)
		}
		return
	}
	if m.cursor < len(m.snap.Nodes) {
		m.coord.HoverNode(m.snap.Nodes[m.cursor].ID)
	}
}

// selectCursor handles enter on the current list row.
func (m *exploreModel) selectCursor() (tea.Model, tea.Cmd) {
	if m.view == kgraph.ViewTopics {
		if m.cursor < len(m.snap.Clusters) {
			cl := m.snap.Clusters[m.cursor]
			m.cam.FocusOnCluster(cl.ID)
			m.status = fmt.Sprintf("focused %s", cl.DisplayLabel())
			return m, frameTick()
		}
		return m, nil
	}
	if m.cursor < len(m.snap.Nodes) {
		n := m.snap.Nodes[m.cursor]
		m.coord.ClickNode(n.ID)
		m.cam.FocusOnNode(n.ID)
		return m, frameTick()
	}
	return m, nil
}

// switchView toggles between the node-level and topic-level views.
func (m *exploreModel) switchView() {
	if m.view == kgraph.ViewNodes {
		m.view = kgraph.ViewTopics
	} else {
		m.view = kgraph.ViewNodes
	}
	m.resolver.view = m.view
	m.cursor, m.offset = 0, 0
	m.coord.LeaveCluster()
	m.cam.Reset()
	m.status = fmt.Sprintf("view: %s", m.view)
}

// selectNextGap cycles through structural gaps, highlighting and focusing each.
func (m *exploreModel) selectNextGap() {
	if len(m.snap.Gaps) == 0 {
		m.status = "no structural gaps in snapshot"
		return
	}
	gap := m.snap.Gaps[m.gapIdx%len(m.snap.Gaps)]
	m.gapIdx++
	m.coord.SelectGap(gap.ID)
	m.lastGap = gapLabel(m.snap, &gap)
	m.status = fmt.Sprintf("gap %s (strength %.2f)", m.lastGap, gap.Strength)
}

func (m *exploreModel) listLen() int {
	if m.view == kgraph.ViewTopics {
		return len(m.snap.Clusters)
	}
	return len(m.snap.Nodes)
}

// =============================================================================
// View
// =============================================================================

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Atlas Explorer"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("[%s view · %s detail]", m.view, lodCycle[m.lodIdx])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows navigate · enter select · p pin · g gap · tab view · l detail · esc clear · q quit"))
	b.WriteString("\n\n")

	if m.view == kgraph.ViewTopics {
		m.writeClusterList(&b)
	} else {
		m.writeNodeList(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// writeNodeList renders the visible slice of the node list.
func (m *exploreModel) writeNodeList(b *strings.Builder) {
	highlighted := m.coord.HighlightedNodes()

	end := m.offset + m.height
	if end > len(m.snap.Nodes) {
		end = len(m.snap.Nodes)
	}

	for i := m.offset; i < end; i++ {
		n := m.snap.Nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		marker := " "
		if m.coord.IsPinned(n.ID) {
			marker = listPinnedStyle.Render("*")
		}

		tag := n.Type
		if n.Bridge {
			tag += " bridge"
		}

		line := fmt.Sprintf("%s%s %-32s %s", cursor, marker, truncate(n.DisplayName(), 32), listDimStyle.Render(tag))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case contains(highlighted, n.ID):
			b.WriteString(StyleHighlight.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("\n  [%d/%d]", m.cursor+1, len(m.snap.Nodes))))
}

// writeClusterList renders the cluster list with hover phases.
func (m *exploreModel) writeClusterList(b *strings.Builder) {
	end := m.offset + m.height
	if end > len(m.snap.Clusters) {
		end = len(m.snap.Clusters)
	}

	for i := m.offset; i < end; i++ {
		cl := m.snap.Clusters[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		phase := m.coord.ClusterPhase(cl.ID)
		line := fmt.Sprintf("%s%-28s %s", cursor, truncate(cl.DisplayLabel(), 28),
			listDimStyle.Render(fmt.Sprintf("%d members · density %.2f", cl.MemberCount(), cl.Density)))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case phase == interact.PhaseFaded:
			b.WriteString(listDimStyle.Render(line))
		case phase == interact.PhaseConnected:
			b.WriteString(StyleHighlight.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("\n  [%d/%d]", m.cursor+1, len(m.snap.Clusters))))
}

// statusLine summarizes interaction and camera state.
func (m *exploreModel) statusLine() string {
	st := m.coord.State()
	pose := m.cam.Pose()

	parts := []string{
		fmt.Sprintf("%d highlighted", len(st.Nodes)),
		fmt.Sprintf("%d pinned", len(st.Pinned)),
		fmt.Sprintf("camera (%.0f, %.0f, %.0f)", pose.Position.X, pose.Position.Y, pose.Position.Z),
	}
	if m.cam.Animating() {
		parts = append(parts, "tweening")
	}
	if m.lastGap != "" {
		parts = append(parts, "gap: "+m.lastGap)
	}

	line := listDimStyle.Render(strings.Join(parts, " · "))
	if m.status != "" {
		line += "\n" + StyleDim.Render(m.status)
	}
	return line
}

// =============================================================================
// Helpers
// =============================================================================

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
