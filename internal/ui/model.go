package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"procwatch/internal/config"
	"procwatch/internal/metrics"
)

// presentInterval is the UI refresh tick. It is independent of the sampling
// interval so the interface stays responsive even when sampling is slow.
const presentInterval = 100 * time.Millisecond

// terminateTimeout bounds the OS call for a terminate request. The command
// is fire-and-forget; this only guards against a wedged syscall.
const terminateTimeout = 3 * time.Second

// intervalStep is how much one keypress changes the refresh interval.
const intervalStep = 0.1

type viewMode int

const (
	modeTable viewMode = iota
	modeConfirm
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

type tickMsg time.Time

type terminateResultMsg struct {
	pid  int32
	name string
	err  error
}

type statusMessage struct {
	text  string
	level statusLevel
}

// Model is the bubbletea presenter. It owns all displayed state; the sampler
// never touches it. Snapshots arrive through the queue and are applied on the
// tick, newest wins.
type Model struct {
	queue  *metrics.SnapshotQueue
	killer metrics.Killer
	rate   *config.RefreshRate
	logger *zap.Logger
	cores  int

	table    table.Model
	rows     []metrics.ProcessRecord
	snapshot *metrics.Snapshot
	sort     SortState
	mode     viewMode
	confirm  metrics.ProcessRecord
	status   statusMessage
	width    int
	height   int
}

// New builds the presenter model.
func New(queue *metrics.SnapshotQueue, killer metrics.Killer, rate *config.RefreshRate, cores int, logger *zap.Logger) Model {
	columns := []table.Column{
		{Title: "PID", Width: 8},
		{Title: "Name", Width: 36},
		{Title: "CPU %", Width: 8},
		{Title: "Memory (MB)", Width: 12},
		{Title: "Status", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return Model{
		queue:  queue,
		killer: killer,
		rate:   rate,
		logger: logger,
		cores:  cores,
		table:  t,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(presentInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles ticks, key input, and terminate results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if snap, ok := m.queue.DrainLatest(); ok {
			m.applySnapshot(snap)
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Title, summary, status, help, and header take the rest.
		h := msg.Height - 7
		if h < 3 {
			h = 3
		}
		m.table.SetHeight(h)
		return m, nil

	case terminateResultMsg:
		m.status = terminateStatus(msg)
		if msg.err != nil {
			m.logger.Warn("terminate failed",
				zap.Int32("pid", msg.pid), zap.Error(msg.err))
		} else {
			m.logger.Info("terminated process",
				zap.Int32("pid", msg.pid), zap.String("name", msg.name))
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeConfirm {
			return m.updateConfirm(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeTable
		return m, terminateCmd(m.killer, m.confirm)
	case "n", "N", "esc", "q":
		m.mode = modeTable
		m.status = statusMessage{text: "Termination cancelled.", level: statusInfo}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "p":
		m.sortBy(ColumnPID)
		return m, nil
	case "n":
		m.sortBy(ColumnName)
		return m, nil
	case "c":
		m.sortBy(ColumnCPU)
		return m, nil
	case "m":
		m.sortBy(ColumnMemory)
		return m, nil
	case "+", "=":
		seconds := m.rate.Adjust(intervalStep)
		m.status = statusMessage{text: fmt.Sprintf("Refresh interval: %.1fs", seconds), level: statusInfo}
		return m, nil
	case "-", "_":
		seconds := m.rate.Adjust(-intervalStep)
		m.status = statusMessage{text: fmt.Sprintf("Refresh interval: %.1fs", seconds), level: statusInfo}
		return m, nil
	case "t", "delete":
		if rec, ok := m.selectedRecord(); ok {
			m.confirm = rec
			m.mode = modeConfirm
		} else {
			m.status = statusMessage{text: "No process selected.", level: statusWarn}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// sortBy updates the sort preference and reorders the displayed rows. The
// underlying snapshot keeps its own ordering.
func (m *Model) sortBy(col Column) {
	m.sort.Toggle(col)
	m.rows = SortRecords(m.rows, m.sort)
	m.refreshTable()
}

// applySnapshot replaces the displayed state with the given snapshot,
// re-applying the operator's sticky sort preference.
func (m *Model) applySnapshot(snap *metrics.Snapshot) {
	m.snapshot = snap
	m.rows = SortRecords(snap.Processes, m.sort)
	m.refreshTable()
}

func (m *Model) refreshTable() {
	rows := make([]table.Row, len(m.rows))
	for i, rec := range m.rows {
		rows[i] = table.Row{
			FormatPID(rec.PID),
			rec.Name,
			Percent1(rec.CPUPercent),
			MemoryMB(rec.MemoryBytes),
			rec.Status,
		}
	}
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) selectedRecord() (metrics.ProcessRecord, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return metrics.ProcessRecord{}, false
	}
	return m.rows[cursor], true
}

func terminateCmd(killer metrics.Killer, rec metrics.ProcessRecord) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), terminateTimeout)
		defer cancel()
		err := killer.Terminate(ctx, rec.PID)
		return terminateResultMsg{pid: rec.PID, name: rec.Name, err: err}
	}
}

// terminateStatus maps a terminate outcome onto an operator-facing message,
// distinguishing already-gone, access-denied, and everything else.
func terminateStatus(msg terminateResultMsg) statusMessage {
	switch {
	case msg.err == nil:
		return statusMessage{
			text:  fmt.Sprintf("Process %d terminated.", msg.pid),
			level: statusInfo,
		}
	case errors.Is(msg.err, metrics.ErrNoSuchProcess):
		return statusMessage{
			text:  fmt.Sprintf("Process %d no longer exists.", msg.pid),
			level: statusWarn,
		}
	case errors.Is(msg.err, metrics.ErrAccessDenied):
		return statusMessage{
			text:  fmt.Sprintf("Access denied terminating process %d. Try running with elevated privileges.", msg.pid),
			level: statusError,
		}
	default:
		return statusMessage{
			text:  fmt.Sprintf("Failed to terminate process %d: %v", msg.pid, msg.err),
			level: statusError,
		}
	}
}

// View renders the full screen: title, summary, status, table or confirm
// dialog, and key help.
func (m Model) View() string {
	title := titleStyle.Render("procwatch — real-time process monitor")

	summary := "Waiting for first sample..."
	if m.snapshot != nil {
		sys := m.snapshot.System
		summary = Summary(sys.CPUPercent, m.cores,
			sys.Memory.Percent, sys.Memory.UsedBytes, sys.Memory.TotalBytes,
			len(m.rows))
	}

	status := " "
	switch m.status.level {
	case statusWarn:
		status = statusWarnStyle.Render(m.status.text)
	case statusError:
		status = statusErrorStyle.Render(m.status.text)
	default:
		if m.status.text != "" {
			status = statusInfoStyle.Render(m.status.text)
		}
	}

	body := m.table.View()
	if m.mode == modeConfirm {
		body = dialogStyle.Render(fmt.Sprintf(
			"Terminate process %d (%s)?\n\n[y] yes   [n] no",
			m.confirm.PID, m.confirm.Name))
	}

	help := helpStyle.Render(
		"↑/↓ select  ·  p/n/c/m sort (repeat to reverse)  ·  +/- refresh interval  ·  t terminate  ·  q quit")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n",
		title, summaryStyle.Render(summary), status, body, help)
}
