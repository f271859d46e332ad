// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages the name carousel, a status bar, and an input
// prompt at the bottom of the terminal. All application output is
// printed above the rendered area via Program.Println / Printf,
// ensuring concurrent writes never garble the display.
//
// UI implements [domain.Presenter]: the draw loop publishes its speed
// every frame and the carousel advances proportionally; the reveal
// swaps the carousel for a winner panel and a short confetti burst.
package display

import (
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/nebulapick/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// ── Output styles (soft palette) ──

	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Primary text — light zinc for messages.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text — dimmed zinc for hints, tips, metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Urgent — soft coral for errors/alerts.
	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))

	// ── Carousel and reveal styles ──

	carouselDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#52525b"))

	carouselFocusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fde68a")).
				Bold(true)

	winnerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#fde68a")).
			Padding(0, 3)

	winnerNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fef3c7")).
			Bold(true)

	winnerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bbf7d0"))

	confettiPalette = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ddd6fe")),
	}
)

// Status is a snapshot of application state shown in the bar.
type Status struct {
	PoolSize    int
	WinnerCount int
	SoundOn     bool
	Phase       domain.Phase
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking).  Other goroutines may
// safely call [UI.Println], [UI.Printf], the [domain.Presenter]
// methods, and read from [UI.InputChan] at any time after
// [UI.WaitReady] returns.
type UI struct {
	program  *tea.Program
	inputCh  chan string
	readyCh  chan struct{}
	quitCh   chan struct{}
	pool     domain.PoolSource
	statusFn func() Status
	done     atomic.Bool
}

var _ domain.Presenter = (*UI)(nil)

// NewUI creates the display. statusFn is polled once per animation
// frame for the bar. Call Run() to start.
func NewUI(pool domain.PoolSource, statusFn func() Status) *UI {
	return &UI{
		pool:     pool,
		statusFn: statusFn,
		inputCh:  make(chan string, 16),
		readyCh:  make(chan struct{}),
		quitCh:   make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
// The output is printed on its own line.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format, a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintMessage prints a primary-text line.
func (u *UI) PrintMessage(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("nebula") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// ── Presenter ────────────────────────────────────────────────────

// PublishSpeed feeds the current draw speed to the carousel. The
// carousel advances proportionally to the published value.
func (u *UI) PublishSpeed(speed float64) {
	u.send(speedMsg(speed))
}

// RevealWinners stops the carousel and shows the winner panel.
func (u *UI) RevealWinners(winners domain.WinnerSet) {
	u.send(revealMsg{winners: winners})
}

// Celebrate triggers a confetti burst sized by the winner count.
func (u *UI) Celebrate(count int) {
	u.send(celebrateMsg{count: count})
}

// DismissWinners clears the winner panel.
func (u *UI) DismissWinners() {
	u.send(dismissMsg{})
}

func (u *UI) send(msg tea.Msg) {
	if u.program != nil && !u.done.Load() {
		u.program.Send(msg)
	}
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop.  Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Use a plain-text prompt so the textinput width math stays correct.
	// Lipgloss-styled prompts add invisible ANSI bytes that break the
	// internal offset/scroll calculations for long input.
	ti.Prompt = "nebula> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		pool:     u.pool,
		statusFn: u.statusFn,
		input:    ti,
		inputCh:  u.inputCh,
		readyCh:  u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// Teardown is an alias for Quit kept for drop-in compatibility.
func (u *UI) Teardown() { u.Quit() }

// ── Bubble Tea model ─────────────────────────────────────────────

const (
	// carouselRows is how many names the spinning window shows.
	carouselRows = 5
	// frameEvery is the UI animation cadence, independent of the
	// draw loop's frame rate.
	frameEvery = 50 * time.Millisecond
	// speedFrameSeconds converts a published speed into a carousel
	// step fraction. The draw loop publishes at its own frame rate;
	// treating each message as one sixtieth of a second keeps the
	// visible spin rate tied to the curve.
	speedFrameSeconds = 1.0 / 60.0
)

type model struct {
	pool     domain.PoolSource
	statusFn func() Status
	input    textinput.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	echoFn   func(string)

	names    []string
	status   Status
	width    int
	spinning bool
	pos      int     // carousel index into names
	acc      float64 // fractional carousel advance

	winners  domain.WinnerSet
	confetti int // animation frames of confetti remaining
}

// Messages.
type frameMsg time.Time
type speedMsg float64
type revealMsg struct{ winners domain.WinnerSet }
type celebrateMsg struct{ count int }
type dismissMsg struct{}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		frameCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Return a Cmd that prints the echo — this runs
				// outside Update so it won't deadlock on msgs.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = 8 // "nebula> "
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case frameMsg:
		m.names = m.pool.Snapshot()
		if m.statusFn != nil {
			m.status = m.statusFn()
		}
		if m.confetti > 0 {
			m.confetti--
		}
		return m, frameCmd()

	case speedMsg:
		m.spinning = true
		m.advance(float64(msg))
		return m, nil

	case revealMsg:
		m.spinning = false
		m.winners = msg.winners
		return m, nil

	case celebrateMsg:
		// Burst length scales with the number of winners.
		m.confetti = 20 + msg.count*10
		return m, nil

	case dismissMsg:
		m.winners = nil
		m.confetti = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// advance steps the carousel by speed names per second, accumulating
// fractional progress between frames.
func (m *model) advance(speed float64) {
	if len(m.names) == 0 {
		return
	}
	m.acc += speed * speedFrameSeconds
	steps := int(m.acc)
	if steps > 0 {
		m.acc -= float64(steps)
		m.pos = (m.pos + steps) % len(m.names)
	}
}

func (m model) View() string {
	var b strings.Builder

	if len(m.winners) > 0 {
		b.WriteString(m.renderWinners())
		b.WriteByte('\n')
	} else if m.spinning && len(m.names) > 0 {
		b.WriteString(m.renderCarousel())
		b.WriteByte('\n')
	}

	if m.confetti > 0 {
		b.WriteString(m.renderConfetti())
		b.WriteByte('\n')
	}

	b.WriteString(m.renderBar())
	b.WriteByte('\n')

	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderCarousel() string {
	var b strings.Builder
	half := carouselRows / 2
	for i := -half; i <= half; i++ {
		idx := ((m.pos+i)%len(m.names) + len(m.names)) % len(m.names)
		name := m.names[idx]
		if i == 0 {
			b.WriteString(carouselFocusStyle.Render("  ▶ " + name))
		} else {
			b.WriteString(carouselDimStyle.Render("    " + name))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m model) renderWinners() string {
	var lines []string
	title := "WINNER"
	if len(m.winners) > 1 {
		title = fmt.Sprintf("WINNERS (%d)", len(m.winners))
	}
	lines = append(lines, winnerTitleStyle.Render("★ "+title+" ★"))
	for _, w := range m.winners {
		lines = append(lines, winnerNameStyle.Render(strings.ReplaceAll(w, "_", " ")))
	}
	box := winnerBoxStyle.Render(strings.Join(lines, "\n"))

	w := m.width
	if w <= 0 {
		w = 80
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, box)
}

func (m model) renderConfetti() string {
	glyphs := []rune{'*', '·', '✦', '•', '✧'}
	w := m.width
	if w <= 0 {
		w = 80
	}
	cells := make([]string, w)
	for i := range cells {
		cells[i] = " "
	}
	// Density fades as the burst winds down.
	n := m.confetti
	if n > w/3 {
		n = w / 3
	}
	for i := 0; i < n; i++ {
		col := rand.Intn(w)
		style := confettiPalette[rand.Intn(len(confettiPalette))]
		cells[col] = style.Render(string(glyphs[rand.Intn(len(glyphs))]))
	}
	return strings.Join(cells, "")
}

func (m model) renderBar() string {
	sound := "off"
	if m.status.SoundOn {
		sound = "on"
	}
	parts := []string{
		labelStyle.Render("pool: ") + valueStyle.Render(fmt.Sprintf("%d", m.status.PoolSize)),
		labelStyle.Render("winners: ") + valueStyle.Render(fmt.Sprintf("%d", m.status.WinnerCount)),
		labelStyle.Render("sound: ") + valueStyle.Render(sound),
		labelStyle.Render("phase: ") + valueStyle.Render(m.status.Phase.String()),
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}
