package viz

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/afmlab/afmsim/internal/afm"
	"github.com/afmlab/afmsim/internal/scan"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	sweepStep    = 6 // scan positions advanced per tick
	controlStep  = 0.05
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// Model is the interactive scan viewer. A full scan is computed up
// front and replayed as a left-to-right sweep; changing the profile or
// the tip triggers a fresh scan and restarts the sweep.
type Model struct {
	session *scan.Session
	spec    scan.RunSpec
	out     *scan.Output
	scanErr error

	canvas     *Canvas
	view       Viewport
	pos        int
	fps        int
	profileIdx int
	running    bool
	recording  bool
	frames     []*image.Paletted
	showHelp   bool
}

// FrameRate maps a normalized speed control onto the playable frame
// rate band. Out-of-range speeds clamp to the band edges.
func FrameRate(p afm.Params, speed float64) int {
	if speed < 0 {
		speed = 0
	}
	if speed > 1 {
		speed = 1
	}
	return p.MinFrameRate + int(math.Round(speed*float64(p.MaxFrameRate-p.MinFrameRate)))
}

// NewModel runs the initial scan and prepares the sweep.
func NewModel(session *scan.Session, spec scan.RunSpec, fps int) Model {
	m := Model{
		session: session,
		spec:    spec,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		fps:     fps,
		running: true,
	}
	for i, p := range afm.Profiles() {
		if p == spec.Profile {
			m.profileIdx = i
		}
	}
	m.clampFPS()
	m.rescan()
	return m
}

func (m *Model) clampFPS() {
	p := m.session.Params()
	if m.fps < p.MinFrameRate {
		m.fps = p.MinFrameRate
	}
	if m.fps > p.MaxFrameRate {
		m.fps = p.MaxFrameRate
	}
}

// rescan recomputes the scan for the current spec and resets the sweep.
func (m *Model) rescan() {
	m.out, m.scanErr = m.session.Run(context.Background(), m.spec)
	m.pos = 0
	if m.scanErr != nil {
		return
	}
	m.view = FitViewport(m.canvas,
		[][]float64{m.out.Surface.X, m.out.Result.X},
		[][]float64{m.out.Surface.Y, m.out.Result.Trace},
	).Headroom(0.35)
}

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick(m.fps)
}

// Update handles key input and sweep ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.pos = 0
		case "tab":
			profiles := afm.Profiles()
			m.profileIdx = (m.profileIdx + 1) % len(profiles)
			m.spec.Profile = profiles[m.profileIdx]
			m.rescan()
		case "k":
			switch m.spec.Tip.Kind {
			case afm.TipNormal:
				m.spec.Tip.Kind = afm.TipSheared
			case afm.TipSheared:
				m.spec.Tip.Kind = afm.TipMultiPeak
			default:
				m.spec.Tip.Kind = afm.TipNormal
			}
			m.rescan()
		case "c":
			m.spec.Tip.Contaminated = !m.spec.Tip.Contaminated
			m.rescan()
		case "up":
			m.spec.Tip.RadiusControl = clamp01(m.spec.Tip.RadiusControl + controlStep)
			m.rescan()
		case "down":
			m.spec.Tip.RadiusControl = clamp01(m.spec.Tip.RadiusControl - controlStep)
			m.rescan()
		case "right":
			m.spec.Tip.WidthControl = clamp01(m.spec.Tip.WidthControl + controlStep)
			m.rescan()
		case "left":
			m.spec.Tip.WidthControl = clamp01(m.spec.Tip.WidthControl - controlStep)
			m.rescan()
		case "+", "=":
			m.fps += 5
			m.clampFPS()
		case "-", "_":
			m.fps -= 5
			m.clampFPS()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.out != nil {
			m.pos += sweepStep
			if m.pos >= len(m.out.Result.Trace) {
				m.pos = 0
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick(m.fps)
	}
	return m, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// draw renders the current sweep frame: surface outline, the partial
// trace, and the tip lowered to its contact height.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.out == nil {
		return
	}

	m.canvas.Polyline(m.view, m.out.Surface.X, m.out.Surface.Y)

	res := m.out.Result
	end := m.pos + 1
	if end > len(res.Trace) {
		end = len(res.Trace)
	}
	m.canvas.Polyline(m.view, res.X[:end], res.Trace[:end])

	g := m.out.Tip
	lowX, lowY := g.Xtip[0], g.Ytip[0]
	for i := range g.Ytip {
		if g.Ytip[i] < lowY {
			lowY, lowX = g.Ytip[i], g.Xtip[i]
		}
	}
	at := g.Translated(res.X[m.pos]-lowX, res.Apex[m.pos]-g.CenterY)
	m.canvas.Polyline(m.view, at.Xtip, at.Ytip)

	m.canvas.Marker(m.view, res.X[m.pos], res.Trace[m.pos])
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	primary := lipgloss.NewStyle().Foreground(CurrentTheme.Primary)
	canvasView := canvasStyle.Render(primary.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(headerStyle.Render("AFM LINE SCAN") + "\n")

	status := StatusRunning.Render("SCANNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render("REC ●")
	}
	s.WriteString(status + "\n\n")

	if m.scanErr != nil {
		s.WriteString(fmt.Sprintf("scan error: %v\n", m.scanErr))
		return canvasStyle.Render(s.String())
	}

	res := m.out.Result
	if m.pos > 1 {
		start := 0
		if m.pos > 150 {
			start = m.pos - 150
		}
		chart := asciigraph.Plot(res.Trace[start:m.pos+1],
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Trace"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	in := m.spec.Tip
	s.WriteString(labelStyle.Render("Profile") + valueStyle.Render(string(m.spec.Profile)) + "\n")
	s.WriteString(labelStyle.Render("Tip") + valueStyle.Render(in.Kind.String()) + "\n")
	s.WriteString(labelStyle.Render("Radius") + valueStyle.Render(fmt.Sprintf("%.2f nm (ctl %.2f)", m.out.Tip.Radius, in.RadiusControl)) + "\n")
	s.WriteString(labelStyle.Render("Half-width") + valueStyle.Render(fmt.Sprintf("%.2f nm (ctl %.2f)", m.out.Tip.HalfWidth, in.WidthControl)) + "\n")
	contam := "no"
	if in.Contaminated {
		contam = "yes"
	}
	s.WriteString(labelStyle.Render("Contaminated") + valueStyle.Render(contam) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("%.1f nm", res.X[m.pos])) + "\n")
	s.WriteString(labelStyle.Render("Height") + valueStyle.Render(fmt.Sprintf("%.3f nm", res.Trace[m.pos])) + "\n")

	if len(m.out.Metrics) > 0 {
		s.WriteString("\n")
		names := make([]string, 0, len(m.out.Metrics))
		for name := range m.out.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s.WriteString(MetricLabel.Render(fmt.Sprintf("%-14s", name)) + MetricValue.Render(fmt.Sprintf("%.4f", m.out.Metrics[name])) + "\n")
		}
	}

	s.WriteString("\n" + Separator(30) + "\n")
	progress := float64(m.pos) / float64(len(res.Trace)-1)
	s.WriteString(ProgressBar(progress, 30) + "\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("%d fps, theme %s", m.fps, CurrentTheme.Name)) + "\n")

	s.WriteString("\n" + KeyHint.Render("SP:Pause R:Restart Q:Quit ?:Help\nTab:Profile K:Tip C:Contam\n↑↓:Radius ←→:Width +-:Speed\nT:Theme G:Record"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		help := GlassPanel.Render(strings.Join([]string{
			"KEYBOARD SHORTCUTS",
			"",
			"Space      pause/resume sweep",
			"R          restart sweep",
			"Q          quit",
			"Tab        cycle surface profile",
			"K          cycle tip kind",
			"C          toggle contamination",
			"Up/Down    tip radius control",
			"Left/Right tip width control",
			"+ / -      sweep speed",
			"G          toggle GIF recording",
			"T          cycle themes",
			"?          toggle this help",
		}, "\n"))
		return help + "\n" + mainView
	}
	return mainView
}

// captureFrame rasterizes the braille canvas into a paletted image.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			r := m.canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 100/m.fps)
	}
	f, err := os.Create("scan.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}
