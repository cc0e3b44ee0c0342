package tui

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/log"

	"github.com/glabrego/wikiscroll/internal/content"
	"github.com/glabrego/wikiscroll/internal/feed"
	"github.com/glabrego/wikiscroll/internal/logging"
	"github.com/glabrego/wikiscroll/internal/tui/actions"
	"github.com/glabrego/wikiscroll/internal/tui/platform"
	tuitheme "github.com/glabrego/wikiscroll/internal/tui/theme"
	"github.com/glabrego/wikiscroll/internal/tui/view"
)

const (
	InitialBatchSize  = 5
	DefaultCellHeight = 16

	animFPS = 60
	// spring tuned to a stiffness of 300 and damping of 30 at unit mass
	springFrequency = 17.3
	springDamping   = 0.87
	maxSlideRows    = 6
)

type settleMsg struct {
	seq uint64
}

type animFrameMsg struct{}

type Options struct {
	Settle       time.Duration
	CellHeight   int
	InitialBatch int
	Keys         feed.KeyMap
	Logger       *log.Logger
}

type Model struct {
	source     actions.Source
	ctrl       *feed.Controller
	logger     *log.Logger
	theme      tuitheme.Theme
	spinner    spinner.Model
	spring     harmonica.Spring
	cellHeight int
	initial    int

	loading   bool
	loadErr   string
	status    string
	warning   string
	showHelp  bool
	width     int
	height    int
	offset    float64
	velocity  float64
	animating bool

	previewID      int64
	preview        string
	previewLoading bool

	openURLFn     func(string) error
	copyURLFn     func(string) error
	renderImageFn func(context.Context, content.Media, int) (string, error)
}

func NewModel(source actions.Source, opts Options) Model {
	if opts.CellHeight < 1 {
		opts.CellHeight = DefaultCellHeight
	}
	if opts.InitialBatch < 1 {
		opts.InitialBatch = InitialBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		source:        source,
		ctrl:          feed.NewController(feed.NewBuffer(), feed.Config{Settle: opts.Settle, Keys: opts.Keys}),
		logger:        logger.WithPrefix("tui"),
		theme:         tuitheme.Default(),
		spinner:       spin,
		spring:        harmonica.NewSpring(harmonica.FPS(animFPS), springFrequency, springDamping),
		cellHeight:    opts.CellHeight,
		initial:       opts.InitialBatch,
		loading:       source != nil,
		openURLFn:     platform.OpenURLInBrowser,
		copyURLFn:     platform.CopyURLToClipboard,
		renderImageFn: view.RenderImagePreview,
	}
}

func (m Model) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, actions.LoadInitialCmd(m.source, m.initial))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case actions.InitialLoadMsg:
		m.loading = false
		res := msg.Result
		if res.Failed() {
			m.logger.Error("initial load failed", "err", res.Message, "duration", msg.Duration)
			if m.ctrl.Buffer().Len() == 0 {
				m.loadErr = res.Message
			}
			return m, nil
		}
		if w := res.Warning(); w != "" {
			m.logger.Warn("initial load partial", "warning", w, "items", len(res.Items))
			if len(res.Items) == 0 && m.ctrl.Buffer().Len() == 0 {
				m.loadErr = w
				return m, nil
			}
		}
		m.logger.Info("initial load", "items", len(res.Items), "duration", msg.Duration)
		m.loadErr = ""
		m.ctrl.Append(res.Items...)
		return m, nil
	case actions.TopUpMsg:
		res := msg.Result
		if res.Failed() {
			m.logger.Warn("top-up failed", "requested", msg.Requested, "err", res.Message)
			return m, nil
		}
		if w := res.Warning(); w != "" {
			m.logger.Warn("top-up partial", "requested", msg.Requested, "warning", w)
		}
		m.logger.Debug("top-up", "items", len(res.Items), "duration", msg.Duration)
		m.ctrl.Append(res.Items...)
		return m, nil
	case settleMsg:
		m.ctrl.Settle(msg.seq)
		return m, nil
	case animFrameMsg:
		m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, 0)
		if math.Abs(m.offset) < 0.5 && math.Abs(m.velocity) < 0.5 {
			m.offset, m.velocity = 0, 0
			m.animating = false
			return m, nil
		}
		return m, animFrameCmd()
	case actions.LikeSuccessMsg:
		m.ctrl.Buffer().Update(msg.ID, func(item *content.Item) { item.LikeCount = msg.LikeCount })
		m.status = "Liked"
		m.warning = ""
		return m, nil
	case actions.LikeErrorMsg:
		m.logger.Warn("like failed", "id", msg.ID, "err", msg.Err)
		m.status = ""
		m.warning = "Could not like article: " + msg.Err.Error()
		return m, nil
	case actions.OpenURLSuccessMsg:
		m.status = msg.Status
		m.warning = ""
		return m, nil
	case actions.OpenURLErrorMsg:
		m.status = ""
		m.warning = msg.Err.Error()
		return m, nil
	case actions.ImagePreviewSuccessMsg:
		if msg.ID == m.previewID {
			m.preview = msg.Preview
			m.previewLoading = false
		}
		return m, nil
	case actions.ImagePreviewErrorMsg:
		if msg.ID == m.previewID {
			m.previewLoading = false
			m.warning = "Image preview unavailable: " + msg.Err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "esc":
		m.showHelp = false
		return m, nil
	}
	if m.showHelp {
		return m, nil
	}

	switch key {
	case "r":
		if m.ctrl.Buffer().Len() == 0 && !m.loading && m.source != nil {
			m.loading = true
			m.loadErr = ""
			return m, tea.Batch(m.spinner.Tick, actions.LoadInitialCmd(m.source, m.initial))
		}
		return m, nil
	case "l":
		return m.likeCurrent()
	case "o":
		return m.openCurrentURL()
	case "y":
		return m.copyCurrentURL()
	case "i":
		return m.previewCurrentImage()
	}
	return m.navigate(feed.KeyInput{Key: key})
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		return m.navigate(feed.WheelInput{DeltaY: 1})
	case msg.Button == tea.MouseButtonWheelUp:
		return m.navigate(feed.WheelInput{DeltaY: -1})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.navigate(feed.TouchStartInput{Y: m.rowsToPixels(msg.Y)})
	case msg.Action == tea.MouseActionRelease:
		return m.navigate(feed.TouchEndInput{Y: m.rowsToPixels(msg.Y)})
	}
	return m, nil
}

func (m Model) rowsToPixels(row int) float64 {
	return float64(row * m.cellHeight)
}

// navigate feeds one input to the controller and schedules what the step
// asks for: the settle timer, the slide animation and any top-up.
func (m Model) navigate(in feed.Input) (tea.Model, tea.Cmd) {
	step := m.ctrl.Handle(in)
	if step.Discarded {
		m.logger.Debug("input discarded during transition", "direction", step.Direction)
	}
	if !step.Moved {
		return m, nil
	}

	cmds := []tea.Cmd{settleCmd(step.Settle, step.Seq)}
	slide := float64(m.slideRows())
	if step.Direction == feed.DirBackward {
		slide = -slide
	}
	m.offset, m.velocity = slide, 0
	if !m.animating && slide != 0 {
		m.animating = true
		cmds = append(cmds, animFrameCmd())
	}
	if step.TopUp > 0 && m.source != nil {
		m.logger.Debug("requesting top-up", "size", step.TopUp, "cursor", step.To, "len", m.ctrl.Buffer().Len())
		cmds = append(cmds, actions.TopUpCmd(m.source, step.TopUp))
	}
	m.preview = ""
	m.previewLoading = false
	m.status = ""
	m.warning = ""
	return m, tea.Batch(cmds...)
}

func (m Model) likeCurrent() (tea.Model, tea.Cmd) {
	item, ok := m.ctrl.Buffer().Current()
	if !ok || m.source == nil {
		return m, nil
	}
	return m, actions.LikeCmd(m.source, item.ID)
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	item, ok := m.ctrl.Buffer().Current()
	if !ok {
		return m, nil
	}
	url, err := platform.ValidateURL(item.CanonicalURL)
	if err != nil {
		m.warning = err.Error()
		return m, nil
	}
	return m, actions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	item, ok := m.ctrl.Buffer().Current()
	if !ok {
		return m, nil
	}
	url, err := platform.ValidateURL(item.CanonicalURL)
	if err != nil {
		m.warning = err.Error()
		return m, nil
	}
	return m, actions.CopyURLCmd(url, m.copyURLFn)
}

func (m Model) previewCurrentImage() (tea.Model, tea.Cmd) {
	item, ok := m.ctrl.Buffer().Current()
	if !ok || !item.HasMedia() || m.renderImageFn == nil {
		return m, nil
	}
	if m.previewID == item.ID && (m.preview != "" || m.previewLoading) {
		return m, nil
	}
	m.previewID = item.ID
	m.preview = ""
	m.previewLoading = true
	return m, actions.ImagePreviewCmd(item.ID, *item.Media, m.contentWidth(), m.renderImageFn)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("wikiscroll") + " " + m.theme.ModePill.Render("feed") + "\n")

	if m.showHelp {
		b.WriteString("Help (? to close)\n\n")
		b.WriteString(strings.Join(view.HelpLines(), "\n"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(view.Toolbar())
	b.WriteString("\n\n")

	buf := m.ctrl.Buffer()
	switch {
	case buf.Len() == 0 && m.loading:
		b.WriteString(m.spinner.View() + " Finding interesting articles...\n")
	case buf.Len() == 0 && m.loadErr != "":
		b.WriteString(view.ErrorPanel(m.loadErr, m.contentWidth(), m.theme))
		b.WriteString("\n")
	case buf.Len() == 0:
		b.WriteString("No articles available.\n")
	default:
		item, _ := buf.Current()
		preview := ""
		if item.ID == m.previewID {
			preview = m.preview
			if m.previewLoading {
				preview = "Loading image preview..."
			}
		}
		if preview == "" && view.SupportsKittyGraphics() {
			b.WriteString(view.ClearKittyGraphicsSequence())
		}
		card := view.Card(item, m.contentWidth(), m.cardHeight(), preview, m.theme)
		b.WriteString(slide(card, int(math.Round(m.offset))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(view.Message(m.loading, m.status, m.warning, m.theme))
	b.WriteString("\n")
	if buf.Len() > 0 {
		b.WriteString(view.Footer(buf.Cursor()+1, buf.Len(), m.ctrl.State().String(), m.theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) cardHeight() int {
	if m.height <= 0 {
		return 24
	}
	// title, toolbar, blank, blank, message, footer
	return max(m.height-6, 8)
}

func (m Model) slideRows() int {
	return min(maxSlideRows, m.cardHeight()/3)
}

// slide shifts a rendered card down (positive) or up (negative) by rows.
func slide(card string, rows int) string {
	switch {
	case rows > 0:
		return strings.Repeat("\n", rows) + card
	case rows < 0:
		lines := strings.Split(card, "\n")
		if -rows >= len(lines) {
			return ""
		}
		return strings.Join(lines[-rows:], "\n")
	default:
		return card
	}
}

func settleCmd(after time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return settleMsg{seq: seq}
	})
}

func animFrameCmd() tea.Cmd {
	return tea.Tick(time.Second/animFPS, func(time.Time) tea.Msg {
		return animFrameMsg{}
	})
}
