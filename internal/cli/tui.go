package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dzikrimr/portfolio-web/pkg/carousel"
	"github.com/dzikrimr/portfolio-web/pkg/portfolio"
	"github.com/dzikrimr/portfolio-web/pkg/render"
)

// cellPixels converts terminal columns into the logical pixels the gesture
// threshold is expressed in.
const cellPixels = 8.0

// Card styles
var (
	cardFocusStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)
	cardSideStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Foreground(colorGray).
			Padding(0, 1)
	tagStyle         = lipgloss.NewStyle().Foreground(colorCyan)
	indicatorOn      = lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	indicatorOff     = lipgloss.NewStyle().Foreground(colorDim).Render("○")
	helpStyle        = lipgloss.NewStyle().Foreground(colorDim)
	detailFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorCyan).
				Padding(1, 2)
)

// =============================================================================
// BrowseModel - Interactive carousel
// =============================================================================

// BrowseModel is the bubbletea model of the terminal carousel. Left and
// right navigate, digits jump, enter opens the detail view and a horizontal
// mouse drag behaves like a swipe.
type BrowseModel struct {
	Site     render.Site
	Carousel *carousel.Carousel[portfolio.Project]

	// Gallery is the image controller of the open detail view; nil while
	// the carousel is showing.
	Gallery *carousel.Controller

	recognizer *carousel.Recognizer
	width      int
}

// NewBrowseModel creates a browse model over projects.
func NewBrowseModel(site render.Site, projects []portfolio.Project, policy carousel.Policy, threshold float64) BrowseModel {
	return BrowseModel{
		Site:       site,
		Carousel:   carousel.New(projects, policy),
		recognizer: carousel.NewRecognizer(threshold),
		width:      100,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Gallery != nil {
			return m.updateDetail(msg)
		}
		return m.updateCarousel(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m BrowseModel) updateCarousel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := m.Carousel.Controller()
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		ctl.Retreat()
	case "right", "l":
		ctl.Advance()
	case "enter", " ":
		if p, ok := m.Carousel.Focused(); ok {
			m.Gallery = render.NewGallery(p)
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			ctl.JumpTo(int(key[0] - '1'))
		}
	}
	return m, nil
}

func (m BrowseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.Gallery = nil
	case "left", "h":
		m.Gallery.Retreat()
	case "right", "l":
		m.Gallery.Advance()
	}
	return m, nil
}

// handleMouse feeds left-button press and release positions to the
// recognizer. Motion is ignored; the cards do not follow the pointer.
func (m BrowseModel) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X) * cellPixels
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.recognizer.Start(carousel.SourcePointer, x)
		}
	case tea.MouseActionRelease:
		intent := m.recognizer.End(x)
		if m.Gallery != nil {
			m.Gallery.Apply(intent)
			return
		}
		m.Carousel.Controller().Apply(intent)
	}
}

func (m BrowseModel) View() string {
	if m.Gallery != nil {
		if p, ok := m.Carousel.Focused(); ok {
			return m.viewDetail(p)
		}
	}
	return m.viewCarousel()
}

func (m BrowseModel) viewCarousel() string {
	var b strings.Builder

	b.WriteString(StyleDim.Render(m.Site.Subtitle))
	b.WriteString("\n")
	b.WriteString(StyleTitle.Render(m.Site.Title))
	b.WriteString("\n\n")

	slides := m.Carousel.Slides()
	if len(slides) == 0 {
		b.WriteString(StyleDim.Render("No projects yet."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	b.WriteString(m.lane(slides))
	b.WriteString("\n\n")
	b.WriteString(indicatorRow(m.Carousel.Indicators()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("←/→ navigate  1-9 jump  drag swipe  ⏎ details  q quit"))
	return b.String()
}

// lane lays out the visible cards left to right by their signed distance.
// Cards with zero opacity are hidden, as they are on the web page.
func (m BrowseModel) lane(slides []carousel.Slide[portfolio.Project]) string {
	visible := make([]carousel.Slide[portfolio.Project], 0, len(slides))
	for _, s := range slides {
		if s.Visual.Opacity > 0 {
			visible = append(visible, s)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].Visual.Distance < visible[j].Visual.Distance
	})

	width := m.cardWidth(len(visible))
	boxes := make([]string, len(visible))
	for i, s := range visible {
		boxes[i] = cardBox(s, width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, boxes...)
}

func (m BrowseModel) cardWidth(n int) int {
	if n == 0 {
		return 0
	}
	w := m.width/n - 4
	if w > 36 {
		w = 36
	}
	if w < 16 {
		w = 16
	}
	return w
}

// cardBox draws one card. The focused card is framed and full height; side
// cards shrink with their scale.
func cardBox(s carousel.Slide[portfolio.Project], width int) string {
	p := s.Card
	lines := []string{lipgloss.NewStyle().Bold(true).Render(portfolio.Truncate(p.Title, width-2))}
	if tags := p.CardTags(); len(tags) > 0 {
		lines = append(lines, tagStyle.Render(strings.Join(tags, " · ")))
	}
	lines = append(lines, "", p.CardDescription())
	if p.HasGallery() {
		lines = append(lines, "", StyleDim.Render(formatCount(len(p.Images), "image")))
	}
	body := strings.Join(lines, "\n")

	if s.Visual.Distance == 0 {
		return cardFocusStyle.Width(width).Render(body)
	}
	return cardSideStyle.Width(int(float64(width) * s.Visual.Scale)).Render(body)
}

func indicatorRow(inds []carousel.Indicator) string {
	dots := make([]string, len(inds))
	for i, ind := range inds {
		if ind.Active {
			dots[i] = indicatorOn
		} else {
			dots[i] = indicatorOff
		}
	}
	return strings.Join(dots, " ")
}

func (m BrowseModel) viewDetail(p portfolio.Project) string {
	image, _ := m.Gallery.Focus()
	d := render.Detail{Project: p, Image: image}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(p.Title))
	b.WriteString("\n\n")
	if len(p.Tags) > 0 {
		b.WriteString(tagStyle.Render(strings.Join(p.Tags, " · ")))
		b.WriteString("\n\n")
	}
	b.WriteString(p.Description)
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("image %d/%d  ", image+1, max(len(p.Images), 1))))
	b.WriteString(StyleValue.Render(d.CurrentImage()))
	if p.HasGallery() {
		b.WriteString("\n")
		b.WriteString(indicatorRow(m.Gallery.Indicators()))
	}
	if p.Link != "" {
		b.WriteString("\n\n")
		b.WriteString(StyleLink.Render(p.Link))
	}

	help := "esc close  q quit"
	if p.HasGallery() {
		help = "←/→ images  " + help
	}
	width := m.width - 6
	if width > 80 {
		width = 80
	}
	return detailFrameStyle.Width(width).Render(b.String()) + "\n" + helpStyle.Render(help)
}
