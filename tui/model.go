// Package tui показывает экран поиска погоды в терминале (Bubble Tea).
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-lookup/screen"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cityStyle  = lipgloss.NewStyle().Bold(true)
	tempStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	hintStyle  = lipgloss.NewStyle().Faint(true)

	titleCase = cases.Title(language.Und)
)

type Model struct {
	ctx      context.Context
	lookup   screen.Lookuper
	provider string

	state   screen.State
	input   textinput.Model
	spinner spinner.Model
}

func New(ctx context.Context, l screen.Lookuper, provider string) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter city name..."
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.Width = 30
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		lookup:   l,
		provider: provider,
		state:    screen.Initial(),
		input:    ti,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			var req *screen.Request
			m, req = m.submit()
			if req == nil {
				return m, nil
			}
			return m, tea.Batch(m.lookupCmd(*req), m.spinner.Tick)
		}

		// любая другая клавиша возвращает фокус в поле ввода
		var cmds []tea.Cmd
		if !m.input.Focused() {
			cmds = append(cmds, m.input.Focus())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.state, _ = screen.Reduce(m.state, screen.QueryChanged{Query: m.input.Value()})
		return m, tea.Batch(cmds...)

	case screen.Succeeded:
		return m.complete(msg), nil

	case screen.Failed:
		return m.complete(msg), nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit применяет нажатие "Search"; Request nil если запрос не нужен
func (m Model) submit() (Model, *screen.Request) {
	next, req := screen.Reduce(m.state, screen.Submitted{})
	m.state = next
	return m, req
}

// lookupCmd выполняет запрос вне цикла событий, результат придет сообщением
func (m Model) lookupCmd(req screen.Request) tea.Cmd {
	ctx, l := m.ctx, m.lookup
	return func() tea.Msg {
		return screen.Perform(ctx, l, req)
	}
}

func (m Model) complete(e screen.Event) Model {
	m.state, _ = screen.Reduce(m.state, e)
	m.syncFocus()
	return m
}

// syncFocus "прячет клавиатуру" после успешного поиска
func (m *Model) syncFocus() {
	switch {
	case m.state.InputFocused && !m.input.Focused():
		m.input.Focus()
	case !m.state.InputFocused && m.input.Focused():
		m.input.Blur()
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Weather App"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	v := screen.Render(m.state)
	switch {
	case v.Loading:
		b.WriteString(m.spinner.View() + " Loading...")
	case v.Error != "":
		b.WriteString(errorStyle.Render(v.Error))
	case v.HasWeather:
		b.WriteString(v.Icon + "\n")
		b.WriteString(cityStyle.Render(v.Location) + "\n")
		b.WriteString(tempStyle.Render(v.Temperature) + "\n")
		b.WriteString(titleCase.String(v.Description))
	}

	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter: поиск • esc: выход • " + m.provider))
	b.WriteString("\n")

	return b.String()
}

// Run запускает экран и блокируется до выхода
func Run(ctx context.Context, l screen.Lookuper, provider string) error {
	p := tea.NewProgram(New(ctx, l, provider), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
