package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"go_vocab_game/internal/game"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
)

// 画面の再描画間隔 (フィードバック後の自動遷移を拾うため)
const refreshInterval = 100 * time.Millisecond

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	promptStyle  = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 2)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("42")).Padding(0, 2)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// spellModel は GameService 上のスペルゲーム1セッションを表示します
type spellModel struct {
	ctx       context.Context
	svc       service.GameService
	learnerID uuid.UUID
	view      *service.SpellSessionView
	input     textinput.Model
	err       string
}

func newSpellModel(ctx context.Context, svc service.GameService, learnerID uuid.UUID, view *service.SpellSessionView) spellModel {
	in := textinput.New()
	in.Placeholder = "type the English word"
	in.CharLimit = 64
	in.Width = 40
	in.Focus()
	return spellModel{ctx: ctx, svc: svc, learnerID: learnerID, view: view, input: in}
}

func (m spellModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func (m spellModel) apply(view *service.SpellSessionView, err error) spellModel {
	if err != nil {
		m.err = err.Error()
		return m
	}
	m.err = ""
	m.view = view
	return m
}

func (m spellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		view, err := m.svc.GetSpell(m.ctx, m.learnerID, m.view.SessionID)
		if err == nil {
			m.view = view
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlS:
			m = m.apply(m.svc.SkipSpell(m.ctx, m.learnerID, m.view.SessionID))
			m.input.Reset()
			return m, nil
		case tea.KeyCtrlR:
			m = m.apply(m.svc.RestartSpell(m.ctx, m.learnerID, m.view.SessionID))
			m.input.Reset()
			return m, nil
		case tea.KeyEnter:
			if m.view.Game.State == game.SpellComplete {
				return m, tea.Quit
			}
			answer := strings.TrimSpace(m.input.Value())
			if answer == "" {
				return m, nil
			}
			m = m.apply(m.svc.SubmitSpell(m.ctx, m.learnerID, m.view.SessionID, answer))
			m.input.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m spellModel) View() string {
	g := m.view.Game
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Spell  %d/%d  score %d  %ds", min(g.Index+1, g.Total), g.Total, g.Score, g.ElapsedSeconds)))
	b.WriteString("\n\n")

	if g.State == game.SpellComplete && g.Summary != nil {
		b.WriteString(summaryView(g.Summary, m.view.Save))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: quit • ctrl+r: play again"))
		return docStyle.Render(b.String())
	}

	if p := g.Prompt; p != nil {
		prompt := p.Chinese
		if prompt == "" {
			prompt = strings.Repeat("_ ", p.Length)
		}
		if p.Pronunciation != "" {
			prompt += "  /" + p.Pronunciation + "/"
		}
		b.WriteString(promptStyle.Render(prompt))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d letters", p.Length)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if fb := g.Feedback; fb != nil {
		switch {
		case fb.Correct:
			b.WriteString(correctStyle.Render("✓ 正确!"))
		case fb.Answer != "":
			b.WriteString(wrongStyle.Render("✗ 正确答案: " + fb.Answer))
		default:
			b.WriteString(wrongStyle.Render(fmt.Sprintf("✗ 再试一次 (剩余 %d 次)", fb.AttemptsLeft)))
		}
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: submit • ctrl+s: skip • ctrl+r: restart • esc: quit"))
	return docStyle.Render(b.String())
}

func summaryView(s *game.SpellSummary, save service.SaveView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d / %d correct in %ds\n", s.Correct, s.Total, s.Elapsed)
	fmt.Fprintf(&b, "score %d  %s\n", s.Evaluation.Score, s.Evaluation.Text())
	if len(s.DifficultWords) > 0 {
		english := make([]string, 0, len(s.DifficultWords))
		for _, w := range s.DifficultWords {
			english = append(english, w.English)
		}
		fmt.Fprintf(&b, "review: %s\n", strings.Join(english, ", "))
	}
	switch save.Status {
	case model.SaveStatusSaved:
		b.WriteString(correctStyle.Render("session saved"))
	case model.SaveStatusFailed:
		b.WriteString(errorStyle.Render("save failed: " + save.Error))
	case model.SaveStatusSkipped:
		b.WriteString(helpStyle.Render("session not saved"))
	default:
		b.WriteString(helpStyle.Render("saving..."))
	}
	return summaryStyle.Render(b.String())
}
