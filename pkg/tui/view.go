package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stefanpenner/quest/pkg/quest"
)

const minWidth = 40
const minHeight = 10

const barWidth = 20

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2

	searchActive := m.isSearching || m.searchQuery != ""
	if searchActive {
		headerLines++
		b.WriteString(m.renderSearchBar(w))
		b.WriteString("\n")
	}
	if m.isInputMode {
		headerLines++
		b.WriteString(m.renderInputLine())
		b.WriteString("\n")
	}

	contentHeight := h - headerLines - footerLines

	leftWidth := w * 2 / 5
	if leftWidth < 20 {
		leftWidth = 20
	}
	rightWidth := w - leftWidth - 1
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftPanel := m.renderListPanel(leftWidth, contentHeight)
	rightPanel := m.renderDetailPanel(rightWidth, contentHeight)

	sep := lipgloss.NewStyle().Foreground(ColorGrayDim).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Eternal Quest")
	score := ScoreStyle.Render(fmt.Sprintf("Score %d · Level %d", m.reg.Score(), m.reg.Level()))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = StatusStyle.Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(score) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + status + score
}

func (m Model) renderInputLine() string {
	label := map[wizardStep]string{
		stepKind:   "Kind",
		stepName:   "Name",
		stepPoints: "Points",
		stepExtra:  "Count",
	}[m.step]
	return InputPromptStyle.Render("New goal · "+label+" > ") + m.textInput.View()
}

func (m Model) renderSearchBar(width int) string {
	prefix := SearchBarStyle.Render(" / ")
	query := SearchBarStyle.Render(m.searchQuery)
	cursor := ""
	if m.isSearching {
		cursor = SearchBarStyle.Render("█")
	}

	countStr := ""
	if m.searchQuery != "" {
		countStr = SearchCountStyle.Render(fmt.Sprintf(" %d matches", countGoalItems(m.visibleItems)))
	}

	left := prefix + query + cursor
	padWidth := width - lipgloss.Width(left) - lipgloss.Width(countStr)
	if padWidth < 1 {
		padWidth = 1
	}
	return left + strings.Repeat(" ", padWidth) + countStr
}

func (m Model) renderListPanel(width, height int) string {
	var lines []string

	// last line holds the snapshot path
	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.visibleItems) == 0 {
		if m.searchQuery != "" {
			lines = append(lines, FooterStyle.Render("No goals match."))
		} else {
			lines = append(lines, FooterStyle.Render("No goals yet. Press 'a' to add one."))
		}
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.visibleItems)
	if len(m.visibleItems) > listHeight {
		startIdx = m.cursor - listHeight/2
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + listHeight
		if endIdx > len(m.visibleItems) {
			endIdx = len(m.visibleItems)
			startIdx = endIdx - listHeight
		}
	}

	for i := startIdx; i < endIdx; i++ {
		item := m.visibleItems[i]
		if item.IsSectionHeader {
			lines = append(lines, renderSectionHeader(item, width))
			continue
		}
		lines = append(lines, m.renderListItem(item, i == m.cursor, width))
	}

	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	path := m.store.SnapshotPath()
	lines = append(lines, lipgloss.NewStyle().Foreground(ColorGrayDim).Render(fileHyperlink(path)))

	return strings.Join(lines, "\n")
}

func renderSectionHeader(item ListItem, width int) string {
	var style lipgloss.Style
	switch item.Section {
	case SectionOpen:
		style = SectionOpenStyle
	case SectionOngoing:
		style = SectionOngoingStyle
	default:
		style = SectionCompleteStyle
	}

	label := style.Render("── " + item.Name + " ")
	if remaining := width - lipgloss.Width(label); remaining > 0 {
		label += lipgloss.NewStyle().Foreground(ColorGrayDim).Render(strings.Repeat("─", remaining))
	}
	return label
}

func statusIcon(g quest.Goal) string {
	switch {
	case g.Kind() == quest.KindNegative:
		return PenaltyStyle.Render(IconPenalty)
	case g.Kind() == quest.KindEternal:
		return OngoingStyle.Render(IconOngoing)
	case g.Completed():
		return CompleteStyle.Render(IconComplete)
	default:
		return OpenStyle.Render(IconOpen)
	}
}

func (m Model) renderListItem(item ListItem, isSelected bool, width int) string {
	name := item.Name
	isMatch := m.searchQuery != ""
	if isMatch {
		if isSelected {
			name = highlightMatch(name, m.searchQuery, SearchCharSelectedStyle, SelectedStyle)
		} else {
			name = highlightMatch(name, m.searchQuery, SearchCharStyle, SearchRowStyle)
		}
	}

	line := DepthIndent + statusIcon(item.Goal) + " " + name + FooterStyle.Render(progressSuffix(item.Goal))

	if lineWidth := lipgloss.Width(line); lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}

	switch {
	case isSelected:
		line = SelectedStyle.Render(line)
	case isMatch:
		line = SearchRowStyle.Render(line)
	}
	return line
}

func progressSuffix(g quest.Goal) string {
	switch g := g.(type) {
	case *quest.Checklist:
		return fmt.Sprintf(" %d/%d", g.Count(), g.Target())
	case *quest.Progress:
		return fmt.Sprintf(" %d/%d", g.Current(), g.Total())
	default:
		return ""
	}
}

func (m Model) renderDetailPanel(width, height int) string {
	item, ok := m.selected()
	if !ok {
		return FooterStyle.Render(" Select a goal to see details")
	}
	g := item.Goal

	var lines []string
	lines = append(lines, " "+DetailTitleStyle.Render(g.Name()), "")

	row := func(label, value string) {
		lines = append(lines, " "+DetailLabelStyle.Render(label)+DetailValueStyle.Render(value))
	}

	row("Kind", g.Kind().String())
	switch g := g.(type) {
	case *quest.Checklist:
		row("Points", fmt.Sprintf("%d (%d on completion)", g.Points(), g.Bonus()))
	case *quest.Negative:
		row("Penalty", fmt.Sprintf("%d", g.Points()))
	default:
		row("Points", fmt.Sprintf("%d", g.Points()))
	}
	row("Status", string(item.Section))

	switch g := g.(type) {
	case *quest.Checklist:
		row("Progress", progressBar(g.Count(), g.Target())+fmt.Sprintf(" %d/%d", g.Count(), g.Target()))
	case *quest.Progress:
		row("Progress", progressBar(g.Current(), g.Total())+fmt.Sprintf(" %d/%d", g.Current(), g.Total()))
	}

	lines = append(lines, "", " "+FooterStyle.Render(g.Display()))

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = done * barWidth / total
	}
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp()
	switch {
	case m.isInputMode:
		help = "enter confirm  esc cancel"
	case m.isSearching:
		help = "type to search  enter/↓ keep filter  esc clear"
	case m.searchQuery != "":
		help = "esc clear filter  ↑↓ nav  space record"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

// highlightMatch styles the first case-insensitive occurrence of query with
// charStyle and the rest of name with rowStyle.
func highlightMatch(name, query string, charStyle, rowStyle lipgloss.Style) string {
	runes := []rune(name)
	n := utf8.RuneCountInString(query)
	idx := -1
	if n > 0 {
		for i := 0; i+n <= len(runes); i++ {
			if strings.EqualFold(string(runes[i:i+n]), query) {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return rowStyle.Render(name)
	}
	before := string(runes[:idx])
	match := string(runes[idx : idx+n])
	after := string(runes[idx+n:])

	var result string
	if before != "" {
		result += rowStyle.Render(before)
	}
	result += charStyle.Render(match)
	if after != "" {
		result += rowStyle.Render(after)
	}
	return result
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		if lineWidth := lipgloss.Width(line); lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}
	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}
	return result.String()
}

func countGoalItems(items []ListItem) int {
	n := 0
	for _, item := range items {
		if !item.IsSectionHeader {
			n++
		}
	}
	return n
}
