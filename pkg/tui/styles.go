package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorOrange      = lipgloss.Color("#D19A66")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	ScoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// List item styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)

	CompleteStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	OpenStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	OngoingStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	PenaltyStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DepthIndent = "  "
)

// Section header styles
var (
	SectionOpenStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorOrange)

	SectionOngoingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBlue)

	SectionCompleteStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorGreen)
)

// Detail panel styles
var (
	DetailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWhite)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Width(12)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(ColorOffWhite)

	BarFilledStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorGrayDim)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)
)

// Search styles
var (
	ColorSearchRowBg  = lipgloss.Color("#1E1A2E")
	ColorSearchCharBg = lipgloss.Color("#2E2545")

	SearchBarStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	SearchRowStyle = lipgloss.NewStyle().
			Background(ColorSearchRowBg)

	SearchCharStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple).
			Background(ColorSearchCharBg)

	SearchCharSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPurple).
				Background(ColorSelectionBg)

	SearchCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)
)

// Status icons
const (
	IconComplete = "✓"
	IconOpen     = "○"
	IconOngoing  = "∞"
	IconPenalty  = "−"
)
