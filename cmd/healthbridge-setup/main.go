package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringName
	stepCreatingUser
	stepSelectingGender
	stepEnteringHeight
	stepEnteringWeight
	stepEnteringDateOfBirth
	stepEnteringConditions
	stepCreatingProfile
	stepComplete
)

var genders = []string{"F", "M", "Other"}

// profileInput is the POST /profiles body.
type profileInput struct {
	UserID            string   `json:"userId"`
	Gender            string   `json:"gender"`
	Height            float64  `json:"height"`
	Weight            float64  `json:"weight"`
	DateOfBirth       string   `json:"dateOfBirth"`
	MedicalConditions []string `json:"medicalConditions,omitempty"`
}

type model struct {
	api          apiClient
	step         step
	cursor       int
	email        string
	name         string
	userID       string
	profile      profileInput
	currentInput string
	message      string
	quitting     bool
}

func initialModel(api apiClient) model {
	return model{
		api:  api,
		step: stepEnteringEmail,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) typing() bool {
	switch m.step {
	case stepEnteringEmail, stepEnteringName, stepEnteringHeight, stepEnteringWeight,
		stepEnteringDateOfBirth, stepEnteringConditions:
		return true
	}
	return false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up":
			if m.step == stepSelectingGender && m.cursor > 0 {
				m.cursor--
			}

		case "down":
			if m.step == stepSelectingGender && m.cursor < len(genders)-1 {
				m.cursor++
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			return m.submit()

		default:
			if m.typing() {
				m.currentInput += msg.String()
			}
		}

	case userCreatedMsg:
		m.userID = msg.userID
		m.profile = profileInput{UserID: msg.userID}
		m.step = stepSelectingGender
		m.message = successStyle.Render("✓ Account created for " + m.email)

	case profileCreatedMsg:
		m.step = stepComplete
		m.message = successStyle.Render("✓ " + msg.message)

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		m.step = msg.back
		m.currentInput = ""
	}

	return m, nil
}

// submit handles Enter for the current step.
func (m model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.currentInput)

	switch m.step {
	case stepEnteringEmail:
		if !strings.Contains(input, "@") {
			m.message = errorStyle.Render("✗ Enter a valid email address")
			return m, nil
		}
		m.email = input
		m.currentInput = ""
		m.message = ""
		m.step = stepEnteringName

	case stepEnteringName:
		m.name = input
		m.currentInput = ""
		m.step = stepCreatingUser
		m.message = "Creating your account..."
		return m, m.api.createUser(m.name, m.email)

	case stepSelectingGender:
		m.profile.Gender = genders[m.cursor]
		m.message = ""
		m.step = stepEnteringHeight

	case stepEnteringHeight, stepEnteringWeight:
		v, err := strconv.ParseFloat(input, 64)
		if err != nil || v <= 0 {
			m.message = errorStyle.Render("✗ Enter a positive number")
			return m, nil
		}
		if m.step == stepEnteringHeight {
			m.profile.Height = v
			m.step = stepEnteringWeight
		} else {
			m.profile.Weight = v
			m.step = stepEnteringDateOfBirth
		}
		m.currentInput = ""
		m.message = ""

	case stepEnteringDateOfBirth:
		if _, err := time.Parse("2006-01-02", input); err != nil {
			m.message = errorStyle.Render("✗ Use the format YYYY-MM-DD")
			return m, nil
		}
		m.profile.DateOfBirth = input
		m.currentInput = ""
		m.message = ""
		m.step = stepEnteringConditions

	case stepEnteringConditions:
		m.profile.MedicalConditions = splitConditions(input)
		m.currentInput = ""
		m.step = stepCreatingProfile
		m.message = "Saving your profile..."
		return m, m.api.createProfile(m.profile)

	case stepComplete:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func splitConditions(input string) []string {
	var out []string
	for _, c := range strings.Split(input, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("HealthBridge Setup\n\n"))
	if m.message != "" && m.step != stepCreatingUser && m.step != stepCreatingProfile && m.step != stepComplete {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringEmail:
		s.WriteString(promptStyle.Render("Enter your email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringName:
		s.WriteString(promptStyle.Render("Enter your name (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepCreatingUser, stepCreatingProfile:
		s.WriteString(m.message + "\n")

	case stepSelectingGender:
		s.WriteString(promptStyle.Render("Select your gender:\n\n"))
		for i, g := range genders {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(g)))
		}
		s.WriteString("\nUse ↑/↓, Enter to choose, Esc to quit\n")

	case stepEnteringHeight:
		s.WriteString(promptStyle.Render("Enter your height in cm:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringWeight:
		s.WriteString(promptStyle.Render("Enter your weight in kg:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringDateOfBirth:
		s.WriteString(promptStyle.Render("Enter your date of birth (YYYY-MM-DD):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringConditions:
		s.WriteString(promptStyle.Render("Medical conditions, comma separated (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepComplete:
		s.WriteString(m.message + "\n")
		s.WriteString(fmt.Sprintf("\nYour user id is %s\n", m.userID))
		s.WriteString("\nPress Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel(newAPIClient(os.Getenv("HEALTHBRIDGE_API_URL"))))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
