package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/exprx/ext"
	"github.com/ardnew/exprx/lang"
	"github.com/ardnew/exprx/log"
	"github.com/ardnew/exprx/value"
)

const prompt = "➜ "

const helpMessage = `Commands:

  :ctx [FILE]       Show the context, or replace it with FILE (YAML or JSON)
  :help [NAME]      Print this help, or describe a function or constant
  :list [KIND]      List functions and constants (KIND: functions, constants)
  :clear            Clear screen
  :quit             Exit

Usage:
  Type an expression to evaluate it; the context is bound to %s
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates, Enter to accept
  Press Esc to restore the text from before cycling
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)

	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// Config configures a REPL session.
type Config struct {
	// Ext selects the extension groups installed into every expression.
	Ext ext.Config
	// Data is the initial context.
	Data any
	// Name is the identifier the context is bound to; "$" if empty.
	Name string
	// HistoryDir is the directory holding the history file. History is kept
	// in memory only when empty.
	HistoryDir string
	Logger     log.Logger
	// Load decodes the file named by the :ctx command.
	Load func(path string) (any, error)
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// session holds the state shared by every copy of the model.
type session struct {
	data any
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	cfg          Config
	input        textinput.Model
	session      *session
	cache        *lang.Cache
	complete     completer
	sigs         signatures
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts an interactive session and blocks until the user quits or ctx
// is done.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var path string
	if cfg.HistoryDir != "" {
		path = filepath.Join(cfg.HistoryDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", path),
			log.Err(err),
		)
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("history", path),
		slog.Int("entries", history.Len()),
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}

	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	_, err = tea.NewProgram(newModel(ctx, cfg, history), opts...).Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	if cfg.Name == "" {
		cfg.Name = "$"
	}

	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	s := &session{data: cfg.Data}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		cfg:        cfg,
		input:      ti,
		session:    s,
		cache:      lang.NewCache(),
		complete:   newCompleter(cfg.Ext, cfg.Name, func() any { return s.data }),
		sigs:       newSignatures(cfg.Ext),
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine returns the line shown below the input.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		return hintStyle.Render("Type an expression, or " + commandPrefix + "help")
	}

	if !strings.HasPrefix(input, commandPrefix) && !m.tabActive {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			if hint := m.sigs.hint(call.name, call.argIndex); hint != "" {
				return hint
			}
		}
	}

	return m.renderCandidateBar()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.cfg.Logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current candidate without executing.
		m.tabActive = false
		m.refreshMatches(true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1), nil

	case tea.KeyDown:
		return m.historyStep(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches(false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		m.refreshMatches(true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, ...) edits without
	// auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches(false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the current word with s and moves the cursor after it.
func (m *model) replaceWord(s string) {
	input := m.input.Value()
	cursor := m.wordStart + len(s)

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input. With
// autoConfirm set, a sole candidate equal to the typed word is accepted.
func (m *model) refreshMatches(autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// historyStep moves through history by step. Moving past the newest entry
// clears the input.
func (m model) historyStep(step int) model {
	idx := m.historyIdx + step
	if idx < 0 {
		return m
	}

	m.tabActive = false

	line, err := m.history.Entry(idx)
	if err != nil {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches(false)

		return m
	}

	m.historyIdx = idx
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.refreshMatches(false)

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(line); err != nil {
		m.cfg.Logger.WarnContext(m.ctxFunc(), "could not save history", log.Err(err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(line))

	if cmd, ok := strings.CutPrefix(line, commandPrefix); ok {
		out, act := m.command(cmd)

		switch act {
		case actionQuit:
			m.quitting = true

			return m, tea.Sequence(echo, tea.Quit)
		case actionClear:
			return m, tea.ClearScreen
		case actionError:
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render(out)))
		default:
			return m, tea.Sequence(echo, tea.Println(out))
		}
	}

	out, err := m.evaluate(line)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// evaluate runs source against the current context.
func (m model) evaluate(source string) (string, error) {
	ctx := m.ctxFunc()

	x := ext.Apply(
		lang.New(source,
			lang.WithLogger(m.cfg.Logger),
			lang.WithCache(m.cache),
		),
		m.cfg.Ext,
	).Bind(m.cfg.Name, m.session.data)

	result, err := x.Exec(ctx)

	m.cfg.Logger.TraceContext(ctx, "repl eval",
		slog.String("source", source),
		slog.String("kind", value.Of(result).String()),
		slog.Bool("failed", err != nil),
	)

	if err != nil {
		return "", err
	}

	return lang.FormatResult(result), nil
}

// action is the effect of a REPL command on the session.
type action int

const (
	actionPrint action = iota
	actionError
	actionClear
	actionQuit
)

// command executes a REPL command line without its prefix.
func (m model) command(line string) (string, action) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return "", actionQuit

	case "c", "clear":
		return "", actionClear

	case "h", "help":
		if arg == "" {
			return fmt.Sprintf(helpMessage, m.cfg.Name), actionPrint
		}

		return m.describe(arg)

	case "l", "list":
		return m.list(arg)

	case "ctx":
		if arg == "" {
			text, err := value.JSON(m.session.data)
			if err != nil {
				return err.Error(), actionError
			}

			return text, actionPrint
		}

		if m.cfg.Load == nil {
			return ErrNoLoader.Error(), actionError
		}

		data, err := m.cfg.Load(arg)
		if err != nil {
			return err.Error(), actionError
		}

		m.session.data = data

		return hintStyle.Render("context loaded from " + arg), actionPrint

	default:
		return "unknown command: " + name + " (try " + commandPrefix + "help)", actionError
	}
}

// describe returns the catalog entry for name.
func (m model) describe(name string) (string, action) {
	for _, e := range ext.Catalog(m.cfg.Ext) {
		if e.Name != name {
			continue
		}

		if e.Kind == ext.KindFunction {
			return m.sigs.hint(name, -1), actionPrint
		}

		return signatureNameStyle.Render(name) + " = " + e.Value +
			hintStyle.Render("  "+e.Help), actionPrint
	}

	if hint := m.sigs.hint(name, -1); hint != "" {
		return hint, actionPrint
	}

	return "no function or constant named " + strconv.Quote(name), actionError
}

// list returns one line per catalog entry of the given kind.
func (m model) list(kind string) (string, action) {
	var want string

	switch kind {
	case "":
	case "f", "func", "functions":
		want = ext.KindFunction
	case "c", "const", "constants":
		want = ext.KindConstant
	default:
		return "unknown kind: " + kind + " (functions, constants)", actionError
	}

	var b strings.Builder

	for _, e := range ext.Catalog(m.cfg.Ext) {
		if want != "" && e.Kind != want {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "  %s%s %s", e.Name, e.Signature, hintStyle.Render(e.Help))
	}

	if b.Len() == 0 {
		return hintStyle.Render("no extensions enabled"), actionPrint
	}

	return b.String(), actionPrint
}
