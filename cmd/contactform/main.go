package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"

	"github.com/smileynet/contactform/internal/config"
	"github.com/smileynet/contactform/internal/contact"
	"github.com/smileynet/contactform/internal/logging"
	"github.com/smileynet/contactform/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"

	// endpoint is the default submission URL, set at build time with
	// -ldflags "-X main.endpoint=https://...".
	endpoint = "https://example"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config   string `help:"Config file layered over user and project config." type:"path"`
	Endpoint string `help:"Submission endpoint URL (overrides config)."`
	LogFile  string `help:"Append structured logs to this file." type:"path"`
}

// CLI is the top-level command structure for contactform.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Form    FormCmd          `cmd:"" default:"1" help:"Open the interactive contact form."`
	Send    SendCmd          `cmd:"" help:"Send one message without the interactive form."`
}

// loadConfig loads layered config from user, project and --config paths with
// dotenv and env overrides, then applies flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	_ = godotenv.Load()

	paths := []string{
		os.ExpandEnv("$HOME/.config/contactform/config.yaml"),
		".contactform/config.yaml",
	}
	if g.Config != "" {
		paths = append(paths, g.Config)
	}

	cfg, err := config.LoadLayered(endpoint, paths...)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if g.Endpoint != "" {
		cfg.Endpoint.URL = g.Endpoint
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger for a command. fallback receives logs when no
// log file is configured.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Output: fallback,
	})
}

// --- Form command ---

// FormCmd opens the interactive contact form.
type FormCmd struct {
	Name    string `help:"Prefill the name field."`
	Email   string `help:"Prefill the email field."`
	Subject string `help:"Prefill the subject field."`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the form TUI.
func (f *FormCmd) Run(g *Globals) error {
	if !tui.IsTerminal(os.Stdout) {
		return errors.New("form: requires a terminal (TTY); use send instead")
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}

	// Stdout belongs to the renderer, so logs only go to a configured file.
	logger, closer, err := newLogger(cfg, io.Discard)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	defer closer.Close()

	// Cancelled on exit so in-flight submissions do not outlive the form.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := tui.New(contact.NewClient(cfg.Endpoint.URL),
		tui.WithContext(ctx),
		tui.WithLogger(logger),
		tui.WithPrefill(contact.Payload{Name: f.Name, Email: f.Email, Subject: f.Subject}),
	)

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	logger.Info("form opened", "endpoint", cfg.Endpoint.URL)
	return f.run(true, tea.NewProgram(m, opts...))
}

// run executes the tea program, enabling testable wiring.
func (f *FormCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return errors.New("form: requires a terminal (TTY); use send instead")
	}
	_, err := prog.Run()
	return err
}

// --- Send command ---

// SendCmd submits one message and prints the resulting notice.
type SendCmd struct {
	Name        string `help:"Sender name."`
	Email       string `help:"Sender email."`
	Subject     string `help:"Message subject."`
	Message     string `help:"Message body; - reads it from stdin."`
	Interactive bool   `short:"i" help:"Prompt for every field, prefilled from flags."`
}

// Run executes the send command.
func (s *SendCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	logger, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer closer.Close()

	payload, err := s.payload(os.Stdin)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	if s.Interactive {
		if !tui.IsTerminal(os.Stdout) {
			return errors.New("send: --interactive requires a terminal (TTY)")
		}
		if err := promptPayload(&payload); err != nil {
			return fmt.Errorf("send: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, os.Stdout, contact.NewClient(cfg.Endpoint.URL), payload, logger)
}

// payload collects the flag values, reading the message from stdin for "-".
func (s *SendCmd) payload(stdin io.Reader) (contact.Payload, error) {
	p := contact.Payload{
		Name:    s.Name,
		Email:   s.Email,
		Subject: s.Subject,
		Message: s.Message,
	}
	if s.Message == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return contact.Payload{}, fmt.Errorf("reading message from stdin: %w", err)
		}
		p.Message = string(data)
	}
	return p, nil
}

// run submits p once and prints the visible notice, enabling testable wiring.
func (s *SendCmd) run(ctx context.Context, w io.Writer, sender contact.Sender, p contact.Payload, logger *slog.Logger) error {
	board := contact.NewBoard()
	sub := contact.NewSubmitter(sender, contact.NewForm(p), board, contact.WithLogger(logger))

	st := sub.Submit(ctx)
	if err := tui.PlainNotice(w, board.Notice()); err != nil {
		return fmt.Errorf("send: writing notice: %w", err)
	}
	if st.Err != nil {
		return fmt.Errorf("send: %w", st.Err)
	}
	return nil
}

// promptPayload asks for all four fields in one huh form.
func promptPayload(p *contact.Payload) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&p.Name),
			huh.NewInput().Title("Email").Value(&p.Email),
			huh.NewInput().Title("Subject").Value(&p.Subject),
			huh.NewText().Title("Message").CharLimit(0).Value(&p.Message),
		),
	)
	return form.Run()
}

// Exit codes.
const (
	exitSuccess    = 0
	exitSubmission = 1
	exitSetup      = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, contact.ErrApplication) || errors.Is(err, contact.ErrTransport) {
		return exitSubmission
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactform"),
		kong.Description("Send a message through the contact form endpoint."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
