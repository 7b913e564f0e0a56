package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactform/internal/contact"
	"github.com/smileynet/contactform/internal/tui"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestVersionFlag(t *testing.T) {
	var cli CLI
	var buf bytes.Buffer
	k, err := kong.New(&cli,
		kong.Vars{"version": "v1.0.0 abc1234 2026-01-01T00:00:00Z"},
		kong.Writers(&buf, &buf),
		kong.Exit(func(int) { panic(errExitCalled) }),
	)
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic from --version flag")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, errExitCalled) {
			panic(r)
		}
		for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("version output = %q, want to contain %q", buf.String(), want)
			}
		}
	}()

	_, _ = k.Parse([]string{"--version"})
}

func TestParse_DefaultsToForm(t *testing.T) {
	var cli CLI
	k, err := kong.New(&cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := k.Parse([]string{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ctx.Command() != "form" {
		t.Errorf("command = %q, want %q", ctx.Command(), "form")
	}
}

func TestParse_SendFlags(t *testing.T) {
	var cli CLI
	k, err := kong.New(&cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = k.Parse([]string{
		"--endpoint", "http://localhost:8080/contact",
		"send", "--name", "Ann", "--email", "a@b.com", "--subject", "Hi", "--message", "Hello", "-i",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cli.Endpoint != "http://localhost:8080/contact" {
		t.Errorf("endpoint = %q, want flag value", cli.Endpoint)
	}
	if cli.Send.Name != "Ann" || cli.Send.Email != "a@b.com" || cli.Send.Subject != "Hi" || cli.Send.Message != "Hello" {
		t.Errorf("send flags = %+v", cli.Send)
	}
	if !cli.Send.Interactive {
		t.Error("-i should set Interactive")
	}
}

func TestSendCmd_Run(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantOut  string
		wantErr  error
		wantCode int
	}{
		{name: "ok", status: http.StatusOK, wantOut: "✓ " + tui.SuccessText, wantCode: exitSuccess},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			wantOut:  "✗ " + contact.MsgTryAgainLater,
			wantErr:  contact.ErrApplication,
			wantCode: exitSubmission,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				gotBody = string(b)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			cmd := &SendCmd{}
			var out bytes.Buffer
			p := contact.Payload{Name: "Ann", Email: "a@b.com", Subject: "Hi", Message: "Hello"}
			err := cmd.run(context.Background(), &out, contact.NewClient(srv.URL), p, discardLogger)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("run() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("run() error = %v, want %v", err, tt.wantErr)
			}
			if got := exitCode(err); got != tt.wantCode {
				t.Errorf("exitCode = %d, want %d", got, tt.wantCode)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
			want := `{"name":"Ann","email":"a@b.com","subject":"Hi","message":"Hello"}`
			if gotBody != want {
				t.Errorf("request body = %s, want %s", gotBody, want)
			}
		})
	}
}

func TestSendCmd_Run_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	var out bytes.Buffer
	err = (&SendCmd{}).run(context.Background(), &out, contact.NewClient("http://"+addr), contact.Payload{}, discardLogger)

	if !errors.Is(err, contact.ErrTransport) {
		t.Fatalf("run() error = %v, want transport error", err)
	}
	if got := exitCode(err); got != exitSubmission {
		t.Errorf("exitCode = %d, want %d", got, exitSubmission)
	}
	if !strings.Contains(out.String(), contact.MsgCheckNetwork) {
		t.Errorf("output = %q, want %q", out.String(), contact.MsgCheckNetwork)
	}
}

func TestSendCmd_Payload(t *testing.T) {
	cmd := &SendCmd{Name: " Ann ", Email: "a@b.com", Subject: "Hi", Message: "-"}

	p, err := cmd.payload(strings.NewReader("line1\nline2\n"))
	if err != nil {
		t.Fatalf("payload() error = %v", err)
	}
	want := contact.Payload{Name: " Ann ", Email: "a@b.com", Subject: "Hi", Message: "line1\nline2\n"}
	if p != want {
		t.Errorf("payload = %+v, want %+v", p, want)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestSendCmd_Payload_StdinError(t *testing.T) {
	if _, err := (&SendCmd{Message: "-"}).payload(errReader{}); err == nil {
		t.Fatal("payload() should fail when stdin cannot be read")
	}
}

// mockTeaRunner records whether Run was called.
type mockTeaRunner struct {
	called bool
	err    error
}

func (m *mockTeaRunner) Run() (tea.Model, error) {
	m.called = true
	return nil, m.err
}

func TestFormCmd_Run(t *testing.T) {
	t.Run("requires a TTY", func(t *testing.T) {
		prog := &mockTeaRunner{}
		err := (&FormCmd{}).run(false, prog)
		if err == nil || !strings.Contains(err.Error(), "TTY") {
			t.Errorf("run(non-TTY) error = %v, want TTY error", err)
		}
		if prog.called {
			t.Error("program should not run without a TTY")
		}
	})

	t.Run("runs program", func(t *testing.T) {
		prog := &mockTeaRunner{err: fmt.Errorf("boom")}
		err := (&FormCmd{}).run(true, prog)
		if !prog.called {
			t.Error("program should run on a TTY")
		}
		if err == nil || err.Error() != "boom" {
			t.Errorf("run() error = %v, want program error", err)
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitSuccess},
		{name: "application", err: fmt.Errorf("send: %w", &contact.ApplicationError{StatusCode: 500}), want: exitSubmission},
		{name: "transport", err: fmt.Errorf("send: %w", &contact.TransportError{Err: errors.New("dial")}), want: exitSubmission},
		{name: "setup", err: errors.New("config: endpoint.url cannot be empty"), want: exitSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("CONTACTFORM_LOG_LEVEL", "")
	t.Setenv("CONTACTFORM_LOG_FILE", "")
	unsetEnv(t, "CONTACTFORM_ENDPOINT")

	t.Run("build-time default", func(t *testing.T) {
		cfg, err := loadConfig(&Globals{})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Endpoint.URL != endpoint {
			t.Errorf("endpoint = %q, want %q", cfg.Endpoint.URL, endpoint)
		}
	})

	t.Run("project config then flag", func(t *testing.T) {
		if err := os.MkdirAll(".contactform", 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(".contactform/config.yaml", []byte("endpoint:\n  url: https://project.example.com\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.RemoveAll(".contactform") })

		cfg, err := loadConfig(&Globals{})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Endpoint.URL != "https://project.example.com" {
			t.Errorf("endpoint = %q, want project config", cfg.Endpoint.URL)
		}

		cfg, err = loadConfig(&Globals{Endpoint: "http://flag.example.com", LogFile: "/tmp/cf.log"})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Endpoint.URL != "http://flag.example.com" {
			t.Errorf("endpoint = %q, want flag override", cfg.Endpoint.URL)
		}
		if cfg.Log.File != "/tmp/cf.log" {
			t.Errorf("log file = %q, want flag override", cfg.Log.File)
		}
	})

	t.Run("dotenv", func(t *testing.T) {
		if err := os.WriteFile(".env", []byte("CONTACTFORM_ENDPOINT=https://dotenv.example.com\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			os.Remove(".env")
			os.Unsetenv("CONTACTFORM_ENDPOINT")
		})

		cfg, err := loadConfig(&Globals{})
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Endpoint.URL != "https://dotenv.example.com" {
			t.Errorf("endpoint = %q, want dotenv value", cfg.Endpoint.URL)
		}
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		if _, err := loadConfig(&Globals{Endpoint: "not a url"}); err == nil {
			t.Fatal("loadConfig() should reject an invalid endpoint")
		}
	})
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		}
	})
}
