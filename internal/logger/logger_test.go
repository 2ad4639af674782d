package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)

	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("test message %s", "arg") }, "[DEBUG] test message arg\n"},
		{"info", func() { Info("GET %s", "https://api.github.com/repos/a/b/pulls") }, "[INFO] GET https://api.github.com/repos/a/b/pulls\n"},
		{"warn", func() { Warn("waiting %d", 5) }, "[WARN] waiting 5\n"},
		{"error", func() { Error("boom") }, "[ERROR] boom\n"},
		{"section", func() { Section("Reconcile") }, "\n=== Reconcile ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if buf.String() != tt.want {
				t.Errorf("unexpected output: %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("d")
	Info("i")
	Warn("w")
	Section("s")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestError_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)

	Error("store unavailable: %v", "locked")

	if buf.String() != "[ERROR] store unavailable: locked\n" {
		t.Errorf("unexpected error output: %q", buf.String())
	}
}

func TestConcurrentToggle(t *testing.T) {
	capture(t, false)
	SetOutput(&bytes.Buffer{})
	SetVerbose(false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			_ = IsVerbose()
		}()
	}
	wg.Wait()
}

func TestProgress_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)

	Progress("GET %s", "https://api.github.com/repos/NixOS/nixpkgs/pulls?state=all")

	if got, want := buf.String(), "GET https://api.github.com/repos/NixOS/nixpkgs/pulls?state=all\n"; got != want {
		t.Errorf("unexpected output: %q, want %q", got, want)
	}
}

func TestSetOutput_ReturnsPrevious(t *testing.T) {
	first := capture(t, false)

	var second bytes.Buffer
	prev := SetOutput(&second)
	Progress("x")

	if prev != first {
		t.Error("expected SetOutput to return the previous writer")
	}
	if second.String() != "x\n" || first.Len() != 0 {
		t.Errorf("expected output in the new writer only, got %q and %q", second.String(), first.String())
	}
}
