package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
)

type fakeMigrator struct {
	calls   []string
	upErr   error
	version uint
	dirty   bool
	verErr  error
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.upErr
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	if n >= 0 {
		return errors.New("down must pass negative steps")
	}
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.verErr
}

func (f *fakeMigrator) Force(int) error {
	f.calls = append(f.calls, "force")
	return nil
}

func (f *fakeMigrator) Migrate(uint) error {
	f.calls = append(f.calls, "migrate")
	return nil
}

func TestRun_Commands(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()

	m := &fakeMigrator{upErr: migrate.ErrNoChange}
	if err := run(m, []string{"up"}, &bytes.Buffer{}, logger); err != nil {
		t.Fatalf("up with no change should succeed: %v", err)
	}
	if err := run(m, []string{"down", "2"}, &bytes.Buffer{}, logger); err != nil {
		t.Fatalf("down: %v", err)
	}
	if err := run(m, []string{"force", "1760000000"}, &bytes.Buffer{}, logger); err != nil {
		t.Fatalf("force: %v", err)
	}
	if err := run(m, []string{"GOTO", "1760000000"}, &bytes.Buffer{}, logger); err != nil {
		t.Fatalf("goto: %v", err)
	}
	if got := strings.Join(m.calls, ","); got != "up,steps,force,migrate" {
		t.Fatalf("unexpected calls %q", got)
	}

	if err := run(m, []string{"sideways"}, &bytes.Buffer{}, logger); !errors.Is(err, errUsage) {
		t.Fatalf("expected errUsage, got %v", err)
	}
	if err := run(m, []string{"force"}, &bytes.Buffer{}, logger); err == nil {
		t.Fatalf("force without version should fail")
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := run(&fakeMigrator{verErr: migrate.ErrNilVersion}, []string{"version"}, &out, logging.NewNop()); err != nil {
		t.Fatalf("version: %v", err)
	}
	if out.String() != "version: none\ndirty: false\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := run(&fakeMigrator{version: 1760000000, dirty: true}, []string{"version"}, &out, logging.NewNop()); err != nil {
		t.Fatalf("version: %v", err)
	}
	if out.String() != "version: 1760000000\ndirty: true\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	if steps, err := parseSteps(nil); err != nil || steps != 1 {
		t.Fatalf("default steps: %d %v", steps, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	if v, err := parseVersion(" -1 "); err != nil || v != -1 {
		t.Fatalf("force -1 clears the version: %d %v", v, err)
	}
	if _, err := parseTarget("-3"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	got := normalizeDBURL("postgres://u:p@localhost:5432/league_hub?sslmode=disable", true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected flag appended, got %q", got)
	}
	in := "postgres://u:p@localhost:5432/league_hub"
	if got := normalizeDBURL(in, false); got != in {
		t.Fatalf("expected url unchanged, got %q", got)
	}
}
