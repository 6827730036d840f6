package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"text/template"

	"github.com/kballard/go-shellquote"
)

var ErrInvalidHost = errors.New("invalid host")

var hostRe = regexp.MustCompile(`^[A-Za-z0-9_.:%-]+$`)

// DefaultCommand is the ping invocation for the current OS: 4 echo requests.
func DefaultCommand() string {
	return commandFor(runtime.GOOS)
}

func commandFor(goos string) string {
	if goos == "windows" {
		return "ping -n 4 {{.Host}}"
	}
	return "ping -c 4 {{.Host}}"
}

// DefaultMarkersForOS returns the success markers printed by the platform ping
// when all 4 replies arrive. Windows prints "Received = 4"; iputils prints
// "4 packets transmitted, 4 received"; BSD, macOS and busybox print
// "4 packets transmitted, 4 packets received".
func DefaultMarkersForOS() []string {
	return markersFor(runtime.GOOS)
}

func markersFor(goos string) []string {
	if goos == "windows" {
		return []string{DefaultMarker}
	}
	return []string{"4 received", "4 packets received"}
}

// ExecProbe shells out to a command rendered from a template per host.
type ExecProbe struct {
	command string
	tmpl    *template.Template
}

func NewExecProbe(command string) (*ExecProbe, error) {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand()
	}
	t, err := template.New("probe").Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse probe command: %w", err)
	}
	return &ExecProbe{command: command, tmpl: t}, nil
}

func (e *ExecProbe) Command() string { return e.command }

// ReferencesHost reports whether the rendered command line carries the host.
func (e *ExecProbe) ReferencesHost() bool {
	const sample = "pingstatus.invalid"
	args, err := e.Args(sample)
	if err != nil {
		return false
	}
	for _, a := range args {
		if strings.Contains(a, sample) {
			return true
		}
	}
	return false
}

// ValidateHost rejects names that could be read as flags or split into extra args.
func ValidateHost(host string) error {
	if host == "" || strings.Contains(host, "://") || strings.HasPrefix(host, "-") || !hostRe.MatchString(host) {
		return fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}
	return nil
}

// Args renders the command line for host and splits it into argv.
func (e *ExecProbe) Args(host string) ([]string, error) {
	if err := ValidateHost(host); err != nil {
		return nil, err
	}
	var b strings.Builder
	if err := e.tmpl.Execute(&b, struct{ Host string }{Host: host}); err != nil {
		return nil, fmt.Errorf("render probe command: %w", err)
	}
	args, err := shellquote.Split(b.String())
	if err != nil {
		return nil, fmt.Errorf("split probe command: %w", err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty probe command")
	}
	return args, nil
}

// Run blocks until the command exits or ctx is done. Output is stdout and stderr
// combined; it is returned even when the command exits non-zero.
func (e *ExecProbe) Run(ctx context.Context, host string) (string, error) {
	args, err := e.Args(host)
	if err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w", args[0], host, err)
	}
	return string(out), nil
}
