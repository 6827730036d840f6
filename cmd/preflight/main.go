// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/bitfield/script"
	"github.com/kballard/go-shellquote"
	"go.uber.org/multierr"

	"github.com/hamed0406/pingstatus/internal/config"
	"github.com/hamed0406/pingstatus/internal/probe"
)

const loopback = "127.0.0.1"

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.FromEnv()
	if err != nil {
		fail(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, "✖", e)
		}
		os.Exit(1)
	}
	ok("config valid")

	ep, err := probe.NewExecProbe(cfg.ProbeCommand)
	if err != nil {
		fail(err.Error())
	}
	args, err := ep.Args(loopback)
	if err != nil {
		fail(err.Error())
	}
	bin, err := exec.LookPath(args[0])
	if err != nil {
		fail(args[0] + " not found on PATH; every target would report DOWN.")
	}
	ok("probe binary " + bin)

	// A loopback probe should always succeed; if the marker is missing the
	// marker does not match this platform's ping output.
	cmdline := shellquote.Join(args...)
	quoted := make([]string, len(cfg.SuccessMarkers))
	for i, m := range cfg.SuccessMarkers {
		quoted[i] = regexp.QuoteMeta(m)
	}
	re := regexp.MustCompile(strings.Join(quoted, "|"))
	n, err := script.Exec(cmdline).MatchRegexp(re).CountLines()
	switch {
	case n > 0:
		ok(fmt.Sprintf("loopback probe matched one of %q", cfg.SuccessMarkers))
	case err != nil:
		warn("loopback probe failed: " + err.Error())
	default:
		warn(fmt.Sprintf("loopback probe output has none of %q; set PROBE_SUCCESS_MARKERS", cfg.SuccessMarkers))
	}

	if len(cfg.APIKeys) == 0 {
		warn("API_KEYS empty; /api/status is open to anyone who can reach " + cfg.Addr)
	} else {
		ok(fmt.Sprintf("%d API key(s) configured", len(cfg.APIKeys)))
	}

	ok("preflight passed")
}
