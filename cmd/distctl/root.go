package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"distributors/pkg/client"
)

// Exit codes.
const (
	exitUsage     = 1
	exitAPI       = 2
	exitTransport = 3
)

type app struct {
	out     io.Writer
	output  string
	baseURL string
	timeout time.Duration
	client  *client.Client
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "distctl",
		Short:         "Manage districts, distributor types, distributors and regulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "output format: table or json")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API base URL (default $DISTCTL_BASE_URL or "+client.DefaultBaseURL+")")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "per-request timeout (default $DISTCTL_TIMEOUT or 10s)")

	root.AddCommand(
		newDistrictCmd(a),
		newTypeCmd(a),
		newDistributorCmd(a),
		newRegulationCmd(a),
	)
	return root
}

func (a *app) connect(cmd *cobra.Command) error {
	if a.output != "table" && a.output != "json" {
		return usageErrorf("unknown output format %q", a.output)
	}
	cfg, err := client.ConfigFromEnv()
	if err != nil {
		return usageErrorf("%v", err)
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if cmd.Flags().Changed("timeout") {
		if a.timeout <= 0 {
			return usageErrorf("--timeout must be positive")
		}
		cfg.Timeout = a.timeout
	}
	c, err := client.New(cfg)
	if err != nil {
		return usageErrorf("%v", err)
	}
	a.client = c
	return nil
}

// usageError is a problem with the command line itself, caught before any
// request is sent.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErrorf("invalid id %q", arg)
	}
	return id, nil
}

func exitCode(err error) int {
	var apiErr *client.APIError
	var te *client.TransportError
	switch {
	case errors.As(err, &apiErr):
		return exitAPI
	case errors.As(err, &te):
		return exitTransport
	default:
		return exitUsage
	}
}

func printError(w io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold).Sprint("error:")
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		fmt.Fprintf(w, "%s %s (%s)\n", label, apiErr.Message, apiErr.Code)
		return
	}
	fmt.Fprintf(w, "%s %v\n", label, err)
}
