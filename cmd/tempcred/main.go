package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"loginflow/internal/usecase"
	"loginflow/internal/util"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - issue:     Force an existing account through a password reset
// - provision: Create a new account that must reset on first sign-in

const (
	commandIssue     = "issue"
	commandProvision = "provision"
)

type command struct {
	name  string
	input *usecase.IssueTemporaryPasswordInput
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cmd, err := parseCommand(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := runWithApp(ctx, func(uc usecase.TemporaryPasswordUsecase) error {
		return execute(ctx, cmd, uc, os.Stdout)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseCommand(args []string) (*command, error) {
	if len(args) == 0 {
		return nil, errors.New("missing subcommand")
	}

	switch args[0] {
	case commandIssue, commandProvision:
	case "help", "-h", "--help":
		printUsage(os.Stdout)

		return nil, flag.ErrHelp
	default:
		printUsage(os.Stderr)

		return nil, errors.Errorf("unknown subcommand: %s", args[0])
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	email := fs.String("email", "", "Account email address")
	ttl := fs.Duration("ttl", 0, "Temporary password lifetime, e.g. 24h (defaults to auth.temporaryPasswordTTL)")
	if err := fs.Parse(args[1:]); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s flags", args[0])
	}

	if *email == "" {
		return nil, errors.New("--email flag is required")
	}
	if *ttl < 0 {
		return nil, errors.New("--ttl must not be negative")
	}

	return &command{
		name:  args[0],
		input: &usecase.IssueTemporaryPasswordInput{Email: *email, TTL: *ttl},
	}, nil
}

func execute(ctx context.Context, cmd *command, uc usecase.TemporaryPasswordUsecase, out io.Writer) error {
	var (
		output *usecase.IssueTemporaryPasswordOutput
		err    error
	)

	switch cmd.name {
	case commandIssue:
		output, err = uc.IssueTemporaryPassword(ctx, cmd.input)
	case commandProvision:
		output, err = uc.ProvisionAccount(ctx, cmd.input)
	default:
		return errors.Errorf("unknown subcommand: %s", cmd.name)
	}
	if err != nil {
		return errors.Wrapf(err, "%s failed", cmd.name)
	}

	fmt.Fprintf(out, "user_id:            %s\n", output.UserID)
	fmt.Fprintf(out, "email:              %s\n", output.Email)
	fmt.Fprintf(out, "temporary_password: %s\n", output.TemporaryPassword)
	fmt.Fprintf(out, "expires_at:         %s (in %s)\n",
		output.ExpiresAt.UTC().Format(time.RFC3339), util.FormatDuration(time.Until(output.ExpiresAt)))

	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: tempcred <command> -email <address> [-ttl <duration>]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  issue       Issue a temporary password for an existing account")
	fmt.Fprintln(out, "  provision   Create an account that must set its password on first sign-in")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "The temporary password is printed once and never stored in plaintext.")
}
