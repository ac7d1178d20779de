// Package emailservice is the command line of the signup mail tool:
//
//	emailservice [flags] <email>
//
// It sends the operator notification and the user confirmation, prints a
// single JSON result line to stdout and exits 0 on success or 1 on any
// failure. Settings come from the environment and can be overridden with
// flags.
package emailservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/newsdigest/internal/logging"
	"github.com/dmitrijs2005/newsdigest/internal/mailer"
	"github.com/spf13/cobra"
)

const successMessage = "Emails sent successfully"

// errReported marks failures whose JSON result was already printed.
var errReported = errors.New("reported")

// SenderFactory builds the transport once flags are parsed.
type SenderFactory func(cfg mailer.Config) mailer.Sender

// Options holds the command's settings.
type Options struct {
	Mail     mailer.Config
	LogLevel string
}

// NewRootCommand creates the root command. Results go to the command's
// output, logs to its error stream.
func NewRootCommand(getenv func(string) string, newSender SenderFactory) *cobra.Command {
	opts := &Options{Mail: mailer.FromEnv(getenv), LogLevel: "warn"}

	cmd := &cobra.Command{
		Use:           "emailservice <email>",
		Short:         "Send the newsdigest signup emails",
		Long:          "Sends a signup notification to the operator and a confirmation to the new user.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, newSender, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Mail.Host, "smtp-host", opts.Mail.Host, "SMTP server host (SMTP_HOST)")
	f.IntVar(&opts.Mail.Port, "smtp-port", opts.Mail.Port, "SMTP server port (SMTP_PORT)")
	f.StringVar(&opts.Mail.Username, "smtp-username", opts.Mail.Username, "SMTP username (SMTP_USERNAME)")
	f.StringVar(&opts.Mail.Password, "smtp-password", opts.Mail.Password, "SMTP password (SMTP_PASSWORD)")
	f.StringVar(&opts.Mail.From, "from", opts.Mail.From, "sender address (SMTP_FROM)")
	f.StringVar(&opts.Mail.Operator, "operator", opts.Mail.Operator, "operator address (OPERATOR_EMAIL)")
	f.StringVarP(&opts.LogLevel, "log-level", "l", opts.LogLevel, "log level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, opts *Options, newSender SenderFactory, args []string) error {
	res := mailer.Result{}
	err := notify(ctx, stderr, opts, newSender, args, &res)
	if err != nil {
		res.Error = err.Error()
	} else {
		res.Success = true
		res.Message = successMessage
	}
	if werr := writeResult(stdout, res); werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errReported, err)
	}
	return nil
}

func notify(ctx context.Context, stderr io.Writer, opts *Options, newSender SenderFactory,
	args []string, res *mailer.Result) error {
	if len(args) != 1 {
		return errors.New("usage: emailservice <email>")
	}
	res.Email = args[0]

	log, err := logging.New(stderr, opts.LogLevel)
	if err != nil {
		return err
	}
	if err := opts.Mail.Validate(); err != nil {
		return err
	}
	return mailer.NewNotifier(opts.Mail, newSender(opts.Mail), log).Notify(ctx, args[0])
}

func writeResult(w io.Writer, res mailer.Result) error {
	return json.NewEncoder(w).Encode(res)
}

// Execute runs the tool and returns the process exit code. Errors cobra
// raises before the command runs (bad flags) are reported as JSON too.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer,
	getenv func(string) string, newSender SenderFactory) int {
	cmd := NewRootCommand(getenv, newSender)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		_ = writeResult(stdout, mailer.Result{Error: err.Error()})
	}
	return 1
}

// SMTP is the production SenderFactory.
func SMTP(cfg mailer.Config) mailer.Sender {
	return mailer.NewSMTPSender(cfg)
}
