// Package pipeline runs one NZBGet invocation end to end: validate options,
// pick the flow, compose, obscure and deliver, then map the result to the
// exit code NZBGet expects.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/config"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/crypt"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/event"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/logging"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/message"
)

// NZBGet extension exit codes.
const (
	ExitSuccess = 93
	ExitError   = 94
	ExitNone    = 95
)

// Outcome is how an invocation ended.
type Outcome int

const (
	// NoOp: nothing to do for this context, not even a skip.
	NoOp Outcome = iota
	Delivered
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "noop"
	}
}

// ExitCode maps o to the process exit status.
func (o Outcome) ExitCode() int {
	switch o {
	case Delivered:
		return ExitSuccess
	case Skipped:
		return ExitNone
	case Failed:
		return ExitError
	default:
		return 0
	}
}

// Result is the outcome of Run. Err is set only when Outcome is Failed.
type Result struct {
	Outcome Outcome
	Err     error
}

func failed(err error) Result { return Result{Outcome: Failed, Err: err} }

// Sender delivers a composed notification and returns the HTTP status.
// *notify.Client satisfies this interface.
type Sender interface {
	Send(ctx context.Context, msg message.Outbound) (int, error)
}

// Pipeline wires configuration, delivery and logging for one invocation.
type Pipeline struct {
	Config *config.Config
	Sender Sender
	Logger *slog.Logger
}

// Run validates the configuration, classifies ec and runs the matching flow.
func (p *Pipeline) Run(ctx context.Context, ec event.Context) Result {
	return p.run(ctx, ec, event.Classify)
}

// Test runs the connectivity-test flow regardless of what ec describes. It
// lets an operator check credentials from a shell.
func (p *Pipeline) Test(ctx context.Context, ec event.Context) Result {
	return p.run(ctx, ec, func(event.Context) event.Flow { return event.FlowTest })
}

func (p *Pipeline) run(ctx context.Context, ec event.Context, classify func(event.Context) event.Flow) Result {
	if err := p.Config.Validate(); err != nil {
		p.logConfigError(err)
		return failed(err)
	}
	p.Logger.Info("Script successfully started")

	flow := classify(ec)
	p.Logger.Debug("classified", "flow", flow.String())

	switch flow {
	case event.FlowQueue:
		return p.queue(ctx, ec)
	case event.FlowPostProcess:
		return p.postProcess(ctx, ec)
	case event.FlowTest:
		return p.test(ctx, ec)
	}
	if ec.Has(event.KeyQueueEvent) {
		p.Logger.Info("Script starting queue...")
		p.Logger.Debug("ignoring queue event", "event", ec.Get(event.KeyQueueEvent))
	}
	return Result{Outcome: NoOp}
}

// logConfigError writes one error line per problem Validate found. A
// missing option reads "Option <name> is missing in the configuration file".
func (p *Pipeline) logConfigError(err error) {
	for _, e := range unjoin(err) {
		p.Logger.Error(e.Error())
	}
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func (p *Pipeline) queue(ctx context.Context, ec event.Context) Result {
	p.Logger.Info("Script starting queue...")

	q, err := event.ExtractQueue(ec)
	if err != nil {
		p.Logger.Error(err.Error())
		return failed(err)
	}

	msg, ok := message.Queue(q, p.Config.Queue)
	if !ok {
		p.Logger.Info("Skipping Push notification", "event", string(q.Event))
		return Result{Outcome: Skipped}
	}
	return p.deliver(ctx, msg)
}

func (p *Pipeline) postProcess(ctx context.Context, ec event.Context) Result {
	p.Logger.Info("Script starting post-processing...")

	pp, err := event.ExtractPostProcess(ec)
	if err != nil {
		p.Logger.Error(err.Error())
		return failed(err)
	}

	msg, outcome, err := message.PostProcess(pp, p.Config.PostProcess)
	if err != nil {
		p.Logger.Error(err.Error())
		return failed(err)
	}

	send := p.Config.PostProcess.NotifyFailure
	if outcome == message.OutcomeSuccess {
		send = p.Config.PostProcess.NotifySuccess
	}
	if !send {
		p.Logger.Info("Skipping Push notification", "outcome", outcome.String())
		return Result{Outcome: Skipped}
	}
	return p.deliver(ctx, msg)
}

func (p *Pipeline) test(ctx context.Context, ec event.Context) Result {
	p.Logger.Info("Execute the TestSettings Test Action")
	p.Logger.Info("Encryption: " + p.encryptionStatus())
	return p.deliver(ctx, message.Test(ec.CorrelationID()))
}

func (p *Pipeline) encryptionStatus() string {
	enc := p.Config.Encryption
	if !enc.Active() {
		return "disabled"
	}
	if err := crypt.Probe(crypt.Kind(enc.Type), enc.PrivateKey); err != nil {
		return enc.Type + " unavailable"
	}
	return enc.Type + " available"
}

// deliver sanitizes and, when configured, obscures msg before sending it.
// If the configured scheme cannot be used the body goes out in plaintext
// with the encrypted flag cleared.
func (p *Pipeline) deliver(ctx context.Context, msg message.Outbound) Result {
	msg.Body = message.Sanitize(msg.Body)
	msg = p.obscure(msg)

	if err := msg.Validate(); err != nil {
		p.Logger.Error(err.Error())
		return failed(err)
	}

	p.Logger.Info("Sending Push notification")
	status, err := p.Sender.Send(ctx, msg)
	if err != nil {
		return failed(logging.LogError(p.Logger, "Push notification failed", err))
	}
	p.Logger.Debug("push API responded", "status", status)
	p.Logger.Info("Sent Push notification")
	return Result{Outcome: Delivered}
}

func (p *Pipeline) obscure(msg message.Outbound) message.Outbound {
	msg.IsEncrypted = false
	msg.EncryptionType = ""

	enc := p.Config.Encryption
	if !enc.Active() {
		return msg
	}

	c, err := crypt.New(crypt.Kind(enc.Type), enc.PrivateKey)
	if err != nil {
		p.Logger.Warn("Encryption unavailable, sending plaintext", "type", enc.Type, "error", err)
		return msg
	}
	body, err := c.Encrypt(msg.Body)
	if err != nil {
		p.Logger.Warn("Encryption failed, sending plaintext", "type", enc.Type, "error", err)
		return msg
	}

	msg.Body = body
	msg.IsEncrypted = true
	msg.EncryptionType = c.Kind().Tag()
	return msg
}
