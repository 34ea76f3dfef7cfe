package signer

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sigconform/sigconform/internal/constants"
	"github.com/sigconform/sigconform/internal/ctxutil"
	"github.com/sigconform/sigconform/internal/domain"
	sigerrors "github.com/sigconform/sigconform/internal/errors"
	"github.com/sigconform/sigconform/internal/keys"
	"github.com/sigconform/sigconform/internal/vectors"
)

// CommandExecutor abstracts command execution for testing.
// The production implementation uses exec.Cmd to run subprocesses,
// while tests can provide a mock implementation.
//
// The ctx parameter is included for interface consistency; the production
// implementation embeds context via exec.CommandContext(). Mock
// implementations may use ctx to simulate cancellation behavior.
type CommandExecutor interface {
	// Execute runs the command and returns stdout, stderr, and any error.
	Execute(ctx context.Context, cmd *exec.Cmd) (stdout, stderr []byte, err error)
}

// DefaultExecutor is the production implementation of CommandExecutor.
// It runs commands using the operating system's process execution.
type DefaultExecutor struct{}

// Execute runs the command and captures its output.
func (e *DefaultExecutor) Execute(_ context.Context, cmd *exec.Cmd) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// headerDelimiter joins the ordered header list for the signer's --headers
// flag, per the signer invocation contract.
const headerDelimiter = " "

// CLISigner invokes the external signer binary once per request.
//
// Exactly one generation attempt is made per request - no retries.
// Repeatability of the signer's rejection/acceptance decision is itself part
// of what is being tested; retrying would mask flaky signer behavior that the
// conformance run needs to surface.
type CLISigner struct {
	command  string
	baseArgs []string
	timeout  time.Duration
	catalog  *keys.Catalog
	vectors  *vectors.Catalog
	executor CommandExecutor
	logger   zerolog.Logger
}

// CLISignerOption is a functional option for configuring CLISigner.
type CLISignerOption func(*CLISigner)

// WithExecutor replaces the subprocess executor, primarily for tests.
func WithExecutor(e CommandExecutor) CLISignerOption {
	return func(s *CLISigner) {
		s.executor = e
	}
}

// WithLogger sets the logger for the CLISigner.
func WithLogger(logger zerolog.Logger) CLISignerOption {
	return func(s *CLISigner) {
		s.logger = logger
	}
}

// WithTimeout bounds each individual invocation. Zero or negative values
// fall back to the default timeout.
func WithTimeout(d time.Duration) CLISignerOption {
	return func(s *CLISigner) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithArgs prepends fixed arguments to every signer invocation (e.g., a
// subcommand name for multi-command signer binaries).
func WithArgs(args []string) CLISignerOption {
	return func(s *CLISigner) {
		s.baseArgs = args
	}
}

// NewCLISigner creates a signer adapter invoking the given command.
func NewCLISigner(command string, catalog *keys.Catalog, vecs *vectors.Catalog, opts ...CLISignerOption) *CLISigner {
	s := &CLISigner{
		command:  command,
		timeout:  constants.DefaultSignerTimeout,
		catalog:  catalog,
		vectors:  vecs,
		executor: &DefaultExecutor{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate executes one signing attempt against the external signer.
//
// A timeout of the bounded per-call window resolves to a Rejected outcome and
// must not abort sibling cases; a suite-level cancellation propagates as an
// error instead.
func (s *CLISigner) Generate(ctx context.Context, req *domain.SigningRequest) (domain.SignatureOutcome, error) {
	// Honor a suite-level abort before dispatching a new invocation.
	if err := ctxutil.Canceled(ctx); err != nil {
		return domain.SignatureOutcome{}, err
	}

	key, err := s.resolveKey(req)
	if err != nil {
		return domain.SignatureOutcome{}, err
	}

	vector, err := s.vectors.Lookup(req.TargetVector)
	if err != nil {
		return domain.SignatureOutcome{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := s.buildCommand(runCtx, req, key, vector)

	s.logger.Debug().
		Str("algorithm", req.Algorithm).
		Str("key_type", req.KeyType).
		Str("key_id", key.KeyID).
		Str("vector", req.TargetVector).
		Msg("dispatching signer invocation")

	stdout, stderr, execErr := s.executor.Execute(runCtx, cmd)
	if execErr != nil {
		return s.normalizeFailure(ctx, runCtx, execErr, stderr)
	}

	return domain.Signed(strings.TrimSpace(string(stdout))), nil
}

// resolveKey picks the key material the request names. The request's key ID
// wins when it is in the catalog; otherwise the first key of the requested
// type is used. A request whose key type has no catalog entry is ill-formed
// and aborts the run.
func (s *CLISigner) resolveKey(req *domain.SigningRequest) (domain.KeyMaterial, error) {
	if req.KeyID != "" {
		if key, ok := s.catalog.Lookup(req.KeyID); ok {
			return key, nil
		}
	}

	candidates := s.catalog.KeysOfType(req.KeyType)
	if len(candidates) == 0 {
		return domain.KeyMaterial{}, sigerrors.Wrapf(sigerrors.ErrKeyNotFound, "key type %q", req.KeyType)
	}
	return candidates[0], nil
}

// buildCommand maps the signing request onto the external signer's flag
// contract.
func (s *CLISigner) buildCommand(ctx context.Context, req *domain.SigningRequest, key domain.KeyMaterial, vector vectors.Vector) *exec.Cmd {
	args := append([]string{}, s.baseArgs...)
	args = append(args,
		"--vector", vector.Locator,
		"--private-key", key.Reference,
		"--algorithm", req.Algorithm,
		"--key-type", req.KeyType,
		"--key-id", req.KeyID,
		"--headers", strings.Join(req.Headers, headerDelimiter),
	)

	// Temporal parameters are omitted entirely when not under test.
	if req.Created != nil {
		args = append(args, "--created", strconv.FormatInt(*req.Created, 10))
	}
	if req.Expires != nil {
		args = append(args, "--expires", strconv.FormatInt(*req.Expires, 10))
	}

	return exec.CommandContext(ctx, s.command, args...)
}

// normalizeFailure converts an execution error into the outcome or error the
// orchestrator expects: suite cancellation propagates, a per-call timeout and
// a signer-reported rejection become Rejected outcomes, and a missing signer
// binary aborts the run.
func (s *CLISigner) normalizeFailure(ctx, runCtx context.Context, execErr error, stderr []byte) (domain.SignatureOutcome, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return domain.SignatureOutcome{}, err
	}

	if stderrors.Is(runCtx.Err(), context.DeadlineExceeded) {
		s.logger.Warn().Dur("timeout", s.timeout).Msg("signer invocation timed out")
		return domain.Rejected(sigerrors.ErrSignerTimeout), nil
	}

	if stderrors.Is(execErr, exec.ErrNotFound) {
		return domain.SignatureOutcome{}, fmt.Errorf("%w: %s not found in PATH", sigerrors.ErrSignerUnavailable, s.command)
	}

	reason := strings.TrimSpace(string(stderr))
	if reason == "" {
		reason = execErr.Error()
	}
	return domain.Rejected(fmt.Errorf("%w: %s", sigerrors.ErrSignerRejected, reason)), nil
}

// Compile-time check that CLISigner implements Signer.
var _ Signer = (*CLISigner)(nil)
