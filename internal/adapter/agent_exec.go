package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
)

// execRetrievalAgent spawns the agent once per query. The request is written
// as one JSON document on stdin and the answer is the JSON document the agent
// prints on stdout. Anything the agent writes to stderr is logged.
type execRetrievalAgent struct {
	command string
	args    []string
	workDir string
	timeout time.Duration
	logger  *logger.Logger
}

func NewExecRetrievalAgent(cfg config.Agent, log *logger.Logger) (RetrievalAgent, error) {
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, fmt.Errorf("agent command is empty")
	}

	return &execRetrievalAgent{
		command: cfg.Command,
		args:    cfg.Args,
		workDir: cfg.WorkDir,
		timeout: cfg.Timeout,
		logger:  log,
	}, nil
}

func (e *execRetrievalAgent) Ask(ctx context.Context, query string) (models.AgentAnswer, error) {
	log := logger.FromContext(ctx)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(agentQuery{Query: query})
	if err != nil {
		return models.AgentAnswer{}, fmt.Errorf("%w: encode query: %w", ErrAgentFailed, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.command, e.args...)
	cmd.Dir = e.workDir
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	if stderr.Len() > 0 {
		log.Debug().
			Str("func", "execRetrievalAgent.Ask").
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("agent diagnostics")
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Warn().
				Str("func", "execRetrievalAgent.Ask").
				Int("exit_code", exitErr.ExitCode()).
				Msg("agent exited with failure")
		}
		return models.AgentAnswer{}, fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}

	var answer models.AgentAnswer
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &answer); err != nil {
		return models.AgentAnswer{}, fmt.Errorf("%w: decode answer: %w", ErrAgentFailed, err)
	}
	if answer.Error != "" {
		return models.AgentAnswer{}, fmt.Errorf("%w: %s", ErrAgentFailed, answer.Error)
	}

	log.Debug().
		Str("func", "execRetrievalAgent.Ask").
		Dur("duration", time.Since(start)).
		Str("run_id", answer.RunID).
		Msg("agent answered")

	return answer, nil
}
