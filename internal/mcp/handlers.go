package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/lasercircuit/internal/models"
	"github.com/nvandessel/lasercircuit/internal/report"
	"github.com/nvandessel/lasercircuit/internal/scenario"
	"github.com/nvandessel/lasercircuit/internal/store"
)

const defaultHistoryLimit = 10

// registerTools registers all lasercircuit tools with the MCP server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "circuit_simulate",
		Description: "Build a laser circuit from a YAML scenario, run it until every photon is absorbed, and return the activation times and absorbed energy per receiver",
	}, s.handleCircuitSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "circuit_validate",
		Description: "Check a YAML scenario without running it. Reports rejected entries and emitters still waiting for a pulse",
	}, s.handleCircuitValidate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "circuit_history",
		Description: "List recorded circuit runs, newest first",
	}, s.handleCircuitHistory)
}

// auditTool logs one tool invocation.
func (s *Server) auditTool(tool string, start time.Time, err error, attrs ...slog.Attr) {
	attrs = append(attrs,
		slog.String("tool", tool),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.log.LogAttrs(context.Background(), slog.LevelWarn, "mcp tool failed", attrs...)
		return
	}
	s.log.LogAttrs(context.Background(), slog.LevelInfo, "mcp tool", attrs...)
}

// handleCircuitSimulate implements the circuit_simulate tool.
func (s *Server) handleCircuitSimulate(ctx context.Context, req *sdk.CallToolRequest, args CircuitSimulateInput) (_ *sdk.CallToolResult, _ CircuitSimulateOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("circuit_simulate", start, retErr, slog.Bool("record", args.Record))
	}()

	if err := s.limits.check("circuit_simulate"); err != nil {
		return nil, CircuitSimulateOutput{}, err
	}

	sc, err := parseScenario(args.Scenario)
	if err != nil {
		return nil, CircuitSimulateOutput{}, err
	}
	cfg := s.settings.Engine()
	cfg.Logger = s.log
	c, issues, err := sc.Build(cfg)
	if err != nil {
		return nil, CircuitSimulateOutput{}, err
	}

	var transcript strings.Builder
	printer := report.NewPrinter(&transcript, nil)
	res := c.Run(printer)
	if err := printer.Finish(res); err != nil {
		return nil, CircuitSimulateOutput{}, fmt.Errorf("rendering transcript: %w", err)
	}

	out := CircuitSimulateOutput{
		Clock:           res.Clock,
		Activated:       c.ActivatedCount(),
		Receivers:       len(c.Receivers()),
		ActivationTimes: receiverLines(res.ActivationTimes),
		TotalEnergy:     receiverLines(res.TotalEnergy),
		Issues:          issues,
		Board:           c.RenderBoard(),
		Transcript:      transcript.String(),
	}

	if args.Record {
		if s.store == nil {
			return nil, CircuitSimulateOutput{}, fmt.Errorf("run history is disabled")
		}
		run := store.NewRun("", "mcp", c)
		if err := s.store.SaveRun(ctx, run); err != nil {
			return nil, CircuitSimulateOutput{}, fmt.Errorf("failed to record run: %w", err)
		}
		out.RunID = run.ID
	}

	return nil, out, nil
}

// handleCircuitValidate implements the circuit_validate tool.
func (s *Server) handleCircuitValidate(ctx context.Context, req *sdk.CallToolRequest, args CircuitValidateInput) (_ *sdk.CallToolResult, _ CircuitValidateOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("circuit_validate", start, retErr)
	}()

	if err := s.limits.check("circuit_validate"); err != nil {
		return nil, CircuitValidateOutput{}, err
	}

	sc, err := parseScenario(args.Scenario)
	if err != nil {
		return nil, CircuitValidateOutput{}, err
	}
	c, issues, err := sc.Build(s.settings.Engine())
	if err != nil {
		return nil, CircuitValidateOutput{
			Valid:   false,
			Message: err.Error(),
		}, nil
	}

	out := CircuitValidateOutput{
		Valid:         len(issues) == 0,
		Width:         c.Width(),
		Height:        c.Height(),
		Emitters:      len(c.Emitters()),
		Receivers:     len(c.Receivers()),
		Mirrors:       len(c.Mirrors()),
		PendingPulses: c.PendingPulses(),
		Issues:        issues,
		Board:         c.RenderBoard(),
	}
	switch {
	case len(issues) > 0:
		out.Message = fmt.Sprintf("%d entr(ies) rejected", len(issues))
	case len(out.PendingPulses) > 0:
		out.Message = fmt.Sprintf("Scenario is valid; %d emitter(s) will use the default pulse", len(out.PendingPulses))
	default:
		out.Message = "Scenario is valid"
	}
	return nil, out, nil
}

// handleCircuitHistory implements the circuit_history tool.
func (s *Server) handleCircuitHistory(ctx context.Context, req *sdk.CallToolRequest, args CircuitHistoryInput) (_ *sdk.CallToolResult, _ CircuitHistoryOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool("circuit_history", start, retErr, slog.Int("limit", args.Limit))
	}()

	if err := s.limits.check("circuit_history"); err != nil {
		return nil, CircuitHistoryOutput{}, err
	}
	if s.store == nil {
		return nil, CircuitHistoryOutput{}, fmt.Errorf("run history is disabled")
	}

	limit := args.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, CircuitHistoryOutput{}, fmt.Errorf("failed to list runs: %w", err)
	}

	items := make([]RunListItem, 0, len(runs))
	for _, r := range runs {
		items = append(items, RunListItem{
			ID:        r.ID,
			Source:    r.Source,
			Board:     fmt.Sprintf("%dx%d", r.Width, r.Height),
			Clock:     r.Clock,
			Activated: r.Activated,
			Receivers: r.ReceiverCount,
			CreatedAt: r.CreatedAt,
		})
	}
	return nil, CircuitHistoryOutput{Runs: items, Count: len(items)}, nil
}

func parseScenario(text string) (*scenario.Scenario, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("'scenario' parameter is required")
	}
	return scenario.Parse([]byte(text))
}

func receiverLines(receivers []models.Receiver) []ReceiverLine {
	out := make([]ReceiverLine, len(receivers))
	for i, r := range receivers {
		out[i] = ReceiverLine{Symbol: r.Symbol, ActivatedAt: r.ActivatedAt, Energy: r.Energy}
	}
	return out
}
