package importer

import (
	"context"
	"fmt"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Parser names used in metrics and logs.
const (
	ParserHeuristic = "heuristic"
	ParserLLM       = "llm"
	ParserDegraded  = "heuristic_fallback"
)

// Fallback parses with the primary parser when one is configured and with
// the heuristic parser otherwise. A failing primary parser degrades to the
// heuristic one with a warning instead of failing the import.
type Fallback struct {
	primary   Parser
	heuristic *HeuristicParser
	log       logger.Logger
}

// NewFallback builds a Fallback. primary may be nil.
func NewFallback(primary Parser, heuristic *HeuristicParser) *Fallback {
	if heuristic == nil {
		heuristic = NewHeuristicParser()
	}
	return &Fallback{
		primary:   primary,
		heuristic: heuristic,
		log:       logger.Named("importer"),
	}
}

// Online reports whether a primary parser is configured.
func (f *Fallback) Online() bool {
	return f.primary != nil
}

// Parse implements Parser.
func (f *Fallback) Parse(ctx context.Context, raw string) (Result, error) {
	if err := CheckText(raw); err != nil {
		return Result{Students: []model.Student{}, Warnings: []string{TooShortWarning}}, err
	}

	if f.primary == nil {
		return f.offline(ctx, raw, ParserHeuristic, OfflineWarning)
	}

	res, err := f.primary.Parse(ctx, raw)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		f.log.Warn(ctx, "primary parser failed, using heuristic parser", logger.Error(err))
		return f.offline(ctx, raw, ParserDegraded, fmt.Sprintf("AI parsing failed (%v). Parsing was done via simple regex.", err))
	}
	if res.Students == nil {
		res.Students = []model.Student{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	metrics.RecordImport(ParserLLM, len(res.Students), len(res.Warnings))
	return res, nil
}

func (f *Fallback) offline(ctx context.Context, raw, parser, warning string) (Result, error) {
	res, err := f.heuristic.Parse(ctx, raw)
	if err != nil {
		return res, err
	}
	res.Warnings = append([]string{warning}, res.Warnings...)
	metrics.RecordImport(parser, len(res.Students), len(res.Warnings))
	f.log.Debug(ctx, "parsed roster text", logger.String("parser", parser), logger.Int("students", len(res.Students)))
	return res, nil
}
