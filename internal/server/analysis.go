package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/mpstats/internal/analysis"
	"github.com/joseph-ayodele/mpstats/internal/common"
	"github.com/joseph-ayodele/mpstats/internal/stats"
)

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Report, error)
}

// Exporter renders a report as an XLSX workbook.
type Exporter interface {
	ExportXLSX(ctx context.Context, rep *analysis.Report) ([]byte, error)
}

type AnalysisServer struct {
	analyzer Analyzer
	exporter Exporter
	logger   *slog.Logger
}

func NewAnalysisServer(a Analyzer, exp Exporter, logger *slog.Logger) *AnalysisServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisServer{analyzer: a, exporter: exp, logger: logger}
}

// Analyze implements AnalysisServiceServer. A run that extracts nothing is
// not an RPC error; the response carries no_results and the message.
func (s *AnalysisServer) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := s.decode(in)
	if err != nil {
		return nil, err
	}

	rep, err := s.analyzer.Analyze(ctx, req)
	if err != nil && !errors.Is(err, common.ErrNoSamples) {
		s.logger.Error("analyze failed", "folder", req.Folder, "metric", req.Metric, "error", err)
		return nil, common.ToStatus(err)
	}

	out, err := structpb.NewStruct(ResponseMap(rep))
	if err != nil {
		s.logger.Error("analyze response encoding failed", "error", err)
		return nil, common.InternalError("encode response")
	}
	return out, nil
}

func (s *AnalysisServer) decode(in *structpb.Struct) (analysis.Request, error) {
	data, err := protojson.Marshal(in)
	if err != nil {
		return analysis.Request{}, common.InvalidArgumentErrorf("request: %v", err)
	}
	req, err := analysis.DecodeRequest(data)
	if err != nil {
		s.logger.Warn("request rejected", "error", err)
		return analysis.Request{}, common.ToStatus(err)
	}
	return req, nil
}

func nullable(v stats.Value) any {
	if x, ok := v.Get(); ok {
		return x
	}
	return nil
}

// ResponseMap flattens a report into the JSON-compatible response shape.
func ResponseMap(rep *analysis.Report) map[string]any {
	files := make([]any, 0, len(rep.Samples))
	for _, smp := range rep.Samples {
		files = append(files, map[string]any{"file": smp.SourceName, "value": smp.Value})
	}
	skipped := make([]any, 0)
	for _, f := range rep.Skipped() {
		skipped = append(skipped, map[string]any{"file": f.Name, "reason": string(f.Skip), "error": f.Err})
	}

	out := map[string]any{
		"run_id":          rep.RunID,
		"metric":          rep.Metric.Label(),
		"unit":            rep.Metric.Unit(),
		"files_processed": len(rep.Samples),
		"files":           files,
		"skipped":         skipped,
		"stats": map[string]any{
			"scanned":   int(rep.Stats.Scanned),
			"matched":   int(rep.Stats.Matched),
			"succeeded": int(rep.Stats.Succeeded),
			"no_match":  int(rep.Stats.NoMatch),
			"failed":    int(rep.Stats.Failed),
		},
		"no_results": rep.NoResults(),
	}

	if rep.NoResults() {
		out["message"] = analysis.NoResultsMessage(rep.Metric)
		return out
	}
	if sum := rep.Summary; sum != nil {
		out["summary"] = map[string]any{
			"n":                sum.N,
			"mean":             sum.Mean,
			"min":              sum.Min,
			"max":              sum.Max,
			"std_dev":          nullable(sum.StdDev),
			"variance":         nullable(sum.Variance),
			"cp":               nullable(sum.Cp),
			"cpk":              nullable(sum.Cpk),
			"usl":              sum.Limits.USL,
			"lsl":              sum.Limits.LSL,
			"usl_defaulted":    rep.LimitsDefaulted.USL,
			"lsl_defaulted":    rep.LimitsDefaulted.LSL,
			"limits_defaulted": rep.LimitsDefaulted.USL || rep.LimitsDefaulted.LSL,
			"limits_inverted":  sum.LimitsInverted,
		}
	}
	return out
}
