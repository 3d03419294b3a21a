package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/mpstats/internal/common"
)

// ExportXLSX runs the analysis and returns the workbook base64-encoded under
// "xlsx". A run without samples fails with FailedPrecondition.
func (s *AnalysisServer) ExportXLSX(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := s.decode(in)
	if err != nil {
		return nil, err
	}

	rep, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		s.logger.Error("export.analyze.failed", "folder", req.Folder, "metric", req.Metric, "error", err)
		return nil, common.ToStatus(err)
	}

	xlsx, err := s.exporter.ExportXLSX(ctx, rep)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "run_id", rep.RunID, "error", err)
		return nil, common.ToStatus(err)
	}

	out, err := structpb.NewStruct(map[string]any{
		"run_id":   rep.RunID,
		"filename": fmt.Sprintf("mpstats-%s-%s.xlsx", rep.Metric.Label(), time.Now().UTC().Format("20060102-150405")),
		"xlsx":     base64.StdEncoding.EncodeToString(xlsx),
	})
	if err != nil {
		return nil, common.InternalError("encode response")
	}
	return out, nil
}
