package service

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/fifaclean/internal/domain/types"
	"github.com/okian/fifaclean/pkg/logger"
)

// Report re-reads the persisted output and lists every column that still
// holds nulls, with its null count and inferred data type. Columns without
// nulls are omitted. The table is also rendered to the report writer.
func (s *Service) Report(ctx context.Context) ([]types.NullEntry, error) {
	tbl, err := s.output.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "report read failed", logger.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrReport, err)
	}

	entries := nullEntries(tbl)
	for _, e := range entries {
		s.metrics.UpdateRemainingNulls(e.Column, e.NullCount)
		s.logger.Info(ctx, "column has nulls",
			logger.String("column", e.Column),
			logger.Int("null_count", e.NullCount),
			logger.String("data_type", e.DataType),
		)
	}
	s.logger.Info(ctx, "null report ready", logger.Int("columns_with_nulls", len(entries)))

	if err := renderReport(s.reportWriter, entries); err != nil {
		return entries, fmt.Errorf("%w: %w", ErrReport, err)
	}
	return entries, nil
}

func renderReport(w io.Writer, entries []types.NullEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(tw, "No null values remain.")
		return tw.Flush()
	}
	_, _ = fmt.Fprintln(tw, "Column\tNull_Count\tData_Type")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Column, e.NullCount, e.DataType)
	}
	return tw.Flush()
}
