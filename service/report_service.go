package service

import (
	"context"

	"credit-pricing/domain"
	"credit-pricing/report"
)

// ReportService builds export reports from quotes.
type ReportService struct {
	quotes *QuoteService
}

func NewReportService(quotes *QuoteService) *ReportService {
	return &ReportService{quotes: quotes}
}

// Report quotes req and assembles the report. A cached quote is reused.
func (s *ReportService) Report(ctx context.Context, req domain.QuoteRequest, opts report.Options) (report.Report, error) {
	quote, err := s.quotes.Quote(ctx, req)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(quote, opts), nil
}
