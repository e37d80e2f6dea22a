package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agriempower/backend/internal/content"
	"github.com/agriempower/backend/internal/domain"
)

// DirectoryService exposes the static catalogue and accepts community reports
type DirectoryService struct {
	dir    *content.Directory
	logger *zap.Logger
	now    func() time.Time
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(dir *content.Directory, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{dir: dir, logger: logger, now: time.Now}
}

func (s *DirectoryService) Schemes() []domain.Scheme {
	return s.dir.Schemes
}

func (s *DirectoryService) Resources() []domain.Resource {
	return s.dir.Resources
}

func (s *DirectoryService) Regions() []domain.RegionOverview {
	return s.dir.Regions
}

// RecentReports returns the sample community reports
func (s *DirectoryService) RecentReports() []domain.CommunityReport {
	return s.dir.Reports
}

// SubmitReport stamps the report with an id and date and hands it back.
// Reports are not stored.
func (s *DirectoryService) SubmitReport(report domain.CommunityReport) domain.CommunityReport {
	report.ID = uuid.NewString()
	report.Date = s.now().UTC()
	s.logger.Info("community report received",
		zap.String("id", report.ID),
		zap.String("location", report.Location),
		zap.Int("severity", report.Severity),
	)
	return report
}
