// zeus/controllers/analysis.go
package controllers

import (
	"context"
	"errors"

	"zeus/zeus/agents/analysis"
	"zeus/zeus/agents/configs"
	"zeus/zeus/sources/psql/dao"
	"zeus/zeus/sources/psql/models"
)

var ErrHistoryDisabled = errors.New("analysis history needs a database")

// RecentLimit caps the history listing.
const RecentLimit = 20

type AnalysisController struct {
	analyzer *analysis.Analyzer
	dao      *dao.AnalysisDAO
}

// NewAnalysisController wires the analyzer; analysisDAO may be nil.
func NewAnalysisController(analyzer *analysis.Analyzer, analysisDAO *dao.AnalysisDAO) *AnalysisController {
	return &AnalysisController{analyzer: analyzer, dao: analysisDAO}
}

func (c *AnalysisController) Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	return c.analyzer.Analyze(ctx, req)
}

func (c *AnalysisController) Recent(ctx context.Context) ([]models.AnalysisRecord, error) {
	if c.dao == nil {
		return nil, ErrHistoryDisabled
	}
	return c.dao.ListRecentAnalyses(ctx, RecentLimit)
}

type ModesResponse struct {
	Modes        []configs.AnalysisMode `json:"modes"`
	AspectRatios []analysis.AspectRatio `json:"aspect_ratios"`
}

func (c *AnalysisController) Modes() ModesResponse {
	return ModesResponse{Modes: c.analyzer.Modes(), AspectRatios: analysis.AspectRatios}
}
