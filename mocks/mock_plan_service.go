package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
	"travelfuse/internal/planexport"
	"travelfuse/internal/planner"
	"travelfuse/internal/service"
)

// MockPlanService is a mock implementation of service.PlanService.
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) ParsePlan(ctx context.Context, input service.ParsePlanInput) (*planner.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planner.Result), args.Error(1)
}

func (m *MockPlanService) ParseTimeline(ctx context.Context, input service.ParsePlanInput) (*parser.Outcome[[]domain.TimelineActivity], error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parser.Outcome[[]domain.TimelineActivity]), args.Error(1)
}

func (m *MockPlanService) ExportPlan(ctx context.Context, input service.ParsePlanInput, format planexport.Format) (*service.ExportOutput, error) {
	args := m.Called(ctx, input, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportOutput), args.Error(1)
}
