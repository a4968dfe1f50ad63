package parser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelfuse/internal/domain"
	"travelfuse/internal/parser"
)

func TestSuccess(t *testing.T) {
	out := parser.Success("data", "w1")

	assert.True(t, out.Succeeded)
	require.NotNil(t, out.Data)
	assert.Equal(t, "data", *out.Data)
	assert.Empty(t, out.Errors)
	assert.Equal(t, []string{"w1"}, out.Warnings)
	assert.True(t, out.HasIssues())
}

func TestFailure_NilFallback(t *testing.T) {
	out := parser.Failure[string]([]string{"boom"}, nil)

	assert.False(t, out.Succeeded)
	assert.Nil(t, out.Data)
	assert.Equal(t, []string{"boom"}, out.Errors)
}

func TestIssuesSummary(t *testing.T) {
	out := parser.Outcome[int]{Errors: []string{"e1", "e2"}, Warnings: []string{"w1"}}
	assert.Equal(t, "错误: e1, e2; 警告: w1", out.IssuesSummary())

	clean := parser.Success(1)
	assert.False(t, clean.HasIssues())
	assert.Empty(t, clean.IssuesSummary())
}

func TestNewContext(t *testing.T) {
	pctx := parser.NewContext(domain.PlanMetadata{Destination: "北京", StartDate: "2025-05-01", TotalDays: 3})

	assert.Equal(t, "北京", pctx.Destination)
	assert.Equal(t, 3, pctx.TotalDays)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), pctx.StartDate)

	bad := parser.NewContext(domain.PlanMetadata{StartDate: "May 1"})
	assert.True(t, bad.StartDate.IsZero())
}

func TestPreprocess(t *testing.T) {
	in := "  第一天\r\n\r\n\r\n\r\n- **上午** 故宫\r下午  \n"

	assert.Equal(t, "第一天\n\n- **上午** 故宫\n下午", parser.Preprocess(in))
}
