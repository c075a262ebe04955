package tlarchive

import (
	"testing"

	"github.com/function61/gokit/testing/assert"
)

func TestReportKey(t *testing.T) {
	assert.EqualString(
		t,
		ReportKey("2024-2025", "teaching-load-small-42_greedy.xlsx"),
		"reports/2024-2025/teaching-load-small-42_greedy.xlsx")

	assert.EqualString(
		t,
		ReportKey("2024/2025", "individual-plan-3.xlsx"),
		"reports/2024-2025/individual-plan-3.xlsx")
}
