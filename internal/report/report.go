package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shotline/internal/batch"
	"shotline/internal/deps"
	"shotline/internal/pipeline"
	"shotline/internal/preflight"
	"shotline/internal/store"
)

var titleCaser = cases.Title(language.Und)

// StatusLabel renders a record status for humans, e.g. "partially_failed"
// becomes "Partially Failed".
func StatusLabel(status string) string {
	return titleCaser.String(strings.ReplaceAll(status, "_", " "))
}

// BatchTable renders one row per shot of a finished batch.
func BatchTable(results []batch.ShotResult) string {
	headers := []string{"Shot", "Frames", "Status", "Duration", "Detail"}
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, batchRow(result))
	}
	return RenderTable(headers, rows, []Alignment{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft})
}

func batchRow(result batch.ShotResult) []string {
	shotName := result.Entry.Sequence + result.Entry.Shot
	if result.Err != nil {
		return []string{shotName, "", "Rejected", "", result.Err.Error()}
	}
	summary := result.Summary
	detail := ""
	if failed := summary.FailedStages(); len(failed) > 0 {
		detail = "failed: " + strings.Join(failed, ", ")
	} else if skipped := summary.SkippedCount(); skipped > 0 {
		detail = fmt.Sprintf("%d stage(s) skipped", skipped)
	}
	return []string{
		summary.Shot,
		fmt.Sprintf("%d-%d", summary.FirstFrame, summary.LastFrame),
		StatusLabel(string(summary.Status)),
		formatDuration(summary.Duration),
		detail,
	}
}

// StageTable renders the per-stage outcomes of one run.
func StageTable(outcomes []pipeline.StageOutcome) string {
	headers := []string{"Stage", "Result", "Duration", "Detail"}
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, stageRow(outcome))
	}
	return RenderTable(headers, rows, []Alignment{AlignLeft, AlignLeft, AlignRight, AlignLeft})
}

func stageRow(outcome pipeline.StageOutcome) []string {
	if outcome.Skipped {
		return []string{outcome.Stage, "Skipped", "", outcome.SkipReason}
	}
	res := outcome.Result
	if res == nil {
		return []string{outcome.Stage, "", "", ""}
	}
	label := "OK"
	detail := res.Message
	if !res.Success {
		label = StatusLabel(string(res.Kind))
		if len(res.Errors) > 0 {
			detail = res.Errors[0]
		}
	}
	return []string{outcome.Stage, label, formatDuration(res.Duration), detail}
}

// RunsTable renders persisted run history rows.
func RunsTable(runs []store.Run) string {
	headers := []string{"Run", "Shot", "Pipeline", "Frames", "Status", "Duration", "Started"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.Shot,
			run.Pipeline,
			fmt.Sprintf("%d-%d", run.FirstFrame, run.LastFrame),
			StatusLabel(string(run.Status)),
			formatDuration(run.Duration),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return RenderTable(headers, rows, []Alignment{
		AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft,
	})
}

// PreflightTable renders environment checks and binary availability.
func PreflightTable(checks []preflight.Result, binaries []deps.Status) string {
	headers := []string{"Check", "Result", "Detail"}
	rows := make([][]string, 0, len(checks)+len(binaries))
	for _, check := range checks {
		rows = append(rows, []string{check.Name, passLabel(check.Passed), check.Detail})
	}
	for _, status := range binaries {
		label := passLabel(status.Available)
		if !status.Available && status.Optional {
			label = "Optional"
		}
		rows = append(rows, []string{status.Name, label, status.Detail})
	}
	return RenderTable(headers, rows, []Alignment{AlignLeft, AlignLeft, AlignLeft})
}

func passLabel(ok bool) string {
	if ok {
		return "OK"
	}
	return "Failed"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.Round(time.Millisecond).String()
}
