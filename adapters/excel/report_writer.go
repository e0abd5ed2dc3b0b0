// Package excel exports assessments as spreadsheet workbooks.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fitcoach/models"
)

const (
	summarySheet   = "Summary"
	nutritionSheet = "Nutrition"
	flagsSheet     = "Flags"
)

// ReportWriter builds an xlsx workbook from one assessment.
type ReportWriter struct{}

// NewReportWriter creates a new report writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteTo streams the workbook for one assessment to w.
func (rw *ReportWriter) WriteTo(w io.Writer, a *models.Assessment) error {
	f, err := rw.build(a)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveAs writes the workbook for one assessment to path.
func (rw *ReportWriter) SaveAs(path string, a *models.Assessment) error {
	f, err := rw.build(a)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func (rw *ReportWriter) build(a *models.Assessment) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := rw.writeSummary(f, a); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing summary sheet: %w", err)
	}
	if err := rw.writeNutrition(f, a); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing nutrition sheet: %w", err)
	}
	if err := rw.writeFlags(f, a); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing flags sheet: %w", err)
	}

	// The default sheet excelize creates is replaced by Summary.
	idx, err := f.GetSheetIndex(summarySheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func (rw *ReportWriter) writeSummary(f *excelize.File, a *models.Assessment) error {
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	numbers := a.Report.Numbers
	timeline := a.Report.Timeline

	rows := [][]interface{}{
		{"Assessment ID", a.ID.String()},
		{"Created At", a.CreatedAt.Format("2006-01-02 15:04")},
		{"Trainer", a.TrainerName},
		{"Fallback Report", a.UsedFallback},
		{},
		{"Maintenance Calories (kcal/day)", numbers.CurrentMaintenanceCalories},
		{"Daily Deficit Needed (kcal)", numbers.DailyCalorieDeficitNeeded},
		{"Target Intake (kcal/day)", numbers.TargetIntakeKcal},
		{"Target Activity Burn (kcal/day)", numbers.TargetBurnPerDayActivity},
		{},
		{"Excess Fat (kg)", timeline.ExcessFatKG},
		{"Requested Timeline (weeks)", timeline.WeeksToGoal},
		{"Projected Loss (kg/week)", timeline.ProjectedLossPerWeek},
		{"Timeline Realistic", timeline.IsTimelineRealistic},
	}
	if timeline.AdjustedTimelineWeeks != nil {
		rows = append(rows, []interface{}{"Adjusted Timeline (weeks)", *timeline.AdjustedTimelineWeeks})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (rw *ReportWriter) writeNutrition(f *excelize.File, a *models.Assessment) error {
	if _, err := f.NewSheet(nutritionSheet); err != nil {
		return err
	}

	n := a.Report.NutritionTargets
	rows := [][]interface{}{
		{"Target", "Value"},
		{"Protein (g/day)", n.ProteinG},
		{"Water (L/day)", n.WaterL},
	}
	if len(n.CarbsGRange) == 2 {
		rows = append(rows, []interface{}{"Carbs (g/day)", fmt.Sprintf("%.0f-%.0f", n.CarbsGRange[0], n.CarbsGRange[1])})
	}
	if len(n.FatsGRange) == 2 {
		rows = append(rows, []interface{}{"Fats (g/day)", fmt.Sprintf("%.0f-%.0f", n.FatsGRange[0], n.FatsGRange[1])})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(nutritionSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (rw *ReportWriter) writeFlags(f *excelize.File, a *models.Assessment) error {
	if _, err := f.NewSheet(flagsSheet); err != nil {
		return err
	}

	header := []interface{}{"Severity", "Message"}
	if err := f.SetSheetRow(flagsSheet, "A1", &header); err != nil {
		return err
	}
	for i, flag := range a.Report.Flags {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{flag.Severity, flag.Message}
		if err := f.SetSheetRow(flagsSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
