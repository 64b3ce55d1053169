package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReportCardSubject is one graded subject line on a report card.
type ReportCardSubject struct {
	Name          string
	CAOne         float64
	CATwo         float64
	CAThree       float64
	CAFour        float64
	Exam          float64
	Total         float64
	LetterGrade   string
	Position      int
	CohortAverage float64
	Remark        string
}

// ReportCard holds everything the PDF renderer needs for one student.
type ReportCard struct {
	SchoolName      string
	StudentName     string
	ClassTag        string
	GradeTag        string
	GeneratedAt     time.Time
	SchoolOpened    int
	TimesPresent    int
	TimesAbsent     int
	TeacherComment  string
	HeadComment     string
	Effort          string
	Behaviour       string
	Subjects        []ReportCardSubject
	CumulativeScore float64
	Average         float64
	AverageGrade    string
}

// PDFExporter renders report cards and generic datasets into PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

var subjectTableColumns = []struct {
	label string
	width float64
}{
	{"SUBJECT", 44},
	{"CA1", 12},
	{"CA2", 12},
	{"CA3", 12},
	{"CA4", 12},
	{"EXAM", 14},
	{"TOTAL", 14},
	{"GRADE", 14},
	{"POS", 12},
	{"CLS AVG", 16},
	{"REMARK", 28},
}

// RenderReportCard creates a single-student report card document.
func (e *PDFExporter) RenderReportCard(card ReportCard) ([]byte, error) {
	if card.StudentName == "" {
		return nil, fmt.Errorf("report card requires a student name")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	title := card.SchoolName
	if title == "" {
		title = "STUDENT REPORT CARD"
	}
	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(0, 9, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Terminal Report Sheet", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", card.StudentName), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Class: %s", card.ClassTag), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(63, 6, fmt.Sprintf("School Opened: %d", card.SchoolOpened), "", 0, "L", false, 0, "")
	pdf.CellFormat(63, 6, fmt.Sprintf("Times Present: %d", card.TimesPresent), "", 0, "L", false, 0, "")
	pdf.CellFormat(64, 6, fmt.Sprintf("Times Absent: %d", card.TimesAbsent), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 8)
	for _, col := range subjectTableColumns {
		pdf.CellFormat(col.width, 7, col.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, subject := range card.Subjects {
		cells := []string{
			subject.Name,
			formatScore(subject.CAOne),
			formatScore(subject.CATwo),
			formatScore(subject.CAThree),
			formatScore(subject.CAFour),
			formatScore(subject.Exam),
			formatScore(subject.Total),
			subject.LetterGrade,
			formatPosition(subject.Position),
			formatScore(subject.CohortAverage),
			subject.Remark,
		}
		for i, col := range subjectTableColumns {
			align := "C"
			if i == 0 || i == len(subjectTableColumns)-1 {
				align = "L"
			}
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(63, 6, fmt.Sprintf("Cumulative Score: %s", formatScore(card.CumulativeScore)), "", 0, "L", false, 0, "")
	pdf.CellFormat(63, 6, fmt.Sprintf("Average: %s", formatScore(card.Average)), "", 0, "L", false, 0, "")
	pdf.CellFormat(64, 6, fmt.Sprintf("Grade: %s", card.AverageGrade), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 9)
	if card.Effort != "" || card.Behaviour != "" {
		pdf.CellFormat(95, 6, fmt.Sprintf("Effort: %s", card.Effort), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, fmt.Sprintf("Behaviour: %s", card.Behaviour), "", 1, "L", false, 0, "")
	}
	if card.TeacherComment != "" {
		pdf.MultiCell(0, 6, fmt.Sprintf("Class Teacher: %s", card.TeacherComment), "", "L", false)
	}
	if card.HeadComment != "" {
		pdf.MultiCell(0, 6, fmt.Sprintf("Head Teacher: %s", card.HeadComment), "", "L", false)
	}

	generated := card.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", generated.Format("2006-01-02 15:04 MST")), "", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render report card pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			value := row[header]
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func formatPosition(pos int) string {
	if pos <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", pos)
}
