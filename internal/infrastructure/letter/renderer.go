// Package letter renders sanction letters as PDF documents.
package letter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

// Renderer produces the personal loan sanction letter for an approved
// session. When OutputDir is set the PDF is also written to disk; the
// rendered bytes are always returned.
type Renderer struct {
	outputDir string
	now       func() time.Time
}

func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the letter date source, used by tests.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

func (r *Renderer) RenderSanctionLetter(ctx context.Context, session *model.Session) (port.SanctionLetter, error) {
	customerName := session.CustomerName()
	if customerName == "" {
		customerName = "Valued Customer"
	}

	issued := r.now()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 15, "LOANOPS FINANCIAL SERVICES", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Registered NBFC | CIN: U65100MH2024PLC123456", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Email: support@loanops.ai | Phone: 1800-XXX-XXXX", "", 1, "C", false, 0, "")
	pdf.Ln(10)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(5)

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, "PERSONAL LOAN SANCTION LETTER", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Date and reference
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", issued.Format("02 January 2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Reference No: LOA/%s/%s", strings.ToUpper(session.ID()), issued.Format("20060102")), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.CellFormat(0, 8, fmt.Sprintf("Dear %s,", customerName), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.MultiCell(0, 7, "We are pleased to inform you that your Personal Loan application has been approved. Please find the details of your sanctioned loan below:", "", "L", false)
	pdf.Ln(8)

	// Loan details table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "LOAN DETAILS", "", 1, "L", false, 0, "")

	details := [][2]string{
		{"Applicant Name", customerName},
		{"Sanctioned Loan Amount", "Rs. " + formatIndian(session.LoanAmount())},
		{"Rate of Interest", fmt.Sprintf("%.1f%% per annum", session.InterestRate())},
		{"Loan Tenure", fmt.Sprintf("%d months", session.TenureMonths())},
		{"Equated Monthly Instalment (EMI)", "Rs. " + session.EMI().StringFixed(2)},
		{"Processing Fee", "Rs. 1,000 + GST"},
		{"Disbursement Mode", "Direct Bank Transfer"},
	}
	for _, row := range details {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(95, 10, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(95, 10, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	r.writeSchedule(pdf, session, issued)

	// Terms and conditions
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "TERMS AND CONDITIONS", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	terms := []string{
		"1. This sanction is valid for 30 days from the date of issue.",
		"2. Loan disbursement is subject to document verification.",
		"3. Prepayment charges may apply as per RBI guidelines.",
		"4. EMI payment via auto-debit/NACH mandate is mandatory.",
		"5. The borrower agrees to all terms in the loan agreement.",
	}
	for _, term := range terms {
		pdf.CellFormat(0, 7, term, "", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	// Signature
	pdf.CellFormat(0, 8, "For LoanOps Financial Services,", "", 1, "L", false, 0, "")
	pdf.Ln(15)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Authorized Signatory", "", 1, "L", false, 0, "")
	pdf.Ln(10)

	// Footer
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "This is a system-generated sanction letter and does not require a physical signature.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "For any queries, please contact our customer support.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return port.SanctionLetter{}, fmt.Errorf("render sanction letter: %w", err)
	}

	fileName := fmt.Sprintf("sanction_%s.pdf", session.ID())
	if r.outputDir != "" {
		if err := r.writeFile(fileName, buf.Bytes()); err != nil {
			return port.SanctionLetter{}, err
		}
	}

	return port.SanctionLetter{
		FileName:    fileName,
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

// writeSchedule adds the repayment schedule page when loan terms are
// recorded. A missing or degenerate schedule is skipped silently.
func (r *Renderer) writeSchedule(pdf *fpdf.Fpdf, session *model.Session, issued time.Time) {
	schedule := model.GenerateAmortizationSchedule(decimal.NewFromInt(session.LoanAmount()), session.InterestRate(), session.TenureMonths(), issued)
	if len(schedule) == 0 {
		return
	}

	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "REPAYMENT SCHEDULE", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	headers := []string{"#", "Due Date", "EMI", "Principal", "Interest", "Balance"}
	widths := []float64{12, 32, 36, 36, 36, 38}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, entry := range schedule {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", entry.Period), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, entry.DueDate.Format("02 Jan 2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, entry.Total.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, entry.Principal.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, entry.Interest.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, entry.RemainingBalance.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)
}

func (r *Renderer) writeFile(fileName string, data []byte) error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("create letter directory: %w", err)
	}
	path := filepath.Join(r.outputDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sanction letter: %w", err)
	}
	return nil
}

// formatIndian renders an amount with Indian digit grouping, e.g.
// 1250000 becomes 12,50,000.
func formatIndian(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
