package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mvasylkiv/vitae/internal/content"
	"github.com/mvasylkiv/vitae/internal/middleware"
	"github.com/mvasylkiv/vitae/pkg/i18n"
	"github.com/mvasylkiv/vitae/pkg/sanitizer"
)

// PDF renders the resume as a downloadable PDF with section titles in the
// request language.
type PDF struct {
	resume *content.Resume
	log    *slog.Logger
}

// NewPDF creates the PDF export handler.
func NewPDF(resume *content.Resume, log *slog.Logger) *PDF {
	return &PDF{resume: resume, log: log}
}

// Download serves GET /resume.pdf.
func (h *PDF) Download(w http.ResponseWriter, r *http.Request) {
	tr := middleware.GetTranslator(r.Context())
	t := func(key string) string {
		if tr != nil {
			return tr.T(key)
		}
		return i18n.T(key)
	}

	var buf bytes.Buffer
	if err := h.build(&buf, t); err != nil {
		h.log.ErrorContext(r.Context(), "pdf render failed", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filename := strings.ReplaceAll(strings.ToLower(h.resume.Profile.Name), " ", "-") + "-resume.pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = buf.WriteTo(w)
}

func (h *PDF) build(buf *bytes.Buffer, t func(string) string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(h.resume.Profile.Name, true)
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	// Core fonts are cp1252; accented characters in translated titles and
	// content need the encoding translator.
	enc := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 10, enc(h.resume.Profile.Name), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.SetTextColor(90, 90, 90)
	doc.CellFormat(0, 7, enc(h.resume.Profile.Title), "", 1, "L", false, 0, "")

	contact := make([]string, 0, 3)
	if h.resume.Profile.Email != "" {
		contact = append(contact, h.resume.Profile.Email)
	}
	if h.resume.Profile.Website != "" {
		contact = append(contact, h.resume.Profile.Website)
	}
	if h.resume.Profile.Location != "" {
		contact = append(contact, h.resume.Profile.Location)
	}
	if len(contact) > 0 {
		doc.SetFont("Helvetica", "", 9)
		doc.CellFormat(0, 6, enc(strings.Join(contact, "  ·  ")), "", 1, "L", false, 0, "")
	}
	doc.SetTextColor(0, 0, 0)
	doc.Ln(3)

	if summary := h.resume.PlainSummary(); summary != "" {
		h.section(doc, enc, t("sections.profile"))
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, enc(summary), "", "L", false)
		doc.Ln(2)
	}

	if len(h.resume.Experience) > 0 {
		h.section(doc, enc, t("sections.experience"))
		for _, exp := range h.resume.Experience {
			doc.SetFont("Helvetica", "B", 11)
			doc.CellFormat(0, 6, enc(exp.Role+" · "+exp.Company), "", 1, "L", false, 0, "")
			doc.SetFont("Helvetica", "I", 9)
			period := exp.Start
			if exp.End != "" {
				period += " – " + exp.End
			}
			doc.CellFormat(0, 5, enc(period), "", 1, "L", false, 0, "")
			if desc := sanitizer.Plain(string(exp.DescriptionHTML)); desc != "" {
				doc.SetFont("Helvetica", "", 10)
				doc.MultiCell(0, 5, enc(desc), "", "L", false)
			}
			for _, hl := range exp.Highlights {
				doc.SetFont("Helvetica", "", 10)
				doc.MultiCell(0, 5, enc("• "+hl), "", "L", false)
			}
			doc.Ln(2)
		}
	}

	if len(h.resume.Education) > 0 {
		h.section(doc, enc, t("sections.education"))
		for _, edu := range h.resume.Education {
			doc.SetFont("Helvetica", "B", 11)
			doc.CellFormat(0, 6, enc(edu.Degree), "", 1, "L", false, 0, "")
			doc.SetFont("Helvetica", "", 10)
			line := edu.School
			if edu.Start != "" {
				line += " · " + edu.Start + "–" + edu.End
			}
			doc.CellFormat(0, 5, enc(line), "", 1, "L", false, 0, "")
			doc.Ln(1)
		}
	}

	if len(h.resume.Skills) > 0 {
		h.section(doc, enc, t("sections.skills"))
		doc.SetFont("Helvetica", "", 10)
		for _, group := range h.resume.Skills {
			doc.MultiCell(0, 5, enc(group.Category+": "+strings.Join(group.Items, ", ")), "", "L", false)
		}
		doc.Ln(2)
	}

	if len(h.resume.Projects) > 0 {
		h.section(doc, enc, t("sections.projects"))
		for _, p := range h.resume.Projects {
			doc.SetFont("Helvetica", "B", 11)
			doc.CellFormat(0, 6, enc(p.Name), "", 1, "L", false, 0, "")
			if desc := sanitizer.Plain(string(p.DescriptionHTML)); desc != "" {
				doc.SetFont("Helvetica", "", 10)
				doc.MultiCell(0, 5, enc(desc), "", "L", false)
			}
			if p.URL != "" {
				doc.SetFont("Helvetica", "", 9)
				doc.SetTextColor(0, 0, 200)
				doc.CellFormat(0, 5, p.URL, "", 1, "L", false, 0, p.URL)
				doc.SetTextColor(0, 0, 0)
			}
			doc.Ln(1)
		}
	}

	return doc.Output(buf)
}

func (h *PDF) section(doc *fpdf.Fpdf, enc func(string) string, title string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, enc(title), "B", 1, "L", false, 0, "")
	doc.Ln(2)
}
