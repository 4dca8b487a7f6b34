package services

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/vidaplena/vidaplena/internal/models"
)

// BuildCSV joins the header and rows with commas and newlines, UTF-8, no
// quoting. Embedded delimiters in free-text fields are NOT escaped; this
// mirrors the exports the front-end always produced. See the open question
// in DESIGN.md before switching to a quoting writer.
func BuildCSV(header []string, rows [][]string) []byte {
	buf := &bytes.Buffer{}
	writeCSVRow(buf, header)
	for _, row := range rows {
		writeCSVRow(buf, row)
	}
	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, row []string) {
	for i, field := range row {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(field)
	}
	buf.WriteByte('\n')
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

var mealSlotLabels = map[string]string{
	models.SlotBreakfast: "Café da manhã",
	models.SlotLunch:     "Almoço",
	models.SlotSnack:     "Lanche",
	models.SlotDinner:    "Jantar",
	models.SlotSupper:    "Ceia",
}

// BuildPlanHTML renders a meal plan as a self-contained, inline-styled HTML
// document. The browser print pipeline turns it into a PDF client-side; no
// PDF library is involved.
func BuildPlanHTML(p *models.MealPlan, weekly models.MacroTotals) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(buf, "<title>%s</title>\n", html.EscapeString(p.Title))
	buf.WriteString("</head>\n<body style=\"font-family: Arial, sans-serif; color: #2d3436; margin: 24px;\">\n")
	fmt.Fprintf(buf, "<h1 style=\"color: #00b894;\">%s</h1>\n", html.EscapeString(p.Title))
	for _, day := range p.Days {
		fmt.Fprintf(buf, "<h2 style=\"border-bottom: 1px solid #dfe6e9;\">Dia %d</h2>\n", day.Day)
		buf.WriteString("<table style=\"width: 100%; border-collapse: collapse;\">\n")
		for _, slot := range models.MealSlots {
			m := day.Meals[slot]
			if m == nil {
				continue
			}
			fmt.Fprintf(buf,
				"<tr><td style=\"padding: 4px 8px; font-weight: bold; width: 140px;\">%s</td>"+
					"<td style=\"padding: 4px 8px;\">%s</td>"+
					"<td style=\"padding: 4px 8px; text-align: right;\">%s kcal</td></tr>\n",
				mealSlotLabels[slot], html.EscapeString(m.Name), ftoa(m.Macros.Calories))
		}
		buf.WriteString("</table>\n")
		if day.DailyTotals != nil {
			t := day.DailyTotals
			fmt.Fprintf(buf,
				"<p style=\"font-size: 13px; color: #636e72;\">Total do dia: %s kcal · P %sg · C %sg · G %sg · F %sg</p>\n",
				ftoa(t.Calories), ftoa(t.Protein), ftoa(t.Carbs), ftoa(t.Fat), ftoa(t.Fiber))
		}
	}
	fmt.Fprintf(buf,
		"<p style=\"margin-top: 24px; font-weight: bold;\">Média semanal: %s kcal · P %sg · C %sg · G %sg · F %sg</p>\n",
		ftoa(weekly.Calories), ftoa(weekly.Protein), ftoa(weekly.Carbs), ftoa(weekly.Fat), ftoa(weekly.Fiber))
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
