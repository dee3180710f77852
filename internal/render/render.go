// Package render formats rewritten articles as WordPress post HTML.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"newspress/internal/core"
)

var boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// formatBold converts **text** markers to <strong> tags.
func formatBold(text string) string {
	return boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
}

// ArticleHTML renders one rewritten article as the blog post body: category
// badge, summary box, styled paragraphs, investment-tip box, the original
// report as a reference section, and the AI notice footer.
func ArticleHTML(a core.Article) string {
	var b strings.Builder

	b.WriteString(`<div style="margin-bottom: 25px;">`)
	b.WriteString(`<span style="background-color: #007bff; color: white; padding: 8px 20px; border-radius: 25px; font-size: 14px; font-weight: 600;">`)
	b.WriteString(a.Category.Label())
	b.WriteString("</span></div>\n\n")

	if a.Summary != "" {
		b.WriteString(`<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 25px; border-radius: 12px; margin-bottom: 35px;">`)
		b.WriteString(`<div style="color: white; font-size: 18px; font-weight: 700; margin-bottom: 10px;">📌 한 줄 요약</div>`)
		b.WriteString(`<p style="color: white; font-size: 17px; line-height: 1.6; margin: 0;">`)
		b.WriteString(formatBold(a.Summary))
		b.WriteString("</p></div>\n\n")
	}

	for i, paragraph := range strings.Split(a.Body, "\n\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		fontSize, fontWeight := "16px", "400"
		if i == 0 {
			fontSize, fontWeight = "18px", "500"
		}
		fmt.Fprintf(&b, `<p style="line-height: 1.9; font-size: %s; font-weight: %s; margin-bottom: 25px; color: #333;">`, fontSize, fontWeight)
		b.WriteString(formatBold(strings.ReplaceAll(paragraph, "\n", "<br>")))
		b.WriteString("</p>\n\n")
	}

	if a.InvestmentTip != "" {
		b.WriteString(`<div style="background: linear-gradient(135deg, #f093fb 0%, #f5576c 100%); padding: 25px; border-radius: 12px; margin: 35px 0;">`)
		b.WriteString(`<div style="color: white; font-size: 18px; font-weight: 700; margin-bottom: 15px;">📊 투자 포인트</div>`)
		b.WriteString(`<p style="color: white; font-size: 16px; line-height: 1.8; margin: 0;">`)
		b.WriteString(formatBold(a.InvestmentTip))
		b.WriteString("</p></div>\n\n")
	}

	if a.OriginalBody != "" || a.OriginalTitle != "" {
		b.WriteString("<hr style=\"margin: 50px 0; border: none; border-top: 2px solid #e5e7eb;\">\n")
		b.WriteString(`<div style="background: white; border-radius: 12px; border: 1px solid #e5e7eb; overflow: hidden; margin: 30px 0;">`)
		b.WriteString(`<div style="background: linear-gradient(to right, #1e40af, #1e3a8a); padding: 20px 24px;">`)
		b.WriteString(`<h2 style="color: white; font-size: 20px; font-weight: 700; margin: 0;">📄 원본 투자 리포트</h2></div>`)
		b.WriteString(`<div style="padding: 24px;">`)

		if a.OriginalTitle != "" {
			b.WriteString(`<div style="margin-bottom: 20px; padding-bottom: 20px; border-bottom: 1px solid #e5e7eb;">`)
			b.WriteString(`<h4 style="color: #6b7280; font-size: 13px; font-weight: 600; margin: 0 0 8px 0; text-transform: uppercase;">제목</h4>`)
			b.WriteString(`<p style="color: #1f2937; font-size: 16px; font-weight: 600; margin: 0; line-height: 1.6;">`)
			b.WriteString(a.OriginalTitle)
			b.WriteString("</p></div>")
		}

		if a.OriginalBody != "" {
			b.WriteString(`<div><h4 style="color: #6b7280; font-size: 13px; font-weight: 600; margin: 0 0 12px 0; text-transform: uppercase;">내용</h4>`)
			b.WriteString(`<div style="background-color: #f9fafb; padding: 20px; border-radius: 8px; border: 1px solid #e5e7eb;">`)
			writeOriginalBody(&b, a.OriginalBody)
			b.WriteString("</div></div>")
		}

		b.WriteString("</div></div>\n")
	}

	b.WriteString(`<div style="background-color: #fff3cd; padding: 15px; border-radius: 8px; margin-top: 30px; border-left: 4px solid #ffc107;">`)
	b.WriteString(`<p style="color: #856404; font-size: 13px; margin: 0; line-height: 1.6;">`)
	b.WriteString(`💡 <strong>알림:</strong> 이 기사는 AI가 원본 투자 리포트를 쉽게 재작성한 것입니다. 투자 결정은 신중하게 하시기 바랍니다.`)
	b.WriteString("</p></div>\n")

	return b.String()
}

// writeOriginalBody renders the raw report text, recognizing ### headings,
// **...** section headers, pipe tables and dash lists paragraph by
// paragraph.
func writeOriginalBody(b *strings.Builder, body string) {
	for i, paragraph := range strings.Split(body, "\n\n") {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			continue
		}
		topMargin := "12px"
		if i == 0 {
			topMargin = "0"
		}

		switch {
		case strings.HasPrefix(trimmed, "###"):
			fmt.Fprintf(b, `<h3 style="color: #1f2937; font-size: 18px; font-weight: 700; margin: %s 0 12px 0; border-bottom: 2px solid #3b82f6;">`, topMargin)
			b.WriteString(formatBold(strings.TrimSpace(strings.TrimPrefix(trimmed, "###"))))
			b.WriteString("</h3>")
		case strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**"):
			fmt.Fprintf(b, `<h4 style="color: #374151; font-size: 16px; font-weight: 600; margin: %s 0 10px 0;">`, topMargin)
			b.WriteString(strings.TrimSpace(strings.ReplaceAll(trimmed, "**", "")))
			b.WriteString("</h4>")
		case strings.Contains(trimmed, "|"):
			writeTable(b, trimmed)
		case strings.HasPrefix(trimmed, "- "):
			b.WriteString(`<ul style="margin: 12px 0; padding-left: 20px; list-style-type: disc;">`)
			for _, line := range strings.Split(trimmed, "\n") {
				line = strings.TrimSpace(line)
				if !strings.HasPrefix(line, "- ") {
					continue
				}
				b.WriteString(`<li style="color: #4b5563; font-size: 14px; line-height: 1.8; margin: 6px 0;">`)
				b.WriteString(formatBold(strings.TrimPrefix(line, "- ")))
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		default:
			fmt.Fprintf(b, `<p style="color: #4b5563; font-size: 14px; line-height: 1.8; margin: %s 0;">`, topMargin)
			b.WriteString(formatBold(strings.ReplaceAll(trimmed, "\n", "<br>")))
			b.WriteString("</p>")
		}
	}
}

// writeTable renders a markdown pipe table. Separator rows are skipped; the
// first row becomes the header.
func writeTable(b *strings.Builder, paragraph string) {
	b.WriteString(`<table style="width: 100%; border-collapse: collapse; margin: 16px 0; font-size: 14px;">`)
	headerWritten := false
	bodyOpen := false
	for _, line := range strings.Split(paragraph, "\n") {
		if strings.Contains(line, "---") {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(line, "|") {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		if !headerWritten {
			b.WriteString("<thead><tr>")
			for _, cell := range cells {
				b.WriteString(`<th style="background-color: #e5e7eb; padding: 10px 12px; text-align: left; font-weight: 600; border: 1px solid #d1d5db;">`)
				b.WriteString(formatBold(cell))
				b.WriteString("</th>")
			}
			b.WriteString("</tr></thead><tbody>")
			headerWritten = true
			bodyOpen = true
			continue
		}
		b.WriteString("<tr>")
		for _, cell := range cells {
			b.WriteString(`<td style="padding: 10px 12px; border: 1px solid #e5e7eb;">`)
			b.WriteString(formatBold(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	if bodyOpen {
		b.WriteString("</tbody>")
	}
	b.WriteString("</table>")
}

// BriefingHTML renders a numbered briefing post from the top-scored items,
// used by the manual curation publish path. Returns the post body and
// excerpt.
func BriefingHTML(items []core.Article, date string) (body, excerpt string) {
	var b strings.Builder

	b.WriteString("<h2>🔥 오늘의 주요 경제 뉴스</h2>\n\n")
	fmt.Fprintf(&b, "<p><em>%s 가장 주목할 만한 경제 뉴스를 엄선하여 전달합니다.</em></p>\n\n", date)
	b.WriteString("<hr>\n\n")

	for i, item := range items {
		fmt.Fprintf(&b, "<h3>%d. %s</h3>\n", i+1, item.Title)
		b.WriteString(`<div style="background-color: #f8f9fa; padding: 15px; border-left: 4px solid #007bff; margin-bottom: 20px;">` + "\n")
		b.WriteString(strings.ReplaceAll(item.Body, "\n", "<br>"))
		b.WriteString("\n</div>\n\n")
	}

	b.WriteString("<hr>\n\n")
	b.WriteString(`<p style="text-align: center; color: #6c757d;"><small>이 브리핑은 자동으로 생성되었습니다.</small></p>`)

	excerpt = fmt.Sprintf("%s 주요 경제 뉴스 %d건을 엄선하여 전달합니다.", date, len(items))
	return b.String(), excerpt
}
