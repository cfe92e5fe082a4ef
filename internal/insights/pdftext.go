package insights

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxExtractedChars bounds how much resume text is handed to the model.
const maxExtractedChars = 4000

// ExtractPDFText pulls plain text out of a PDF resume so submissions without
// a written pitch can still be assessed from the attached file.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		if sb.Len() > maxExtractedChars {
			break
		}
	}

	text := strings.TrimSpace(sb.String())
	if len(text) > maxExtractedChars {
		text = text[:maxExtractedChars]
	}
	if text == "" {
		return "", fmt.Errorf("no extractable text in pdf")
	}
	return text, nil
}
