package quiz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"eyecare-service/internal/models"
)

// LoadWorkbook reads seeded vision questions from an .xlsx workbook. The
// first sheet must carry a header row with at least the image, option1..4
// and answer columns; id, prompt and type are optional. Rows without an
// answer are skipped, matching the invariant that an empty expected answer
// is never scoreable.
func LoadWorkbook(r io.Reader) ([]models.VisionQuestion, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no question rows", sheet)
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"image", "option1", "option2", "option3", "option4", "answer"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("sheet %q is missing column %q", sheet, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	questions := make([]models.VisionQuestion, 0, len(rows)-1)
	for seq, row := range rows[1:] {
		answer := cell(row, "answer")
		if answer == "" {
			continue
		}

		q := models.VisionQuestion{
			Seq:    seq,
			Prompt: cell(row, "prompt"),
			Image:  normalizeImagePath(cell(row, "image")),
			Options: []string{
				cell(row, "option1"),
				cell(row, "option2"),
				cell(row, "option3"),
				cell(row, "option4"),
			},
			Answer: answer,
		}
		if id := cell(row, "id"); id != "" {
			if n, err := strconv.Atoi(id); err == nil {
				q.Seq = n
			}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// normalizeImagePath prefixes bare filenames with the questions asset
// folder; already-qualified paths pass through unchanged.
func normalizeImagePath(p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "static/") || strings.HasPrefix(p, "questions/") {
		return p
	}
	return "questions/" + p
}
