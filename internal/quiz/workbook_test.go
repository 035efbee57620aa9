package quiz

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestLoadWorkbook(t *testing.T) {
	r := workbookBytes(t, [][]interface{}{
		{"id", "prompt", "image", "option1", "option2", "option3", "option4", "answer"},
		{1, "How many letters?", "q01.png", "4", "5", "6", "7", "6"},
		{2, "Which word is shown?", "questions/q02.png", "HOUSE", "TREE", "RIVER", "CLOUD", "TREE"},
		{3, "No answer row", "q03.png", "a", "b", "c", "d", ""},
	})

	qs, err := LoadWorkbook(r)
	if err != nil {
		t.Fatalf("LoadWorkbook failed: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("loaded %d questions, want 2 (answerless row skipped)", len(qs))
	}

	first := qs[0]
	if first.Seq != 1 || first.Answer != "6" || first.Prompt != "How many letters?" {
		t.Errorf("unexpected first question: %+v", first)
	}
	if first.Image != "questions/q01.png" {
		t.Errorf("bare filename not prefixed: %q", first.Image)
	}
	if fmt.Sprint(first.Options) != "[4 5 6 7]" {
		t.Errorf("options = %v", first.Options)
	}

	if qs[1].Image != "questions/q02.png" {
		t.Errorf("qualified path changed: %q", qs[1].Image)
	}
}

func TestLoadWorkbookMissingColumn(t *testing.T) {
	r := workbookBytes(t, [][]interface{}{
		{"id", "prompt", "image", "option1", "option2"},
		{1, "p", "q01.png", "a", "b"},
	})

	if _, err := LoadWorkbook(r); err == nil {
		t.Error("expected error for missing answer column")
	}
}

func TestLoadWorkbookEmpty(t *testing.T) {
	r := workbookBytes(t, [][]interface{}{
		{"id", "prompt", "image", "option1", "option2", "option3", "option4", "answer"},
	})

	if _, err := LoadWorkbook(r); err == nil {
		t.Error("expected error for workbook without rows")
	}
}
