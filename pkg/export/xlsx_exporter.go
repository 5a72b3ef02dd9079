package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxSheet      = "Checklist"
	xlsxInfoStart  = 4
	xlsxRowHeight  = 18.0
	xlsxLogoWidth  = 140.0
	xlsxLogoHeight = 50.0
	xlsxPaperA4    = 9
)

var xlsxColumnWidths = []float64{8, 55, 18, 32}

// XLSXExporter renders documents into a print-ready spreadsheet.
type XLSXExporter struct {
	logo []byte
}

// NewXLSXExporter builds an exporter. logo may be nil.
func NewXLSXExporter(logo []byte) *XLSXExporter {
	return &XLSXExporter{logo: logo}
}

type xlsxStyles struct {
	title  int
	info   int
	header int
	cell   int
	found  int
}

// Render writes the document into a single-sheet workbook.
func (e *XLSXExporter) Render(doc Document) ([]byte, error) {
	doc = doc.SpreadsheetLabels()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	for i, width := range xlsxColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	e.addLogo(f)

	if err := f.MergeCell(xlsxSheet, "C1", "D2"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	if err := f.SetCellValue(xlsxSheet, "C1", doc.Title); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, "C1", "D2", styles.title); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}

	row := xlsxInfoStart
	for _, line := range doc.Info {
		first, last := cellName(1, row), cellName(4, row)
		if err := f.MergeCell(xlsxSheet, first, last); err != nil {
			return nil, fmt.Errorf("merge info row: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, first, line.Text()); err != nil {
			return nil, fmt.Errorf("write info row: %w", err)
		}
		if err := f.SetCellStyle(xlsxSheet, first, last, styles.info); err != nil {
			return nil, fmt.Errorf("style info row: %w", err)
		}
		row++
	}
	row++

	headerRow := row
	for i, label := range doc.Columns {
		if err := f.SetCellValue(xlsxSheet, cellName(i+1, row), label); err != nil {
			return nil, fmt.Errorf("write table header: %w", err)
		}
	}
	if err := f.SetCellStyle(xlsxSheet, cellName(1, row), cellName(len(doc.Columns), row), styles.header); err != nil {
		return nil, fmt.Errorf("style table header: %w", err)
	}
	if err := f.SetRowHeight(xlsxSheet, row, xlsxRowHeight); err != nil {
		return nil, fmt.Errorf("size table header: %w", err)
	}
	row++

	for _, item := range doc.Rows {
		values := []interface{}{item.Category, item.Description, "", item.Note}
		if item.Found != nil {
			values[2] = *item.Found
		}
		for i, value := range values {
			if err := f.SetCellValue(xlsxSheet, cellName(i+1, row), value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
		if err := f.SetCellStyle(xlsxSheet, cellName(1, row), cellName(4, row), styles.cell); err != nil {
			return nil, fmt.Errorf("style row %d: %w", row, err)
		}
		if err := f.SetCellStyle(xlsxSheet, cellName(3, row), cellName(3, row), styles.found); err != nil {
			return nil, fmt.Errorf("style row %d: %w", row, err)
		}
		if err := f.SetRowHeight(xlsxSheet, row, xlsxRowHeight); err != nil {
			return nil, fmt.Errorf("size row %d: %w", row, err)
		}
		row++
	}

	row += 2
	for _, sig := range doc.Signatures {
		cells := map[string]string{
			cellName(1, row): sig.Label,
			cellName(2, row): sig.Name,
			cellName(4, row): SignaturePrompt,
		}
		for cell, value := range cells {
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return nil, fmt.Errorf("write signature: %w", err)
			}
		}
		row++
	}

	if err := configureXLSXPage(f, headerRow); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXExporter) addLogo(f *excelize.File) {
	if len(e.logo) == 0 {
		return
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(e.logo))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return
	}
	ext := ".png"
	if format == "jpeg" {
		ext = ".jpg"
	}
	_ = f.AddPictureFromBytes(xlsxSheet, "A1", &excelize.Picture{
		Extension: ext,
		File:      e.logo,
		Format: &excelize.GraphicOptions{
			ScaleX:      xlsxLogoWidth / float64(cfg.Width),
			ScaleY:      xlsxLogoHeight / float64(cfg.Height),
			Positioning: "oneCell",
		},
	})
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: 16},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		{
			Font:      &excelize.Font{Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "left"},
		},
		{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E5E5E5"}},
			Border:    border,
		},
		{
			Font:   &excelize.Font{Size: 11},
			Border: border,
		},
		{
			Font:      &excelize.Font{Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    border,
		},
	}
	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return xlsxStyles{}, fmt.Errorf("create style: %w", err)
		}
		ids[i] = id
	}
	return xlsxStyles{title: ids[0], info: ids[1], header: ids[2], cell: ids[3], found: ids[4]}, nil
}

func configureXLSXPage(f *excelize.File, headerRow int) error {
	size := xlsxPaperA4
	orientation := "portrait"
	fitWidth, fitHeight := 1, 0
	if err := f.SetPageLayout(xlsxSheet, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
		FitToWidth:  &fitWidth,
		FitToHeight: &fitHeight,
	}); err != nil {
		return fmt.Errorf("set page layout: %w", err)
	}

	left, right, top, bottom, header, footer := 1.22, 0.0, 0.2, 0.16, 0.31, 0.31
	vertical := true
	if err := f.SetPageMargins(xlsxSheet, &excelize.PageLayoutMarginsOptions{
		Left:       &left,
		Right:      &right,
		Top:        &top,
		Bottom:     &bottom,
		Header:     &header,
		Footer:     &footer,
		Vertically: &vertical,
	}); err != nil {
		return fmt.Errorf("set page margins: %w", err)
	}

	fitToPage := true
	rowHeight := xlsxRowHeight
	if err := f.SetSheetProps(xlsxSheet, &excelize.SheetPropsOptions{
		FitToPage:        &fitToPage,
		DefaultRowHeight: &rowHeight,
	}); err != nil {
		return fmt.Errorf("set sheet props: %w", err)
	}

	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Titles",
		RefersTo: fmt.Sprintf("%s!$%d:$%d", xlsxSheet, headerRow, headerRow),
		Scope:    xlsxSheet,
	}); err != nil {
		return fmt.Errorf("set print titles: %w", err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
