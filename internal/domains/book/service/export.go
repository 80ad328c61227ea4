package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"bookstore-catalog/internal/domains/book/model"
)

const ExportSheetName = "Books"

var exportHeaders = []string{
	"ISBN",
	"Title (ES)",
	"Title (EN)",
	"Publisher",
	"Authors",
	"Base Price",
	"Discount %",
	"Final Price",
	"Publication Date",
	"Cover",
}

// Export renders one catalog page as an xlsx workbook.
func (s *bookService) Export(ctx context.Context, page, size int) (*excelize.File, error) {
	books, err := s.GetAll(ctx, page, size)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildBooksExcelFile(books []model.BookDto) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, err
	}

	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(ExportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(ExportSheetName, "A1", lastCol, headerStyle)
	}

	for i, b := range books {
		rowNum := i + 2

		publisher := ""
		if b.Publisher != nil {
			publisher = b.Publisher.Name
		}
		authors := make([]string, 0, len(b.Authors))
		for _, a := range b.Authors {
			authors = append(authors, strings.TrimSpace(a.Name+" "+a.Surname))
		}

		values := []interface{}{
			b.Isbn,
			b.TitleEs,
			b.TitleEn,
			publisher,
			strings.Join(authors, ", "),
			b.BasePrice.InexactFloat64(),
			b.DiscountPercentage,
			b.FinalPrice.InexactFloat64(),
			b.PublicationDate.Format("2006-01-02"),
			b.Cover,
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(ExportSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
	}

	return f, nil
}
