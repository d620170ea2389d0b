package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zzstudio/invoicedesk/internal/common"
	"github.com/zzstudio/invoicedesk/internal/query"
)

// Column order of the export file. Fixed: downstream accounting tooling
// matches columns by position, not by header.
var headers = []string{
	"发票号码",
	"处理时间",
	"开票日期",
	"销售方名称",
	"销售方纳税人识别号",
	"购买方名称",
	"自产农产品",
	"货物或应税劳务名称",
	"规格型号",
	"单位",
	"数量",
	"单价",
	"金额",
	"税率",
	"税额",
	"价税合计",
	"备注",
	"源文件名",
}

// Service renders query output to a fixed-column XLSX workbook.
type Service struct {
	engine *query.Engine
	logger *slog.Logger
}

func NewService(engine *query.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, logger: logger}
}

// ExportXLSX writes the filtered, flattened, ungrouped rows to path. One row
// per line item, never a summary row. On failure no partial file is left
// behind: the workbook is built in memory and lands on disk via temp+rename.
func (s *Service) ExportXLSX(f query.Filter, path string) (int, error) {
	start := time.Now()
	rows := s.engine.ExportRows(f)

	wb := excelize.NewFile()
	const sheet = "Sheet1"

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = wb.SetCellValue(sheet, cell, h)
	}

	written := 0
	for _, row := range rows {
		if row.IsSummary() {
			// Summary rows belong to the report view only.
			continue
		}
		writeRow(wb, sheet, written+2, row)
		written++
	}

	// Widen the identity and description columns.
	_ = wb.SetColWidth(sheet, "A", "A", 22)
	_ = wb.SetColWidth(sheet, "B", "C", 16)
	_ = wb.SetColWidth(sheet, "D", "F", 30)
	_ = wb.SetColWidth(sheet, "H", "H", 34)
	_ = wb.SetColWidth(sheet, "R", "R", 40)

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return 0, common.NewAppError("EXPORT_FAILURE", "cannot build workbook", err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return 0, common.NewAppError("EXPORT_FAILURE", fmt.Sprintf("cannot write %s", path), err)
	}

	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", written,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return written, nil
}

func writeRow(wb *excelize.File, sheet string, rowNum int, row query.Row) {
	flag := ""
	if row.SelfProducedAgricultural {
		flag = "是"
	}
	values := []any{
		row.InvoiceNumber,
		row.ProcessedTimestamp,
		row.IssueDate,
		row.SellerName,
		row.SellerTaxID,
		row.BuyerName,
		flag,
		row.Description,
		row.Spec,
		row.Unit,
		row.Quantity,
		row.UnitPrice,
		row.Amount.StringFixed(2),
		row.TaxRate,
		row.TaxAmount.StringFixed(2),
		row.LineTotal.StringFixed(2),
		row.Remarks,
		row.SourceFileName,
	}
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
		_ = wb.SetCellValue(sheet, cell, v)
	}
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
