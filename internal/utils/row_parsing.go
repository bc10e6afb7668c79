package utils

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
)

// column positions of a row without a header line
const (
	colName = iota
	colPhone
	colRegion
	colStatus
)

var headerAliases = map[string]int{
	"name":     colName,
	"fio":      colName,
	"фио":      colName,
	"имя":      colName,
	"клиент":   colName,
	"phone":    colPhone,
	"phones":   colPhone,
	"телефон":  colPhone,
	"телефоны": colPhone,
	"номер":    colPhone,
	"region":   colRegion,
	"регион":   colRegion,
	"город":    colRegion,
	"status":   colStatus,
	"статус":   colStatus,
}

var headerFolder = cases.Fold()

// ReadSpreadsheet decodes an .xlsx or .csv file into raw cell rows
func ReadSpreadsheet(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readXLSX(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, models.ErrUnsupportedFileType
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, models.ErrNoRows
	}

	rows, err := f.GetRows(sheets[f.GetActiveSheetIndex()])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks ';' for spreadsheet exports from russian locales and ',' otherwise
func sniffDelimiter(data []byte) rune {
	line, _ := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

// ParseRows extracts (name, phone, region[, status]) tuples from decoded rows.
// A first row naming known columns is used as the header; rows are numbered
// by their 1-based line in the sheet and blank lines are skipped.
func ParseRows(rows [][]string) []models.ParsedRow {
	if len(rows) == 0 {
		return nil
	}

	columns := []int{colName, colPhone, colRegion, colStatus}
	start := 0
	if header, ok := detectHeader(rows[0]); ok {
		columns = header
		start = 1
	}

	parsed := make([]models.ParsedRow, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		parsed = append(parsed, models.ParsedRow{
			Name:      models.StringPtr(cell(row, columns[colName])),
			Phone:     strings.TrimSpace(cell(row, columns[colPhone])),
			Region:    strings.TrimSpace(cell(row, columns[colRegion])),
			Status:    strings.ToUpper(strings.TrimSpace(cell(row, columns[colStatus]))),
			RowNumber: i + 1,
		})
	}
	return parsed
}

// detectHeader maps each logical column to its index when row is a header line
func detectHeader(row []string) ([]int, bool) {
	columns := []int{-1, -1, -1, -1}
	matched := 0
	for i, value := range row {
		key := headerFolder.String(strings.TrimSpace(value))
		col, ok := headerAliases[key]
		if !ok || columns[col] != -1 {
			continue
		}
		columns[col] = i
		matched++
	}
	if matched == 0 || columns[colPhone] == -1 {
		return nil, false
	}
	return columns, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
