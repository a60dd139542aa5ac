// Package importer reads shipment lists from CSV and Excel files into cargo
// request lines. Columns are found by header name in several languages; a
// sheet without a recognised header is read positionally as
// name, length, width, height, weight, quantity.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/cargo-loader/internal/domain/dto"
)

var (
	// ErrNoRows is returned when a file holds no cargo rows.
	ErrNoRows = errors.New("importer: no cargo rows")
	// ErrUnsupportedFormat is returned for file extensions other than csv and xlsx.
	ErrUnsupportedFormat = errors.New("importer: unsupported file format")
)

// Result is the outcome of one import. Cargo holds the rows that parsed;
// rows that failed are reported in the error returned alongside it.
type Result struct {
	Cargo    []dto.CargoRequest
	Warnings []string
}

type column int

const (
	colName column = iota
	colType
	colLength
	colWidth
	colHeight
	colSize
	colDiameter
	colWeight
	colQuantity
	colStack
	colHeightAsHeight
	colLengthAsHeight
	colWidthAsHeight
	colExtension
	colColor
	numColumns
)

var columnNames = [numColumns]string{
	"name", "type", "length", "width", "height", "size", "diameter", "weight",
	"quantity", "stack", "height_as_height", "length_as_height", "width_as_height",
	"extension", "color",
}

// headerAliases maps lowercase header cells to columns.
var headerAliases = map[string]column{
	"name": colName, "description": colName, "item": colName, "cargo": colName, "наименование": colName,
	"type": colType, "kind": colType, "package": colType,
	"length": colLength, "len": colLength, "l": colLength,
	"width": colWidth, "w": colWidth,
	"height": colHeight, "h": colHeight,
	"size": colSize, "dimensions": colSize, "lxwxh": colSize, "размер коробки": colSize, "размер": colSize,
	"diameter": colDiameter, "dia": colDiameter, "d": colDiameter,
	"weight": colWeight, "kg": colWeight, "mass": colWeight, "вес": colWeight,
	"quantity": colQuantity, "qty": colQuantity, "count": colQuantity, "pcs": colQuantity, "packages": colQuantity, "упаковок": colQuantity,
	"stack": colStack, "stackable": colStack, "can stack": colStack,
	"height_as_height": colHeightAsHeight, "height as height": colHeightAsHeight, "upright": colHeightAsHeight,
	"length_as_height": colLengthAsHeight, "length as height": colLengthAsHeight,
	"width_as_height": colWidthAsHeight, "width as height": colWidthAsHeight,
	"extension": colExtension, "margin": colExtension,
	"color": colColor, "colour": colColor,
}

// columns holds the index of each column, -1 when absent.
type columns [numColumns]int

func positional() columns {
	var c columns
	for i := range c {
		c[i] = -1
	}
	c[colName], c[colLength], c[colWidth], c[colHeight], c[colWeight], c[colQuantity] = 0, 1, 2, 3, 4, 5
	return c
}

// DetectColumns maps a header row to columns. It returns false unless at
// least two cells are known headers; the first occurrence of a column wins.
func DetectColumns(row []string) (columns, bool) {
	var c columns
	for i := range c {
		c[i] = -1
	}
	found := 0
	for i, cell := range row {
		col, ok := headerAliases[normalizeHeader(cell)]
		if !ok {
			continue
		}
		found++
		if c[col] == -1 {
			c[col] = i
		}
	}
	return c, found >= 2
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "(["); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

func (c columns) missing() []string {
	var out []string
	if c[colQuantity] == -1 {
		out = append(out, columnNames[colQuantity])
	}
	if c[colSize] != -1 {
		return out
	}
	if c[colHeight] == -1 {
		out = append(out, columnNames[colHeight])
	}
	if c[colDiameter] == -1 {
		if c[colLength] == -1 {
			out = append(out, columnNames[colLength])
		}
		if c[colWidth] == -1 {
			out = append(out, columnNames[colWidth])
		}
	}
	return out
}

// Parse reads r according to the extension of filename.
func Parse(r io.Reader, filename string) (Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".tsv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadExcel(r)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadCSV reads a delimited text file. The delimiter is detected.
func ReadCSV(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, ErrNoRows
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}
	return FromRows(rows, "line")
}

// ReadExcel reads the first sheet of an xlsx workbook.
func ReadExcel(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return FromRows(rows, "row")
}

// DetectDelimiter picks the delimiter among comma, semicolon, tab and pipe
// that splits the most lines into the same number of fields as the first.
func DetectDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		consistent := 0
		for _, row := range records {
			if len(row) == len(records[0]) {
				consistent++
			}
		}
		if score := consistent*10 + len(records[0]); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// FromRows converts sheet rows into cargo lines. Leading rows are skipped
// until a header is found; without one the rows are read positionally.
// Rows that fail are collected into a dto.ValidationErrors keyed by
// "<label> <n>".
func FromRows(rows [][]string, label string) (Result, error) {
	var res Result

	cols, start := positional(), 0
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if c, ok := DetectColumns(row); ok {
			cols, start = c, i+1
			break
		}
		if i >= 5 {
			break
		}
	}
	if start == 0 {
		res.Warnings = append(res.Warnings, "no header row found, reading columns by position")
	} else if missing := cols.missing(); len(missing) > 0 {
		var errs dto.ValidationErrors
		errs.Add("header", "required columns not found: "+strings.Join(missing, ", "))
		return res, errs
	}

	var errs dto.ValidationErrors
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		field := fmt.Sprintf("%s %d", label, i+1)
		cargo, err := parseRow(row, cols)
		if err != nil {
			if start == 0 && i == 0 {
				res.Warnings = append(res.Warnings, "skipped unrecognised first row")
				continue
			}
			errs.Add(field, err.Error())
			continue
		}
		if cargo.Name == "" {
			cargo.Name = strconv.Itoa(len(res.Cargo) + 1)
		}
		res.Cargo = append(res.Cargo, cargo)
	}

	if !errs.Empty() {
		return res, errs
	}
	if len(res.Cargo) == 0 {
		return res, ErrNoRows
	}
	return res, nil
}

func parseRow(row []string, cols columns) (dto.CargoRequest, error) {
	cell := func(c column) string {
		idx := cols[c]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	cargo := dto.CargoRequest{
		Name:  cell(colName),
		Type:  cell(colType),
		Color: cell(colColor),
	}

	var err error
	if size := cell(colSize); size != "" {
		if cargo.Length, cargo.Width, cargo.Height, err = parseSize(size); err != nil {
			return cargo, err
		}
	} else {
		if cargo.Diameter, err = optionalNumber(cell(colDiameter), "diameter"); err != nil {
			return cargo, err
		}
		if cargo.Diameter == 0 {
			if cargo.Length, err = requiredNumber(cell(colLength), "length"); err != nil {
				return cargo, err
			}
			if cargo.Width, err = requiredNumber(cell(colWidth), "width"); err != nil {
				return cargo, err
			}
		}
		if cargo.Height, err = requiredNumber(cell(colHeight), "height"); err != nil {
			return cargo, err
		}
	}

	weight, err := optionalNumber(cell(colWeight), "weight")
	if err != nil {
		return cargo, err
	}
	cargo.Weight = int(math.Round(weight))

	qty, err := requiredNumber(cell(colQuantity), "quantity")
	if err != nil {
		return cargo, err
	}
	if qty != math.Trunc(qty) {
		return cargo, fmt.Errorf("quantity %q is not a whole number", cell(colQuantity))
	}
	if qty < 1 || qty > dto.MaxCount {
		return cargo, fmt.Errorf("quantity %q must be between 1 and %d", cell(colQuantity), dto.MaxCount)
	}
	cargo.Count = int(qty)

	if cargo.Extension, err = optionalNumber(cell(colExtension), "extension"); err != nil {
		return cargo, err
	}

	flags := []struct {
		col column
		dst **bool
	}{
		{colStack, &cargo.Stack},
		{colHeightAsHeight, &cargo.HeightAsHeight},
		{colLengthAsHeight, &cargo.LengthAsHeight},
		{colWidthAsHeight, &cargo.WidthAsHeight},
	}
	for _, f := range flags {
		s := cell(f.col)
		if s == "" {
			continue
		}
		b, ok := parseBool(s)
		if !ok {
			return cargo, fmt.Errorf("%s %q is not yes or no", columnNames[f.col], s)
		}
		*f.dst = &b
	}
	return cargo, nil
}

// parseSize reads "120x80x100" style dimensions, in length, width, height order.
func parseSize(s string) (float64, float64, float64, error) {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == '×' || r == '*' || r == 'х'
	})
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("size %q is not length x width x height", s)
	}
	var dims [3]float64
	for i, p := range parts {
		v, err := requiredNumber(strings.TrimSpace(p), "size")
		if err != nil {
			return 0, 0, 0, err
		}
		dims[i] = v
	}
	return dims[0], dims[1], dims[2], nil
}

func requiredNumber(s, name string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	return optionalNumber(s, name)
}

// optionalNumber parses s, accepting a decimal comma. Empty is zero.
func optionalNumber(s, name string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1", "x", "да", "ja", "sim":
		return true, true
	case "no", "n", "false", "0", "-", "нет", "nee", "não", "nao":
		return false, true
	}
	return false, false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
