package catalog

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"io"
	"strings"

	"stanlang/internal/core/config"
	"stanlang/internal/core/errors"
)

// RequiredFields is the number of leading fields every data row must carry:
// name, argument list and return type.
const RequiredFields = 3

// Row is one data record of the exported function table.
type Row struct {
	// Line is the 1-based source line the record starts on, 0 when unknown.
	Line       int
	Name       string
	Args       string
	ReturnType string
	// Extra holds trailing fields; they are carried but not interpreted.
	Extra []string
}

// RowFromRecord validates a raw record and splits it into a Row.
func RowFromRecord(line int, record []string, minFields int) (Row, error) {
	if minFields < RequiredFields {
		minFields = RequiredFields
	}
	if len(record) < minFields {
		err := errors.Newf(errors.CodeValidationError, "row has %d fields, need at least %d", len(record), minFields)
		return Row{}, errors.AddContext(err, errors.CtxLine, line)
	}

	row := Row{
		Line:       line,
		Name:       record[0],
		Args:       record[1],
		ReturnType: record[2],
	}
	if len(record) > RequiredFields {
		row.Extra = append([]string(nil), record[RequiredFields:]...)
	}
	return row, nil
}

// ReadRows reads every data row from r, dropping the configured number of
// header records. A blank line is a record with no fields: it counts towards
// the header, and past the header it is a short row. A short row aborts the
// read.
func ReadRows(r io.Reader, src config.Source) ([]Row, error) {
	counter := &lineCounter{r: r}
	reader := csv.NewReader(counter)
	reader.Comma = src.Comma()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []Row
	consumed := 0
	// encoding/csv skips empty lines, so they are recovered from the gaps
	// between the lines records start and end on.
	blankLines := func(from, to int) error {
		for line := from; line <= to; line++ {
			if consumed < src.HeaderRows {
				consumed++
				continue
			}
			if _, err := RowFromRecord(line, nil, src.MinFields); err != nil {
				return err
			}
		}
		return nil
	}

	lastLine := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if stderrors.As(err, &perr) {
				return nil, errors.AddContext(
					errors.Wrap(perr.Err, errors.CodeParseError, "malformed function table"),
					errors.CtxLine, perr.Line,
				)
			}
			return nil, errors.Wrap(err, errors.CodeParseError, "read function table")
		}

		line, _ := reader.FieldPos(0)
		if err := blankLines(lastLine+1, line-1); err != nil {
			return nil, err
		}
		last := len(record) - 1
		lastLine, _ = reader.FieldPos(last)
		lastLine += strings.Count(record[last], "\n")

		if consumed < src.HeaderRows {
			consumed++
			continue
		}
		row, err := RowFromRecord(line, record, src.MinFields)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := blankLines(lastLine+1, counter.lines()); err != nil {
		return nil, err
	}
	return rows, nil
}

// lineCounter counts the physical lines read through it.
type lineCounter struct {
	r        io.Reader
	newlines int
	last     byte
	seen     bool
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.newlines += bytes.Count(p[:n], []byte{'\n'})
		c.last = p[n-1]
		c.seen = true
	}
	return n, err
}

func (c *lineCounter) lines() int {
	if c.seen && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}
