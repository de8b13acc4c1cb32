// Package postcsv reads and writes scheduled posts as CSV.
//
// Columns are bound to models.Post fields through their `csv` struct tags. The
// header order on export follows the struct field order; on import columns are
// matched by name, so order does not matter and unknown columns are ignored.
package postcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
)

var ErrParse = errors.New("csv parse error")

// ParseError reports the physical line (1-based) and column that failed. For a
// quoted field spanning several lines, Line is where the field starts.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("csv line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("csv line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

const (
	columnPlatform    = "platform"
	columnScheduledAt = "scheduled_at"
)

// legacyAliases maps column names written by older exports to current ones.
var legacyAliases = map[string]string{
	"datetime": columnScheduledAt,
}

var required = []string{columnPlatform, columnScheduledAt}

type column struct {
	name  string
	index int
}

var (
	columns  = postColumns()
	timeType = reflect.TypeOf(time.Time{})
	byName   = indexColumns(columns)
)

func postColumns() []column {
	t := reflect.TypeOf(models.Post{})
	cols := make([]column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("csv")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, column{name: tag, index: i})
	}
	return cols
}

func indexColumns(cols []column) map[string]column {
	m := make(map[string]column, len(cols))
	for _, c := range cols {
		m[c.name] = c
	}
	return m
}

// Header returns the export column names in order.
func Header() []string {
	h := make([]string, len(columns))
	for i, c := range columns {
		h[i] = c.name
	}
	return h
}

// Encode writes a header row followed by one row per post. Line breaks inside
// fields are written as LF, the only form the reader hands back unchanged.
func Encode(w io.Writer, posts []models.Post) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for _, p := range posts {
		v := reflect.ValueOf(p)
		for i, c := range columns {
			f := v.Field(c.index)
			if f.Type() == timeType {
				row[i] = f.Interface().(time.Time).Format(models.ScheduledAtLayout)
				continue
			}
			row[i] = models.NormalizeNewlines(f.String())
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Decode parses every row of r. It returns either all posts or an error; it never
// returns a partial result.
func Decode(r io.Reader) ([]models.Post, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Line: 1, Err: errors.New("missing header row")}
		}
		return nil, &ParseError{Line: readErrorLine(err), Err: err}
	}

	positions, err := bindHeader(header)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Line: readErrorLine(err), Err: err}
		}

		p, err := decodeRow(record, positions, cr.FieldPos)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func readErrorLine(err error) int {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return perr.StartLine
	}
	return 0
}

// bindHeader maps each known column to its position in the file.
func bindHeader(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if alias, ok := legacyAliases[name]; ok {
			name = alias
		}
		if _, known := byName[name]; !known {
			continue
		}
		if _, dup := positions[name]; dup {
			return nil, &ParseError{Line: 1, Column: name, Err: errors.New("duplicate column")}
		}
		positions[name] = i
	}

	for _, name := range required {
		if _, ok := positions[name]; !ok {
			return nil, &ParseError{Line: 1, Column: name, Err: errors.New("missing required column")}
		}
	}
	return positions, nil
}

// decodeRow binds one record. fieldPos reports where a field of the record starts.
func decodeRow(record []string, positions map[string]int, fieldPos func(field int) (line, column int)) (models.Post, error) {
	var p models.Post
	v := reflect.ValueOf(&p).Elem()

	for name, pos := range positions {
		c := byName[name]
		value := record[pos]
		f := v.Field(c.index)

		if f.Type() == timeType {
			t, err := time.Parse(models.ScheduledAtLayout, value)
			if err != nil {
				line, _ := fieldPos(pos)
				return models.Post{}, &ParseError{Line: line, Column: name, Err: fmt.Errorf("invalid datetime %q, want YYYY-MM-DD HH:MM:SS", value)}
			}
			f.Set(reflect.ValueOf(t))
			continue
		}
		f.SetString(value)
	}
	return p, nil
}
