package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	importserrors "mentorbooking/internal/imports/errors"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/sanitizer"
)

const delimiter = ';'

var expectedHeader = []string{"email", "experience", "name", "skills"}

// RowError reports a line that could not be turned into a mentor.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// ParseMentors reads `email;experience;name;skills` rows after the header.
// Bad rows are returned as RowErrors and do not stop the parse; a missing or
// wrong header, or a failing reader, does.
func ParseMentors(r io.Reader) ([]*model.Mentor, []RowError, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%w: file is empty", importserrors.ErrInvalidHeader)
		}
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !headerMatches(header) {
		return nil, nil, fmt.Errorf("%w: got %q", importserrors.ErrInvalidHeader, strings.Join(header, ";"))
	}

	var (
		mentors []*model.Mentor
		rowErrs []RowError
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, nil, fmt.Errorf("failed to read row: %w", err)
			}
			rowErrs = append(rowErrs, RowError{Line: parseErr.Line, Err: err})
			continue
		}
		line, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		mentor, err := parseRow(record)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		mentors = append(mentors, mentor)
	}

	return mentors, rowErrs, nil
}

func parseRow(record []string) (*model.Mentor, error) {
	if len(record) != len(expectedHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(expectedHeader), len(record))
	}

	experience, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid experience %q", record[1])
	}

	return &model.Mentor{
		Email:      sanitizer.NormalizeEmail(record[0]),
		Experience: experience,
		Name:       sanitizer.NormalizeName(record[2]),
		Skills:     sanitizer.SplitList(record[3], ",", sanitizer.NormalizeSkill),
	}, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(expectedHeader) {
		return false
	}
	for i, col := range header {
		col = strings.TrimPrefix(col, "\ufeff")
		if !strings.EqualFold(strings.TrimSpace(col), expectedHeader[i]) {
			return false
		}
	}
	return true
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
