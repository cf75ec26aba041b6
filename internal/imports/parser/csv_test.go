package parser

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	importserrors "mentorbooking/internal/imports/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMentors(t *testing.T) {
	input := strings.Join([]string{
		"email;experience;name;skills",
		"Ada@Example.com;7;Ada   Lovelace;AWS, nodejs ,aws",
		"grace@example.com;four;Grace Hopper;reactjs",
		"",
		"linus@example.com;3;Linus",
		"ken@example.com;12;Ken Thompson;",
	}, "\n")

	mentors, rowErrs, err := ParseMentors(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, mentors, 2)
	assert.Equal(t, "ada@example.com", mentors[0].Email)
	assert.Equal(t, 7, mentors[0].Experience)
	assert.Equal(t, "Ada Lovelace", mentors[0].Name)
	assert.Equal(t, []string{"aws", "nodejs"}, mentors[0].Skills)

	assert.Equal(t, "ken@example.com", mentors[1].Email)
	assert.Empty(t, mentors[1].Skills)

	require.Len(t, rowErrs, 2)
	assert.Equal(t, 3, rowErrs[0].Line)
	assert.Contains(t, rowErrs[0].Error(), "invalid experience")
	assert.Equal(t, 5, rowErrs[1].Line)
}

func TestParseMentors_Header(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "wrong order", input: "name;email;experience;skills\n"},
		{name: "comma separated", input: "email,experience,name,skills\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseMentors(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, importserrors.ErrInvalidHeader))
		})
	}
}

func TestParseMentors_HeaderWithByteOrderMark(t *testing.T) {
	mentors, rowErrs, err := ParseMentors(strings.NewReader("\ufeffEmail;Experience;Name;Skills\nx@y.io;1;X;aws\n"))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Len(t, mentors, 1)
}

func TestParseMentors_ReaderFailureStopsParse(t *testing.T) {
	readErr := errors.New("connection reset")
	r := io.MultiReader(
		strings.NewReader("email;experience;name;skills\nada@example.com;7;Ada;aws\n"),
		iotest.ErrReader(readErr),
	)

	done := make(chan error, 1)
	go func() {
		_, _, err := ParseMentors(r)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, readErr)
	case <-time.After(2 * time.Second):
		t.Fatal("ParseMentors kept reading from a failing reader")
	}
}
