package exiftool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatExifDateTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain timestamp", "2024:01:15 14:30:45", "2024-01-15_14-30-45"},
		{"positive timezone stripped", "2024:01:15 14:30:45+08:00", "2024-01-15_14-30-45"},
		{"subsecond colon converted", "2024:01:15 14:30:45", "2024-01-15_14-30-45"},
		{"already dashed date survives", "2024:12:31 23:59:59", "2024-12-31_23-59-59"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, formatExifDateTime(tc.input))
		})
	}
}

func TestParseDateReply(t *testing.T) {
	t.Parallel()

	t.Run("priority order", func(t *testing.T) {
		t.Parallel()
		reply := `[
			{"SourceFile": "/p/a.jpg", "DateTimeOriginal": "2024:01:15 14:30:45", "CreateDate": "2020:01:01 00:00:00"},
			{"SourceFile": "/p/b.jpg", "CreateDate": "2024:02:20 09:15:00", "ModifyDate": "2025:01:01 00:00:00"},
			{"SourceFile": "/p/c.jpg", "ModifyDate": "2024:03:25 18:45:30"}
		]`
		got := parseDateReply(reply)
		assert.Equal(t, map[string]string{
			"/p/a.jpg": "2024-01-15_14-30-45",
			"/p/b.jpg": "2024-02-20_09-15-00",
			"/p/c.jpg": "2024-03-25_18-45-30",
		}, got)
	})

	t.Run("summary line before json is skipped", func(t *testing.T) {
		t.Parallel()
		reply := "    1 image files read\n" +
			`[{"SourceFile": "/p/a.jpg", "DateTimeOriginal": "2024:01:15 14:30:45"}]`
		got := parseDateReply(reply)
		assert.Equal(t, "2024-01-15_14-30-45", got["/p/a.jpg"])
	})

	t.Run("zero date omitted", func(t *testing.T) {
		t.Parallel()
		reply := `[{"SourceFile": "/p/a.jpg", "DateTimeOriginal": "0000:00:00 00:00:00"}]`
		assert.Empty(t, parseDateReply(reply))
	})

	t.Run("file without dates omitted", func(t *testing.T) {
		t.Parallel()
		reply := `[{"SourceFile": "/p/a.jpg"}]`
		assert.Empty(t, parseDateReply(reply))
	})

	t.Run("garbage reply yields empty map", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, parseDateReply("not json at all"))
		assert.Empty(t, parseDateReply(""))
	})
}

func TestTagArgs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"-DateTimeOriginal", "-CreateDate", "-ModifyDate"}, tagArgs())
}
