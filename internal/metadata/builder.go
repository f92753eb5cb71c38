package metadata

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tnega/gosearch/internal/entity"
)

// abstractByteLimit is the provider's hard limit on a custom metadata string
// value: 256 bytes of UTF-8.
const abstractByteLimit = 256

// BuildCustomMetadata turns one metadata record into the ordered custom
// metadata attached to its upload. Absent fields are omitted; the key order
// (year, go_number, department, abstract, date) is fixed.
func BuildCustomMetadata(record entity.MetadataRecord) []entity.CustomMetadata {
	var out []entity.CustomMetadata

	if record.Year != nil {
		year := int64(*record.Year)
		out = append(out, entity.CustomMetadata{Key: "year", NumericValue: &year})
	}

	if record.GONumber != "" {
		out = append(out, entity.CustomMetadata{Key: "go_number", StringValue: record.GONumber})
	}

	if record.Department != "" {
		out = append(out, entity.CustomMetadata{Key: "department", StringValue: record.Department})
	}

	if record.Abstract != "" {
		out = append(out, entity.CustomMetadata{Key: "abstract", StringValue: truncateAbstract(record.Abstract)})
	}

	if record.Date != "" {
		out = append(out, entity.CustomMetadata{Key: "date", StringValue: record.Date})
	}

	return out
}

// truncateAbstract cuts the abstract to the first abstractByteLimit bytes of
// its UTF-8 encoding, drops any partial trailing rune and strips trailing
// whitespace.
func truncateAbstract(abstract string) string {
	b := []byte(abstract)
	if len(b) > abstractByteLimit {
		b = b[:abstractByteLimit]
	}

	for len(b) > 0 {
		r, size := utf8.DecodeLastRune(b)
		if r == utf8.RuneError && size == 1 {
			b = b[:len(b)-1]
			continue
		}
		break
	}

	return strings.TrimRightFunc(string(b), unicode.IsSpace)
}
