package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
)

// CSV writes records as CSV with a header row, using each field's csv tag.
// String lists are joined with "; ".
func CSV[R any](w io.Writer, records []R) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	enc.Register(func(list []string) ([]byte, error) {
		return []byte(strings.Join(list, "; ")), nil
	})

	var zero R
	if err := enc.EncodeHeader(zero); err != nil {
		return fmt.Errorf("failed to encode CSV header: %w", err)
	}
	enc.AutoHeader = false
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
