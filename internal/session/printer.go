package session

import (
	"bufio"
	"io"
	"iter"
	"strconv"
)

// DefaultPrecision matches the six decimal places of C's %f.
const DefaultPrecision = 6

// Render writes values one per line in fixed-point notation with the given
// number of decimal places. A negative precision selects DefaultPrecision.
func Render(w io.Writer, values iter.Seq[float64], precision int) error {
	if precision < 0 {
		precision = DefaultPrecision
	}
	bw := bufio.NewWriter(w)
	var buf []byte
	for v := range values {
		buf = strconv.AppendFloat(buf[:0], v, 'f', precision, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
