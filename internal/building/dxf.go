package building

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/osmg/osmg/internal/geom"
)

// AddGridLinesFromDXF scans a DXF entity stream and adds a gridline for
// every LINE entity found. After an "AcDbLine" marker the coordinate
// values sit at line offsets 2, 4, 6 and 8. Gridlines are tagged with a
// running index.
func (b *Building) AddGridLinesFromDXF(r io.Reader) ([]*GridLine, error) {
	var (
		added          []*GridLine
		xi, yi, xj, yj float64
		i              = 100000
		j              int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ln := strings.TrimSpace(scanner.Text())
		if ln == "AcDbLine" {
			i = 0
		}
		var err error
		switch i {
		case 2:
			xi, err = parseDXFCoord(ln)
		case 4:
			yi, err = parseDXFCoord(ln)
		case 6:
			xj, err = parseDXFCoord(ln)
		case 8:
			if yj, err = parseDXFCoord(ln); err == nil {
				var grd *GridLine
				grd, err = b.AddGridLine(strconv.Itoa(j),
					geom.Vec2{X: xi, Y: yi}, geom.Vec2{X: xj, Y: yj})
				if err == nil {
					added = append(added, grd)
					j++
				}
			}
		}
		if err != nil {
			return nil, err
		}
		i++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dxf: %w", err)
	}
	return added, nil
}

// AddGridLinesFromDXFFile opens a DXF file and imports its lines as
// gridlines.
func (b *Building) AddGridLinesFromDXFFile(path string) ([]*GridLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return b.AddGridLinesFromDXF(f)
}

func parseDXFCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("dxf: invalid coordinate %q", s)
	}
	return v, nil
}
