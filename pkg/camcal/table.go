package camcal

import(
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abworrall/jpg2raw/pkg/emath"
)

// All the calibration files are whitespace separated text, one row of
// floats per line. Most of them have a single header line.

// readLines returns every line in the file, blank ones included, so
// that line numbers match the file.
func readLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &CalibrationLoadError{File: filename, Line: -1, Err: err}
	}
	defer f.Close()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &CalibrationLoadError{File: filename, Line: len(lines), Err: err}
	}

	// Ignore any blank lines on the end
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return lines, nil
}

func parseVec3(line string) (emath.Vec3, error) {
	v := emath.Vec3{}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return v, fmt.Errorf("want 3 values, found %d in %q", len(fields), line)
	}
	for i:=0; i<3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v, fmt.Errorf("value %d: %v", i, err)
		}
		v[i] = f
	}
	return v, nil
}

// readTable loads a file with a header line followed by rows of three
// floats. If wantRows > 0, the file must have exactly that many rows.
func readTable(filename string, wantRows int) ([]emath.Vec3, error) {
	lines, err := readLines(filename)
	if err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, loadErr(filename, -1, "no data rows")
	}

	data := lines[1:] // skip the header
	if wantRows > 0 && len(data) != wantRows {
		return nil, loadErr(filename, -1, "have %d data rows, want %d", len(data), wantRows)
	}

	rows := make([]emath.Vec3, len(data))
	for i, line := range data {
		v, err := parseVec3(line)
		if err != nil {
			return nil, &CalibrationLoadError{File: filename, Line: i+1, Err: err}
		}
		rows[i] = v
	}

	return rows, nil
}

// readMat3 parses three consecutive lines, starting at `first`, as the rows of a matrix
func readMat3(filename string, lines []string, first int) (emath.Mat3, error) {
	m := emath.Mat3{}
	if first+3 > len(lines) {
		return m, loadErr(filename, -1, "need a matrix at lines %d-%d, file has %d lines", first, first+2, len(lines))
	}
	for j:=0; j<3; j++ {
		v, err := parseVec3(lines[first+j])
		if err != nil {
			return m, &CalibrationLoadError{File: filename, Line: first+j, Err: err}
		}
		m[3*j+0], m[3*j+1], m[3*j+2] = v[0], v[1], v[2]
	}
	return m, nil
}
