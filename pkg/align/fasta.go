package align

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/seqviz/seqviz/pkg/errors"
)

// ReadFASTA parses FASTA records from r. Record identifiers are the first
// whitespace-delimited token after '>'; sequence lines are concatenated
// with surrounding whitespace stripped.
func ReadFASTA(r io.Reader) ([]Entry, error) {
	var entries []Entry
	var id string
	var seq strings.Builder

	flush := func() {
		if id != "" {
			entries = append(entries, Entry{ID: id, Seq: seq.String()})
		}
		seq.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "FASTA header with no identifier")
			}
			id = fields[0]
			continue
		}
		if id == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sequence data before first FASTA header")
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read FASTA")
	}
	flush()

	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no FASTA records found")
	}
	return entries, nil
}

// LoadFASTA reads an aligned FASTA file into an Alignment.
func LoadFASTA(path string) (*Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	entries, err := ReadFASTA(f)
	if err != nil {
		return nil, err
	}
	return New(entries)
}
