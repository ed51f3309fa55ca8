// Package seqio reads FASTA and FASTQ sequence input, transparently
// decompressing gzip, and supports both loading every sequence into
// memory and re-opening the input per motif for a low-memory streaming
// scan.
package seqio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Sequence is one named sequence loaded from FASTA or FASTQ input.
type Sequence struct {
	Name string
	Data []byte
}

// Opener returns a fresh reader over the underlying input each time it
// is called, so a streaming driver can re-scan from the top for every
// motif without holding the whole input in memory. Close must be called
// on the returned ReadCloser once exhausted.
type Opener func() (io.ReadCloser, error)

// Open returns an Opener for path, which may be "-" to mean stdin.
// Stdin cannot be re-opened; callers that need a streaming, re-openable
// source of stdin must first buffer it themselves.
func Open(path string) Opener {
	if path == "-" {
		var used bool
		return func() (io.ReadCloser, error) {
			if used {
				return nil, errors.New("stdin input cannot be re-read for streaming mode")
			}
			used = true
			return io.NopCloser(os.Stdin), nil
		}
	}
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		return f, nil
	}
}

// decompress wraps r with transparent gzip decompression when the input
// carries a gzip magic header; otherwise it returns r unchanged.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF {
			return br, nil
		}
		return nil, errors.Wrap(err, "peeking input header")
	}
	if magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip stream")
		}
		return gz, nil
	}
	return br, nil
}

// ReadAll loads every sequence from opener into memory, in file order.
// It auto-detects FASTA vs. FASTQ from the input's first byte.
func ReadAll(opener Opener) ([]Sequence, error) {
	rc, err := opener()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	r, err := decompress(rc)
	if err != nil {
		return nil, err
	}
	return parseAll(r)
}

func parseAll(r io.Reader) ([]Sequence, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	first, err := br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading sequence input")
	}
	switch first[0] {
	case '>':
		return parseFASTA(br)
	case '@':
		return parseFASTQ(br)
	default:
		return nil, errors.Errorf("unrecognized sequence input: expected '>' (FASTA) or '@' (FASTQ), got %q", first[0])
	}
}

func parseFASTA(r io.Reader) ([]Sequence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)
	var seqs []Sequence
	var name string
	var buf strings.Builder
	flush := func() {
		if name != "" || buf.Len() != 0 {
			seqs = append(seqs, Sequence{Name: name, Data: []byte(buf.String())})
		}
		buf.Reset()
	}
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			flush()
			name = strings.SplitN(line[1:], " ", 2)[0]
			continue
		}
		buf.WriteString(strings.TrimRight(line, "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading FASTA data")
	}
	flush()
	if len(seqs) == 0 {
		return nil, errors.New("no sequences found in FASTA input")
	}
	return seqs, nil
}

// parseFASTQ down-converts FASTQ reads to Sequences, discarding quality
// strings: the scanner treats its input purely as nucleotide data.
func parseFASTQ(r io.Reader) ([]Sequence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<30)
	var seqs []Sequence
	for {
		if !scanner.Scan() {
			break
		}
		idLine := scanner.Text()
		if idLine == "" {
			continue
		}
		if idLine[0] != '@' {
			return nil, errors.Errorf("malformed FASTQ record: expected '@' id line, got %q", idLine)
		}
		if !scanner.Scan() {
			return nil, errors.New("truncated FASTQ record: missing sequence line")
		}
		seq := scanner.Text()
		if !scanner.Scan() {
			return nil, errors.New("truncated FASTQ record: missing '+' separator line")
		}
		if !scanner.Scan() {
			return nil, errors.New("truncated FASTQ record: missing quality line")
		}
		name := strings.SplitN(idLine[1:], " ", 2)[0]
		seqs = append(seqs, Sequence{Name: name, Data: []byte(seq)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading FASTQ data")
	}
	if len(seqs) == 0 {
		return nil, errors.New("no reads found in FASTQ input")
	}
	return seqs, nil
}

// Names returns every sequence's name, in file order.
func Names(seqs []Sequence) []string {
	names := make([]string, len(seqs))
	for i, s := range seqs {
		names[i] = s.Name
	}
	return names
}

// WriteFASTA writes name/data as a FASTA record wrapped to width columns
// per line.
func WriteFASTA(w io.Writer, name string, data []byte, width int) error {
	if _, err := io.WriteString(w, ">"+name+"\n"); err != nil {
		return err
	}
	for i := 0; i < len(data); i += width {
		end := i + width
		if end > len(data) {
			end = len(data)
		}
		if _, err := w.Write(data[i:end]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
