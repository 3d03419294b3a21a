package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joseph-ayodele/mpstats/internal/common"
)

type stubRunner struct {
	stdout, stderr []byte
	err            error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "crlf and tabs", in: "X-Maximum:\t\t1.5\r\nY-Maximum:  2\r\n", want: "X-Maximum: 1.5\nY-Maximum: 2"},
		{name: "blank lines collapsed", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "digits untouched", in: "MP-01 value 05", want: "MP-01 value 05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPdftotextExtract(t *testing.T) {
	r := &stubRunner{stdout: []byte("Page one\fX-Maximum: 3.2 mm\f")}
	e := NewPdftotext("pdftotext-bin", time.Second, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), "/reports/MP-001.pdf")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if r.gotName != "pdftotext-bin" {
		t.Errorf("ran %q, want pdftotext-bin", r.gotName)
	}
	if got := r.gotArgs[len(r.gotArgs)-2]; got != "/reports/MP-001.pdf" {
		t.Errorf("path arg = %q", got)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
	if !strings.Contains(res.Text, "X-Maximum: 3.2 mm") {
		t.Errorf("Text = %q", res.Text)
	}
	if res.Method != "pdftotext" {
		t.Errorf("Method = %q", res.Method)
	}
}

func TestPdftotextExtractFailure(t *testing.T) {
	r := &stubRunner{stderr: []byte("Syntax Error: Couldn't find trailer dictionary\n"), err: errors.New("exit status 1")}
	e := NewPdftotext("", 0, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), "broken.pdf")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "trailer") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if r.gotName != "pdftotext" {
		t.Errorf("default binary = %q", r.gotName)
	}
}

func TestPDFTextRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MP-bad.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewPDFText(nil).Extract(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for garbage input")
	}

	_, err = NewPDFText(nil).Extract(context.Background(), filepath.Join(dir, "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPDFTextHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPDFText(nil).Extract(ctx, "MP-001.pdf"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTabulaMissingFile(t *testing.T) {
	_, err := NewTabula(nil).Extract(context.Background(), filepath.Join(t.TempDir(), "MP-none.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// buildPDF writes a PDF with one Helvetica text line per page and a valid
// xref table.
func buildPDF(t *testing.T, lines ...string) string {
	t.Helper()
	var objs []string
	kids := make([]string, len(lines))
	for i := range lines {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(lines)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, line := range lines {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", line)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	path := filepath.Join(t.TempDir(), "MP-001.pdf")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTabulaCountsPages(t *testing.T) {
	path := buildPDF(t, "Report page one", "X-Maximum: 1.5")

	res, err := NewTabula(nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
	if res.Method != "tabula" {
		t.Errorf("Method = %q", res.Method)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{backend: "", want: "*extract.PDFText"},
		{backend: common.BackendPDF, want: "*extract.PDFText"},
		{backend: common.BackendTabula, want: "*extract.Tabula"},
		{backend: common.BackendPdftotext, want: "*extract.Pdftotext"},
		{backend: "ocr", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			got, err := New(common.TextConfig{Backend: tt.backend}, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, common.ErrInvalidInput) {
					t.Errorf("error %v should wrap ErrInvalidInput", err)
				}
				return
			}
			if typeName(got) != tt.want {
				t.Errorf("New() = %s, want %s", typeName(got), tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *PDFText:
		return "*extract.PDFText"
	case *Tabula:
		return "*extract.Tabula"
	case *Pdftotext:
		return "*extract.Pdftotext"
	default:
		return "unknown"
	}
}
