package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"resume-evaluator/internal/domain/matching"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body +
			`</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// buildPDF writes a minimal PDF with one page per entry of pages, each page
// showing its text in a single BT/ET block with a WinAnsi Helvetica font.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	fontID := 3 + 2*len(pages)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"",
	}
	kids := ""
	for i, text := range pages {
		pageID := 3 + 2*i
		contentID := pageID + 1
		kids += fmt.Sprintf("%d 0 R ", pageID)

		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, contentID),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pages))
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtract_PDFPagesJoinedInOrder(t *testing.T) {
	content := buildPDF(t, "Python", "SQL")

	for _, name := range []string{"cv.pdf", "cv.PDF"} {
		got := Extract(name, content)
		// Each text object starts on a new line; pages are joined by a space.
		if got != "\nPython \nSQL" {
			t.Fatalf("%s: unexpected text %q", name, got)
		}
	}
}

func TestExtract_PDFFeedsMatcher(t *testing.T) {
	text := Extract("resume.PDF", buildPDF(t, "Senior Python developer", "Reporting in SQL"))

	res := matching.Evaluate(text, []string{"python", "sql"})
	if !reflect.DeepEqual(res.Matched, []string{"python", "sql"}) || len(res.Missing) != 0 {
		t.Fatalf("unexpected result %+v from %q", res, text)
	}
	if res.Percent != 100 {
		t.Fatalf("expected 100, got %v", res.Percent)
	}
}

func TestExtract_TXT(t *testing.T) {
	got := Extract("resume.TXT", []byte("Python SQL"))
	if got != "Python SQL" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtract_TXTInvalidUTF8(t *testing.T) {
	got := Extract("cv.txt", []byte{'g', 'o', 0xff, 's', 'q', 'l'})
	if got != "go�sql" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"skills.csv", "resume", "resume.doc", "photo.png"} {
		if got := Extract(name, []byte("python,sql")); got != "" {
			t.Fatalf("%s: expected empty string, got %q", name, got)
		}
	}
}

func TestExtract_DOCXParagraphs(t *testing.T) {
	body := `<w:p><w:r><w:t>Senior Engineer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Go, </w:t></w:r><w:r><w:t>PostgreSQL</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Docker</w:t><w:tab/><w:t>Redis</w:t></w:r></w:p>`

	got := Extract("Resume.DOCX", buildDocx(t, body))
	want := "Senior Engineer\nGo, PostgreSQL\n\nDocker\tRedis"
	if got != want {
		t.Fatalf("unexpected text:\n got %q\nwant %q", got, want)
	}
}

func TestExtract_MalformedDocumentsDegrade(t *testing.T) {
	junk := []byte("this is not a zip or a pdf")
	for _, name := range []string{"cv.docx", "cv.pdf"} {
		if got := Extract(name, junk); got != "" {
			t.Fatalf("%s: expected empty string, got %q", name, got)
		}
		if got := Extract(name, nil); got != "" {
			t.Fatalf("%s: expected empty string for empty input, got %q", name, got)
		}
	}
}

func TestExtract_TruncatedPDF(t *testing.T) {
	content := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	if got := Extract("cv.pdf", content); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestSupported(t *testing.T) {
	cases := map[string]bool{
		"a.pdf":  true,
		"A.PDF":  true,
		"b.docx": true,
		"c.txt":  true,
		"d.csv":  false,
		"e":      false,
	}
	for name, want := range cases {
		if got := Supported(name); got != want {
			t.Fatalf("Supported(%q) = %v, want %v", name, got, want)
		}
	}
}
