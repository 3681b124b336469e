package extractor

import (
	"bytes"
	"encoding/xml"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	ExtPDF  = ".pdf"
	ExtDOCX = ".docx"
	ExtTXT  = ".txt"
)

// Supported reports whether filename carries an extension Extract understands.
func Supported(filename string) bool {
	switch ext(filename) {
	case ExtPDF, ExtDOCX, ExtTXT:
		return true
	default:
		return false
	}
}

// Extract returns the plain text of an uploaded resume. The format is chosen
// from the filename extension only. Unreadable or unsupported input yields
// "" (or the text recovered so far); it never returns an error.
func Extract(filename string, content []byte) string {
	switch ext(filename) {
	case ExtPDF:
		return extractPDF(content)
	case ExtDOCX:
		return extractDOCX(content)
	case ExtTXT:
		return strings.ToValidUTF8(string(content), "�")
	default:
		return ""
	}
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}

func extractPDF(content []byte) (out string) {
	if len(content) == 0 {
		return ""
	}

	pages := make([]string, 0)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Extractor] pdf parser panic, keeping %d pages: %v", len(pages), r)
			out = strings.Join(pages, " ")
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}

	n := r.NumPage()
	for i := 1; i <= n; i++ {
		pages = append(pages, pageText(r.Page(i)))
	}
	return strings.Join(pages, " ")
}

func pageText(p pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if p.V.IsNull() {
		return ""
	}
	t, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return t
}

func extractDOCX(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}
	defer doc.Close()

	return paragraphsText(doc.Editable().GetContent())
}

// paragraphsText walks WordprocessingML and joins the text of each <w:p>
// with a newline. Tabs and explicit breaks inside a run are kept as
// whitespace so neighbouring words do not fuse.
func paragraphsText(documentXML string) string {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		paragraphs []string
		cur        strings.Builder
		inPara     bool
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if inPara {
				paragraphs = append(paragraphs, cur.String())
			}
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inPara {
					paragraphs = append(paragraphs, cur.String())
				}
				inPara = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n")
}
