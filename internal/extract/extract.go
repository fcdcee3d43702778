package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	pdf "github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for file extensions that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

const docxDocument = "word/document.xml"

// File reads the resume at path and returns its plain text.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	return Bytes(filepath.Base(path), data)
}

// Bytes extracts plain text from data, choosing the decoder by the extension
// of name. Without an extension the format is detected from the content, so
// PDF and DOCX documents piped on stdin are read too.
func Bytes(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = detect(data)
	}

	switch ext {
	case ".txt", ".text", ".md", ".markdown":
		return plainText(data)
	case ".pdf":
		return pdfText(data)
	case ".docx":
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q (supported: txt, md, pdf, docx)", ErrUnsupportedFormat, ext)
	}
}

// detect maps sniffed content to an extension. Any zip archive is read as
// DOCX; everything else that is not a PDF is tried as text.
func detect(data []byte) string {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		switch {
		case mt.Is("application/pdf"):
			return ".pdf"
		case mt.Is("application/zip"):
			return ".docx"
		}
	}
	return ".txt"
}

func plainText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", errors.New("text file is not valid UTF-8")
	}
	return string(data), nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != docxDocument {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", docxDocument, err)
		}
		defer rc.Close()

		return documentText(rc)
	}

	return "", fmt.Errorf("docx has no %s", docxDocument)
}

// documentText collects w:t runs, ending a line at every paragraph.
func documentText(r io.Reader) (string, error) {
	var (
		builder strings.Builder
		inText  bool
	)

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", docxDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				builder.WriteByte('\t')
			case "br":
				builder.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return strings.TrimSpace(builder.String()), nil
}
