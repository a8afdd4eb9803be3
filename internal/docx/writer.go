// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
)

const (
	nsWordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsRelDoc           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsRelationships + `">
<Relationship Id="rId1" Type="` + nsRelDoc + `/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="` + nsRelationships + `">
<Relationship Id="rId1" Type="` + nsRelDoc + `/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + nsWordprocessingML + `">
<w:docDefaults><w:rPrDefault><w:rPr><w:sz w:val="24"/><w:szCs w:val="24"/></w:rPr></w:rPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
</w:styles>`

// Document is the content written into word/document.xml.
type Document struct {
	Title string
	Pages []Page
}

// Write serializes doc as a WordprocessingML package to w.
func Write(w io.Writer, doc Document) error {
	body, err := documentXML(doc.Pages)
	if err != nil {
		return fmt.Errorf("rendering word/document.xml: %w", err)
	}
	core, err := coreXML(doc.Title, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("rendering docProps/core.xml: %w", err)
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", body},
		{"docProps/core.xml", core},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := io.WriteString(f, p.body); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// documentXML renders one paragraph per line with a page break between pages.
func documentXML(pages []Page) (string, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="` + nsWordprocessingML + `"><w:body>`)
	for i, page := range pages {
		if i > 0 {
			b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		}
		for _, line := range page.Lines {
			if err := writeParagraph(&b, line); err != nil {
				return "", err
			}
		}
	}
	b.WriteString(`<w:sectPr/></w:body></w:document>`)
	return b.String(), nil
}

func writeParagraph(b *strings.Builder, text string) error {
	rtl := isRTL(text)
	b.WriteString("<w:p>")
	if rtl {
		b.WriteString(`<w:pPr><w:bidi/><w:jc w:val="right"/></w:pPr>`)
	}
	b.WriteString("<w:r>")
	if rtl {
		b.WriteString("<w:rPr><w:rtl/></w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	if err := xml.EscapeText(b, []byte(text)); err != nil {
		return err
	}
	b.WriteString("</w:t></w:r></w:p>")
	return nil
}

func coreXML(title string, created time.Time) (string, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString(`<dc:title>`)
	if err := xml.EscapeText(&b, []byte(title)); err != nil {
		return "", err
	}
	b.WriteString(`</dc:title>`)
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + created.Format(time.RFC3339) + `</dcterms:created>`)
	b.WriteString(`</cp:coreProperties>`)
	return b.String(), nil
}

// isRTL reports whether the first strongly directional rune of s belongs to
// a right-to-left script.
func isRTL(s string) bool {
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Arabic, unicode.Hebrew, unicode.Syriac, unicode.Thaana, unicode.Nko):
			return true
		case unicode.IsLetter(r):
			return false
		}
	}
	return false
}
