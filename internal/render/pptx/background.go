package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

const relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// RGB is a solid color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as six upper-case hex digits, as PresentationML
// writes it.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses six hex digits such as "1F3864".
func ParseHex(s string) (RGB, bool) {
	if len(s) != 6 {
		return RGB{}, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, true
}

// TextColor picks white text on dark backgrounds and black otherwise.
func TextColor(bg *RGB) RGB {
	if bg != nil && int(bg.R)+int(bg.G)+int(bg.B) < 382 {
		return RGB{R: 255, G: 255, B: 255}
	}
	return RGB{}
}

type presentationPart struct {
	SlideIDs []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsPart struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type slidePart struct {
	Background struct {
		Color struct {
			Val string `xml:"val,attr"`
		} `xml:"bgPr>solidFill>srgbClr"`
	} `xml:"cSld>bg"`
}

// BackgroundColor reads the solid background color of the first slide of a
// PPTX template. It reports false when the template is unreadable or the
// slide has no solid RGB background.
func BackgroundColor(template []byte) (*RGB, bool) {
	if len(template) == 0 {
		return nil, false
	}
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, false
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	data, err := readZipFile(files, firstSlidePath(files))
	if err != nil {
		return nil, false
	}
	var slide slidePart
	if err := xml.Unmarshal(data, &slide); err != nil {
		return nil, false
	}
	color, ok := ParseHex(slide.Background.Color.Val)
	if !ok {
		return nil, false
	}
	return &color, true
}

// firstSlidePath follows the presentation's slide list to the part of its
// first slide.
func firstSlidePath(files map[string]*zip.File) string {
	const fallback = "ppt/slides/slide1.xml"

	data, err := readZipFile(files, "ppt/presentation.xml")
	if err != nil {
		return fallback
	}
	var pres presentationPart
	if err := xml.Unmarshal(data, &pres); err != nil || len(pres.SlideIDs) == 0 {
		return fallback
	}

	data, err = readZipFile(files, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return fallback
	}
	var rels relationshipsPart
	if err := xml.Unmarshal(data, &rels); err != nil {
		return fallback
	}
	for _, rel := range rels.Relationships {
		if rel.ID != pres.SlideIDs[0].RID {
			continue
		}
		if strings.HasPrefix(rel.Target, "/") {
			return strings.TrimPrefix(rel.Target, "/")
		}
		return path.Join("ppt", rel.Target)
	}
	return fallback
}

func readZipFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
