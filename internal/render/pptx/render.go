// Package pptx writes PowerPoint presentations from slide records.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"slidequiz/internal/domain"
)

const (
	MIMEType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	FileName = "generated_presentation.pptx"

	emuPerInch  = 914400
	slideWidth  = 10 * emuPerInch
	slideHeight = 6858000

	// font sizes in hundredths of a point
	titleSize = 3200
	bodySize  = 2000

	firstSlideID  = 256
	firstSlideRel = 6
)

var templates = template.Must(template.New("pptx").Funcs(template.FuncMap{"esc": escapeXML}).Parse(""))

func init() {
	for name, text := range map[string]string{
		"content_types":     contentTypesTmpl,
		"core":              coreTmpl,
		"app":               appTmpl,
		"presentation":      presentationTmpl,
		"presentation_rels": presentationRelsTmpl,
		"master":            masterTmpl,
		"slide":             slideTmpl,
	} {
		template.Must(templates.New(name).Parse(text))
	}
}

func escapeXML(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

type paragraph struct {
	Text  string
	Size  int
	Color string
}

type textBox struct {
	X, Y, CX, CY int
	Paragraphs   []paragraph
}

type slideView struct {
	Number int
	ID     int
	RelID  string
	Title  textBox
	Body   textBox
}

type packageView struct {
	Title      string
	Created    string
	Width      int
	Height     int
	TitleSize  int
	BodySize   int
	Background *RGB
	Slides     []slideView
}

func inches(n float64) int {
	return int(math.Round(n * emuPerInch))
}

// Renderer writes PPTX packages.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render returns a complete PPTX with one slide per record. When bg is set
// the master background is filled with it; text color follows TextColor.
func (r *Renderer) Render(slides []domain.SlideRecord, bg *RGB) ([]byte, error) {
	data, err := r.render(slides, bg)
	if err != nil {
		return nil, domain.NewRenderFailureError(err)
	}
	return data, nil
}

func (r *Renderer) render(slides []domain.SlideRecord, bg *RGB) ([]byte, error) {
	color := TextColor(bg).Hex()

	view := packageView{
		Title:      "Generated Presentation",
		Created:    r.now().UTC().Format(time.RFC3339),
		Width:      slideWidth,
		Height:     slideHeight,
		TitleSize:  titleSize,
		BodySize:   bodySize,
		Background: bg,
		Slides:     make([]slideView, 0, len(slides)),
	}
	for i, s := range slides {
		if i == 0 && s.Title != "" {
			view.Title = s.Title
		}
		body := textBox{X: inches(1), Y: inches(1.5), CX: inches(8), CY: inches(5)}
		for _, point := range s.Content {
			body.Paragraphs = append(body.Paragraphs, paragraph{Text: point, Size: bodySize, Color: color})
		}
		view.Slides = append(view.Slides, slideView{
			Number: i + 1,
			ID:     firstSlideID + i,
			RelID:  fmt.Sprintf("rId%d", firstSlideRel+i),
			Title: textBox{
				X: inches(0.5), Y: inches(0.3), CX: inches(9), CY: inches(1),
				Paragraphs: []paragraph{{Text: s.Title, Size: titleSize, Color: color}},
			},
			Body: body,
		})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w := &partWriter{zw: zw}
	w.execute("[Content_Types].xml", "content_types", view)
	w.write("_rels/.rels", rootRels)
	w.execute("docProps/core.xml", "core", view)
	w.execute("docProps/app.xml", "app", view)
	w.execute("ppt/presentation.xml", "presentation", view)
	w.execute("ppt/_rels/presentation.xml.rels", "presentation_rels", view)
	w.write("ppt/presProps.xml", presProps)
	w.write("ppt/viewProps.xml", viewProps)
	w.write("ppt/tableStyles.xml", tableStyles)
	w.write("ppt/theme/theme1.xml", theme)
	w.execute("ppt/slideMasters/slideMaster1.xml", "master", view)
	w.write("ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels)
	w.write("ppt/slideLayouts/slideLayout1.xml", layout)
	w.write("ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRels)
	for _, s := range view.Slides {
		w.execute(fmt.Sprintf("ppt/slides/slide%d.xml", s.Number), "slide", s)
		w.write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", s.Number), slideRels)
	}
	if w.err != nil {
		return nil, w.err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish pptx archive: %w", err)
	}
	return buf.Bytes(), nil
}

// partWriter adds parts to the archive and keeps the first error.
type partWriter struct {
	zw  *zip.Writer
	err error
}

func (w *partWriter) write(name, content string) {
	if w.err != nil {
		return
	}
	f, err := w.zw.Create(name)
	if err != nil {
		w.err = fmt.Errorf("failed to create part %s: %w", name, err)
		return
	}
	if _, err := f.Write([]byte(content)); err != nil {
		w.err = fmt.Errorf("failed to write part %s: %w", name, err)
	}
}

func (w *partWriter) execute(name, tmpl string, data interface{}) {
	if w.err != nil {
		return
	}
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, tmpl, data); err != nil {
		w.err = fmt.Errorf("failed to render part %s: %w", name, err)
		return
	}
	w.write(name, b.String())
}
