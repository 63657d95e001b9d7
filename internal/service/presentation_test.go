package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"slidequiz/internal/domain"
	"slidequiz/internal/extractor"
	"slidequiz/internal/render/pptx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func slideParts(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var slides []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f.Name)
		}
	}
	return slides
}

func newPresentationService(requester domain.ContentRequester, ext domain.TextExtractor) PresentationService {
	if ext == nil {
		ext = extractor.NewExtractor(zap.NewNop())
	}
	return NewPresentationService(ext, requester, pptx.NewRenderer(), zap.NewNop())
}

func TestPresentationService_TwoSlides(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestSlides", mock.Anything, domain.SlideRequest{Text: "The sky is blue. Water is wet.", SlideCount: 2}).
		Return(`{"slides":[
			{"title":"The Sky","content":["The sky is blue"]},
			{"title":"Water","content":["Water is wet"]}
		]}`, nil).Once()

	svc := newPresentationService(requester, nil)
	var progress []float64
	file, err := svc.Generate(context.Background(),
		domain.Document{Name: "facts.txt", Data: []byte("The sky is blue. Water is wet.")},
		nil, 2, func(p float64) { progress = append(progress, p) })
	require.NoError(t, err)

	assert.Equal(t, "generated_presentation.pptx", file.FileName)
	assert.Equal(t, pptx.MIMEType, file.MIMEType)
	assert.Equal(t, 2, file.SlideCount)
	assert.Len(t, slideParts(t, file.Data), 2)
	assert.Equal(t, []float64{1.0}, progress)
	requester.AssertExpectations(t)
}

func TestPresentationService_CountMismatch(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestSlides", mock.Anything, mock.Anything).
		Return(`{"slides":[{"title":"a","content":[]},{"title":"b","content":[]},{"title":"c","content":[]}]}`, nil)

	svc := newPresentationService(requester, nil)
	file, err := svc.Generate(context.Background(), domain.Document{Name: "notes.md", Data: []byte("# Notes")}, nil, 5, nil)

	assert.Nil(t, file)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeCardinalityMismatch))
	assert.Contains(t, err.Error(), "Requested 5 slides but got 3")
}

func TestPresentationService_UnsupportedFormat(t *testing.T) {
	ext := new(MockTextExtractor)
	requester := new(MockContentRequester)

	svc := newPresentationService(requester, ext)
	_, err := svc.Generate(context.Background(), domain.Document{Name: "lecture.docx", Data: []byte("PK")}, nil, 3, nil)

	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeUnsupportedFormat))
	ext.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
	requester.AssertNotCalled(t, "RequestSlides", mock.Anything, mock.Anything)
}

func TestPresentationService_EmptyExtraction(t *testing.T) {
	requester := new(MockContentRequester)
	svc := newPresentationService(requester, nil)

	_, err := svc.Generate(context.Background(), domain.Document{Name: "blank.txt", Data: []byte("   \n")}, nil, 3, nil)

	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeExtractionEmpty))
	requester.AssertNotCalled(t, "RequestSlides", mock.Anything, mock.Anything)
}

func TestPresentationService_SlideCountOutOfRange(t *testing.T) {
	svc := newPresentationService(new(MockContentRequester), nil)

	for _, n := range []int{0, 21} {
		_, err := svc.Generate(context.Background(), domain.Document{Name: "a.txt", Data: []byte("a")}, nil, n, nil)
		assert.True(t, domain.HasCode(err, domain.CodeInvalidInput), "slide count %d", n)
	}
}

func TestPresentationService_ModelFailure(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestSlides", mock.Anything, mock.Anything).
		Return(nil, domain.NewLLMServiceError(errors.New("connection refused")))

	svc := newPresentationService(requester, nil)
	_, err := svc.Generate(context.Background(), domain.Document{Name: "a.txt", Data: []byte("a")}, nil, 1, nil)

	assert.True(t, domain.HasCode(err, domain.CodeLLMServiceError))
}

func TestPresentationService_SanitizesAndUsesTemplate(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestSlides", mock.Anything, mock.Anything).
		Return(`{"slides":[{"title":"• Light Reactions","content":["- Capture light"]}]}`, nil)

	var tmpl bytes.Buffer
	zw := zip.NewWriter(&tmpl)
	w, err := zw.Create("ppt/slides/slide1.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:bg><p:bgPr><a:solidFill><a:srgbClr val="000000"/></a:solidFill></p:bgPr></p:bg></p:cSld></p:sld>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	svc := newPresentationService(requester, nil)
	file, err := svc.Generate(context.Background(), domain.Document{Name: "bio.txt", Data: []byte("Photosynthesis")}, tmpl.Bytes(), 1, nil)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)
	parts := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		require.NoError(t, err)
		rc.Close()
		parts[f.Name] = b.String()
	}

	assert.Contains(t, parts["ppt/slides/slide1.xml"], "<a:t>Light Reactions</a:t>")
	assert.Contains(t, parts["ppt/slides/slide1.xml"], "<a:t>Capture light</a:t>")
	assert.Contains(t, parts["ppt/slides/slide1.xml"], `val="FFFFFF"`)
	assert.Contains(t, parts["ppt/slideMasters/slideMaster1.xml"], `<a:srgbClr val="000000"/>`)
}
