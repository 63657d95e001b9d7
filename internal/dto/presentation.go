package dto

// PresentationFile is a rendered presentation ready to be downloaded.
type PresentationFile struct {
	FileName   string
	MIMEType   string
	Data       []byte
	SlideCount int
}

// FileDownload is a generic binary attachment, such as a PDF report.
type FileDownload struct {
	FileName string
	MIMEType string
	Data     []byte
}
