package report

// SetPDFCompression toggles stream compression of rendered PDFs and returns
// a function restoring the previous setting.
func SetPDFCompression(on bool) (restore func()) {
	prev := pdfCompression
	pdfCompression = on
	return func() { pdfCompression = prev }
}
