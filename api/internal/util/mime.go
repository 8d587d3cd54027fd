package util

// SniffMime detects the MIME type of an uploaded file by magic bytes. Gemini
// rejects application/octet-stream, so unknown inputs fall back to image/jpeg.
func SniffMime(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	if len(b) >= 4 && b[0] == 'G' && b[1] == 'I' && b[2] == 'F' && b[3] == '8' {
		return "image/gif"
	}
	if len(b) >= 4 && b[0] == 'R' && b[1] == 'I' && b[2] == 'F' && b[3] == 'F' {
		return "image/webp"
	}
	if len(b) >= 5 && b[0] == '%' && b[1] == 'P' && b[2] == 'D' && b[3] == 'F' && b[4] == '-' {
		return "application/pdf"
	}
	return "image/jpeg"
}

// PickMime prefers an explicit MIME hint over byte sniffing.
func PickMime(hint string, data []byte) string {
	if hint != "" {
		return hint
	}
	return SniffMime(data)
}
