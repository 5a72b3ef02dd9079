package export

import "os"

// LoadLogo reads the letterhead image. Any failure yields nil so documents
// render without a logo.
func LoadLogo(path string) []byte {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}
