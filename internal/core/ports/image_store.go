package ports

// ImageStore persists uploaded cover images and serves them back by URL.
type ImageStore interface {
	// Store validates and writes the upload, returning its public URL.
	Store(upload ImageUpload) (string, error)
	// Delete removes the file behind a previously returned URL. Best effort:
	// a missing file is not an error.
	Delete(url string) error
}
