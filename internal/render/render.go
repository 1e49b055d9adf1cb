// Package render builds the gallery page and the single-image fragment
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/UnendingLoop/ImageGallery/internal/model"
)

// Placeholder is shown in the gallery while no image has been uploaded.
const Placeholder = "No images uploaded yet."

//go:embed templates/gallery.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/gallery.html"))

type imageView struct {
	Route string
	Name  string
	Width int
}

type pageView struct {
	Field       string
	UploadRoute string
	Placeholder string
	Images      []imageView
}

// Page renders the full document for a snapshot of generated names, in the given order.
func Page(images []string) ([]byte, error) {
	view := pageView{
		Field:       model.FormField,
		UploadRoute: model.UploadRoute,
		Placeholder: Placeholder,
		Images:      make([]imageView, 0, len(images)),
	}
	for _, name := range images {
		view.Images = append(view.Images, newImageView(name))
	}

	return execute("gallery", view)
}

// Fragment renders the <img> tag for one uploaded image.
func Fragment(name string) ([]byte, error) {
	return execute("image", newImageView(name))
}

func newImageView(name string) imageView {
	return imageView{Route: model.ImagesRoute, Name: name, Width: model.DisplayWidth}
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
