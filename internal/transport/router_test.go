package transport

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/UnendingLoop/ImageGallery/internal/render"
	"github.com/UnendingLoop/ImageGallery/internal/repository/memstore"
	"github.com/UnendingLoop/ImageGallery/internal/service"
	"github.com/UnendingLoop/ImageGallery/internal/storage/diskstorage"
	"github.com/stretchr/testify/require"
)

var fragmentRe = regexp.MustCompile(`^<img src="/images/(\d+(?:-\d+)?\.png)" alt="Uploaded image" width="300">$`)

type galleryApp struct {
	router http.Handler
	store  *memstore.Store
	dir    string
}

func newGalleryApp(t *testing.T) galleryApp {
	t.Helper()

	strg, err := diskstorage.NewDiskStorage(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	store := memstore.New()
	svc := service.NewGalleryService(store, strg, service.NoopPublisher{})

	return galleryApp{
		router: NewRouter(NewImageHandler(svc), strg.Dir(), "test"),
		store:  store,
		dir:    strg.Dir(),
	}
}

func (a galleryApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a galleryApp) getIndex(t *testing.T) string {
	t.Helper()
	w := a.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, 200, w.Code)
	return w.Body.String()
}

func (a galleryApp) files(t *testing.T) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(a.dir)
	require.NoError(t, err)
	return entries
}

func TestGallery_EndToEnd(t *testing.T) {
	app := newGalleryApp(t)

	// пустая галерея
	page := app.getIndex(t)
	require.Contains(t, page, render.Placeholder)
	require.Equal(t, page, app.getIndex(t))

	// загрузка картинки на 500 KB
	content := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 125*1024)
	w := app.do(newMultipartRequest(t, formFile{"image", "photo.png", model.PNG, content}))
	require.Equal(t, 200, w.Code)

	fragment := w.Body.String()
	m := fragmentRe.FindStringSubmatch(fragment)
	require.NotNil(t, m, fragment)
	name := m[1]

	stored, err := os.ReadFile(filepath.Join(app.dir, name))
	require.NoError(t, err)
	require.Equal(t, content, stored)

	// страница показывает тот же тег и без заглушки
	page = app.getIndex(t)
	require.Contains(t, page, fragment)
	require.NotContains(t, page, render.Placeholder)
	require.Equal(t, page, app.getIndex(t))

	// статическая раздача
	w = app.do(httptest.NewRequest(http.MethodGet, model.ImagesRoute+"/"+name, nil))
	require.Equal(t, 200, w.Code)
	require.Equal(t, content, w.Body.Bytes())

	w = app.do(httptest.NewRequest(http.MethodGet, model.ImagesRoute+"/missing.png", nil))
	require.Equal(t, 404, w.Code)
}

func TestGallery_RejectedUploadsChangeNothing(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantBody   string
	}{
		{
			name: "txt",
			req: func(t *testing.T) *http.Request {
				return newMultipartRequest(t, formFile{"image", "notes.txt", "text/plain", []byte("hello")})
			},
			wantStatus: 400,
			wantBody:   model.ErrUnsupportedMediaType.Error(),
		},
		{
			name: "exe",
			req: func(t *testing.T) *http.Request {
				return newMultipartRequest(t, formFile{"image", "setup.exe", "application/octet-stream", []byte("MZ")})
			},
			wantStatus: 400,
			wantBody:   model.ErrUnsupportedMediaType.Error(),
		},
		{
			name: "over 2 MiB",
			req: func(t *testing.T) *http.Request {
				big := bytes.Repeat([]byte("a"), int(model.MaxUploadSize)+1)
				return newMultipartRequest(t, formFile{"image", "big.jpg", model.JPEG, big})
			},
			wantStatus: 413,
			wantBody:   model.ErrPayloadTooLarge.Error(),
		},
		{
			name: "over limit without content length",
			req: func(t *testing.T) *http.Request {
				huge := bytes.Repeat([]byte("a"), int(model.MaxUploadSize)*2)
				req := newMultipartRequest(t, formFile{"image", "huge.png", model.PNG, huge})
				req.ContentLength = -1
				return req
			},
			wantStatus: 413,
			wantBody:   model.ErrPayloadTooLarge.Error(),
		},
		{
			name: "two files",
			req: func(t *testing.T) *http.Request {
				return newMultipartRequest(t,
					formFile{"image", "a.png", model.PNG, []byte("a")},
					formFile{"image", "b.png", model.PNG, []byte("b")},
				)
			},
			wantStatus: 400,
			wantBody:   model.ErrTooManyFiles.Error(),
		},
		{
			name: "no file",
			req: func(t *testing.T) *http.Request {
				return newMultipartRequest(t)
			},
			wantStatus: 400,
			wantBody:   model.ErrNoFile.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGalleryApp(t)

			w := app.do(tt.req(t))
			require.Equal(t, tt.wantStatus, w.Code)
			require.Equal(t, tt.wantBody, w.Body.String())

			require.Empty(t, app.files(t))
			require.Contains(t, app.getIndex(t), render.Placeholder)
		})
	}
}

func TestGallery_SequentialUploadsKeepOrder(t *testing.T) {
	app := newGalleryApp(t)

	var names []string
	for _, content := range []string{"first", "second", "third"} {
		w := app.do(newMultipartRequest(t, formFile{"image", content + ".png", model.PNG, []byte(content)}))
		require.Equal(t, 200, w.Code)
		m := fragmentRe.FindStringSubmatch(w.Body.String())
		require.NotNil(t, m)
		names = append(names, m[1])
	}

	// имена различаются даже внутри одной миллисекунды
	require.Len(t, app.files(t), 3)

	snap, err := app.store.Snapshot(t.Context())
	require.NoError(t, err)
	require.Equal(t, names, snap)

	for i, content := range []string{"first", "second", "third"} {
		stored, err := os.ReadFile(filepath.Join(app.dir, names[i]))
		require.NoError(t, err)
		require.Equal(t, content, string(stored))
	}
}

func TestGallery_ConcurrentUploads(t *testing.T) {
	app := newGalleryApp(t)
	const n = 20

	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := range n {
		req := newMultipartRequest(t, formFile{"image", "p.png", model.PNG, []byte{byte(i)}})
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = app.do(req).Code
		}()
	}
	wg.Wait()

	for _, c := range codes {
		require.Equal(t, 200, c)
	}
	require.Len(t, app.files(t), n)

	snap, err := app.store.Snapshot(t.Context())
	require.NoError(t, err)
	require.Len(t, snap, n)
}
